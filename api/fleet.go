package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/backoffice/internal/service/backoffice"
	"github.com/gin-gonic/gin"
)

type FleetHandler struct {
	service backoffice.Dispatcher
}

func NewFleetHandler(service backoffice.Dispatcher) *FleetHandler {
	return &FleetHandler{service: service}
}

func (h *FleetHandler) Register(router, admin *gin.RouterGroup) {
	router.GET("/destinations", h.destinations)

	admin.GET("/planes", h.list)
	admin.POST("/planes", h.buy)
	admin.DELETE("/planes/:id", h.sell)
	admin.GET("/clients", h.clients)
}

func (h *FleetHandler) destinations(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Destinations())
}

func (h *FleetHandler) list(c *gin.Context) {
	c.JSON(http.StatusOK, toPlanes(h.service.Planes()))
}

func (h *FleetHandler) clients(c *gin.Context) {
	c.JSON(http.StatusOK, toClients(h.service.Clients()))
}

func (h *FleetHandler) buy(c *gin.Context) {
	var req backoffice.BuyPlane
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.service.Dispatch(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPlane(*res.Plane))
}

func (h *FleetHandler) sell(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	res, err := h.service.Dispatch(c.Request.Context(), backoffice.SellPlane{PlaneID: id})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": len(res.Cancelled), "flights": res.Cancelled})
}
