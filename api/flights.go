package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/backoffice/internal/service/backoffice"
	"github.com/Domenick1991/backoffice/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	flights    flights.FlightUseCase
	dispatcher backoffice.Dispatcher
}

type rescheduleRequest struct {
	Date time.Time `json:"date"`
}

func NewFlightHandler(flights flights.FlightUseCase, dispatcher backoffice.Dispatcher) *FlightHandler {
	return &FlightHandler{flights: flights, dispatcher: dispatcher}
}

// Register mounts the read routes on router and the scheduling routes on
// admin, which is expected to require an operator.
func (h *FlightHandler) Register(router, admin *gin.RouterGroup) {
	router.GET("/flights", h.list)
	router.GET("/flights/:id", h.get)
	router.GET("/regular-flights", h.listRegular)

	admin.POST("/flights", h.schedule)
	admin.PUT("/flights/:id", h.reschedule)
	admin.DELETE("/flights/:id", h.cancel)
	admin.POST("/regular-flights", h.scheduleRegular)
}

// list serves upcoming flights. status=finished lists departed ones; a date
// (YYYY-MM-DD) with optional origin and destination searches one day.
func (h *FlightHandler) list(c *gin.Context) {
	ctx := c.Request.Context()

	if day := c.Query("date"); day != "" {
		date, err := time.Parse(time.DateOnly, day)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, want YYYY-MM-DD"})
			return
		}
		found, err := h.flights.Find(ctx, date, c.Query("origin"), c.Query("destination"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toFlights(found))
		return
	}

	list := h.flights.List
	if c.Query("status") == "finished" {
		list = h.flights.ListFinished
	}
	fs, err := list(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toFlights(fs))
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	flight, err := h.flights.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toFlight(*flight))
}

func (h *FlightHandler) listRegular(c *gin.Context) {
	rs, err := h.flights.ListRegular(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]regularFlightResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, toRegular(r))
	}
	c.JSON(http.StatusOK, out)
}

func (h *FlightHandler) schedule(c *gin.Context) {
	var req backoffice.ScheduleFlight
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.dispatcher.Dispatch(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toFlight(*res.Flight))
}

func (h *FlightHandler) scheduleRegular(c *gin.Context) {
	var req backoffice.ScheduleRegularFlight
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.dispatcher.Dispatch(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toRegular(*res.Regular))
}

func (h *FlightHandler) reschedule(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req rescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.dispatcher.Dispatch(c.Request.Context(), backoffice.RescheduleFlight{FlightID: id, Date: req.Date})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlight(*res.Flight))
}

func (h *FlightHandler) cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	res, err := h.dispatcher.Dispatch(c.Request.Context(), backoffice.CancelFlight{FlightID: id})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": res.Cancelled})
}
