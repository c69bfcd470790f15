package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/backoffice/internal/service/operators"
	"github.com/gin-gonic/gin"
)

type OperatorHandler struct {
	service operators.OperatorUseCase
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

type operatorResponse struct {
	ID      int64  `json:"id"`
	Company string `json:"company"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

func NewOperatorHandler(service operators.OperatorUseCase) *OperatorHandler {
	return &OperatorHandler{service: service}
}

func (h *OperatorHandler) Register(router *gin.RouterGroup) {
	router.POST("/operators", h.register)
	router.POST("/operators/login", h.login)
}

func (h *OperatorHandler) register(c *gin.Context) {
	var req operators.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	op, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, operatorResponse{ID: op.ID, Company: op.Company, Name: op.Name, Email: op.Email})
}

func (h *OperatorHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	token, exp, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, loginResponse{Token: token, ExpiresAt: exp.Format(time.RFC3339)})
}
