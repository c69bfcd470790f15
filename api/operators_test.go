package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/backoffice/internal/domain"
	"github.com/Domenick1991/backoffice/internal/service/operators"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestOperatorHandler_register(t *testing.T) {
	mockService := &MockOperatorUseCase{}
	handler := NewOperatorHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	input := operators.RegisterInput{Company: "TAP", Name: "Rita", Address: "Rua B", Phone: "213", Email: "rita@tap.pt", Password: "hunter22"}
	body, _ := json.Marshal(input)
	c.Request = httptest.NewRequest("POST", "/api/operators", bytes.NewReader(body))

	mockService.On("Register", c.Request.Context(), input).Return(&domain.Operator{ID: 1, Company: "TAP", Name: "Rita", Email: "rita@tap.pt", PasswordHash: "x"}, nil)

	handler.register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	mockService.AssertExpectations(t)
}

func TestOperatorHandler_registerDuplicate(t *testing.T) {
	mockService := &MockOperatorUseCase{}
	handler := NewOperatorHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/operators", bytes.NewReader([]byte(`{"email":"rita@tap.pt"}`)))

	mockService.On("Register", c.Request.Context(), mock.Anything).Return(nil, domain.ErrOperatorExists)

	handler.register(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestOperatorHandler_login(t *testing.T) {
	mockService := &MockOperatorUseCase{}
	handler := NewOperatorHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(loginRequest{Email: "rita@tap.pt", Password: "hunter22"})
	c.Request = httptest.NewRequest("POST", "/api/operators/login", bytes.NewReader(body))

	exp := time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC)
	mockService.On("Login", c.Request.Context(), "rita@tap.pt", "hunter22").Return("signed", exp, nil)

	handler.login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"token":"signed","expires_at":"2026-10-19T10:00:00Z"}`, w.Body.String())
}

func TestOperatorHandler_loginRejected(t *testing.T) {
	mockService := &MockOperatorUseCase{}
	handler := NewOperatorHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(loginRequest{Email: "rita@tap.pt", Password: "nope"})
	c.Request = httptest.NewRequest("POST", "/api/operators/login", bytes.NewReader(body))

	mockService.On("Login", c.Request.Context(), "rita@tap.pt", "nope").Return("", time.Time{}, domain.ErrUnauthorized)

	handler.login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
