package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/backoffice/internal/service/backoffice"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service backoffice.Dispatcher
}

type scheduleBookingRequest struct {
	FlightID      int64  `json:"flight_id"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Seats         int    `json:"seats"`
	BookingNumber int64  `json:"booking_number"`
}

type modifyBookingRequest struct {
	NewFlightID   int64 `json:"new_flight_id"`
	BookingNumber int64 `json:"booking_number"`
}

type milesRequest struct {
	Email string  `json:"email"`
	Miles float64 `json:"miles"`
}

type priceResponse struct {
	FlightID int64   `json:"flight_id"`
	Email    string  `json:"email"`
	Price    float64 `json:"price"`
	Miles    float64 `json:"miles"`
}

func NewBookingHandler(service backoffice.Dispatcher) *BookingHandler {
	return &BookingHandler{service: service}
}

// Register mounts the client routes on router and charter booking on admin,
// which is expected to require an operator.
func (h *BookingHandler) Register(router, admin *gin.RouterGroup) {
	router.POST("/bookings", h.create)
	router.GET("/bookings/:flight_id/:booking_id", h.info)
	router.PUT("/bookings/:flight_id/:booking_id", h.modify)
	router.DELETE("/bookings/:flight_id/:booking_id", h.cancel)
	router.GET("/prices", h.price)
	router.POST("/clients/miles", h.miles)

	admin.POST("/charters", h.charter)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req scheduleBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.service.Dispatch(c.Request.Context(), backoffice.ScheduleBooking{
		FlightID:      req.FlightID,
		Name:          req.Name,
		Address:       req.Address,
		Phone:         req.Phone,
		Email:         req.Email,
		Seats:         req.Seats,
		IsOperator:    isOperator(c),
		BookingNumber: req.BookingNumber,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOutcome(*res.Outcome))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	flightID, bookingID, ok := bookingParams(c)
	if !ok {
		return
	}
	res, err := h.service.Dispatch(c.Request.Context(), backoffice.CancelBooking{FlightID: flightID, BookingID: bookingID})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOutcome(*res.Outcome))
}

func (h *BookingHandler) modify(c *gin.Context) {
	flightID, bookingID, ok := bookingParams(c)
	if !ok {
		return
	}
	var req modifyBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.service.Dispatch(c.Request.Context(), backoffice.ModifyBooking{
		FlightID:      flightID,
		BookingID:     bookingID,
		NewFlightID:   req.NewFlightID,
		IsOperator:    isOperator(c),
		BookingNumber: req.BookingNumber,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOutcome(*res.Outcome))
}

func (h *BookingHandler) info(c *gin.Context) {
	flightID, bookingID, ok := bookingParams(c)
	if !ok {
		return
	}
	res, err := h.service.Dispatch(c.Request.Context(), backoffice.BookingInfo{FlightID: flightID, BookingID: bookingID})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBooking(*res.Booking))
}

func (h *BookingHandler) charter(c *gin.Context) {
	var req backoffice.ScheduleCharter
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.service.Dispatch(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOutcome(*res.Outcome))
}

func (h *BookingHandler) price(c *gin.Context) {
	flightID, err := strconv.ParseInt(c.Query("flight_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flight_id"})
		return
	}
	email := c.Query("email")

	res, err := h.service.Dispatch(c.Request.Context(), backoffice.BookingPrice{FlightID: flightID, Email: email})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, priceResponse{FlightID: flightID, Email: email, Price: res.Price, Miles: res.Miles})
}

func (h *BookingHandler) miles(c *gin.Context) {
	var req milesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.service.Dispatch(c.Request.Context(), backoffice.UpdateMiles{Miles: req.Miles, Email: req.Email}); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func bookingParams(c *gin.Context) (int64, int64, bool) {
	flightID, err := strconv.ParseInt(c.Param("flight_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flight id"})
		return 0, 0, false
	}
	bookingID, err := strconv.ParseInt(c.Param("booking_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return 0, 0, false
	}
	return flightID, bookingID, true
}
