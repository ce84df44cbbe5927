package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/flightsim/internal/domain"
	"github.com/Domenick1991/flightsim/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	FlightID       int64  `json:"flight_id" binding:"required"`
	PassengerName  string `json:"passenger_name" binding:"required"`
	PassengerEmail string `json:"passenger_email"`
	PassengerPhone string `json:"passenger_phone"`
	SeatNumber     string `json:"seat_number"`
	ForcePayment   *bool  `json:"force_payment_success"`
}

type bookingResponse struct {
	BookingID    int64   `json:"booking_id"`
	PNR          string  `json:"pnr"`
	FlightID     int64   `json:"flight_id"`
	PassengerID  int64   `json:"passenger_id"`
	SeatNumber   string  `json:"seat_number"`
	Status       string  `json:"status"`
	PricePerSeat float64 `json:"price_per_seat"`
	TotalPrice   float64 `json:"total_price"`
	BookingDate  string  `json:"booking_date"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.POST("/:pnr/pay", h.pay)
	router.DELETE("/:pnr", h.cancel)
	router.GET("/:pnr", h.get)
	router.GET("/", h.list)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		FlightID:       req.FlightID,
		PassengerName:  req.PassengerName,
		PassengerEmail: req.PassengerEmail,
		PassengerPhone: req.PassengerPhone,
		SeatNumber:     req.SeatNumber,
		ForcePayment:   req.ForcePayment,
	})
	if errors.Is(err, domain.ErrPaymentFailed) && created != nil {
		// seat held, PAYMENT_FAILED row persisted; the PNR is retryable
		c.JSON(http.StatusPaymentRequired, toBookingResponse(created))
		return
	}
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(created))
}

func (h *BookingHandler) pay(c *gin.Context) {
	pnr := c.Param("pnr")

	var force *bool
	if raw, ok := c.GetQuery("force_success"); ok {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "force_success must be a boolean"})
			return
		}
		force = &parsed
	}

	updated, err := h.service.RetryPayment(c.Request.Context(), pnr, force)
	if errors.Is(err, domain.ErrPaymentFailed) && updated != nil {
		c.JSON(http.StatusPaymentRequired, toBookingResponse(updated))
		return
	}
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(updated))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	pnr := c.Param("pnr")

	cancelled, err := h.service.CancelBooking(c.Request.Context(), pnr)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled", "pnr": cancelled.PNR})
}

func (h *BookingHandler) get(c *gin.Context) {
	pnr := c.Param("pnr")

	found, err := h.service.GetBooking(c.Request.Context(), pnr)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(found))
}

func (h *BookingHandler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	bookings, err := h.service.ListBookings(c.Request.Context(), limit)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	out := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, out)
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		BookingID:    b.ID,
		PNR:          b.PNR,
		FlightID:     b.FlightID,
		PassengerID:  b.PassengerID,
		SeatNumber:   b.SeatNumber,
		Status:       string(b.Status),
		PricePerSeat: b.PricePerSeat,
		TotalPrice:   b.TotalPrice,
		BookingDate:  b.BookingDate.Format(time.RFC3339),
	}
}
