package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/flightsim/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type flightResponse struct {
	FlightID        int64   `json:"flight_id"`
	Airline         string  `json:"airline"`
	FlightNumber    string  `json:"flight_number"`
	Source          string  `json:"source"`
	Destination     string  `json:"destination"`
	DepartureTime   string  `json:"departure_time"`
	ArrivalTime     string  `json:"arrival_time"`
	TotalSeats      int     `json:"total_seats"`
	AvailableSeats  int     `json:"available_seats"`
	DurationMinutes int     `json:"duration_minutes"`
	DynamicPrice    float64 `json:"dynamic_price"`
	PricingTier     string  `json:"pricing_tier"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/search", h.search)
	router.GET("/:id/price", h.price)
	router.GET("/:id/fares", h.fares)
}

func (h *FlightHandler) RegisterAirlines(router *gin.RouterGroup) {
	router.GET("/:airline/schedules", h.airlineSchedules)
}

func (h *FlightHandler) list(c *gin.Context) {
	priced, err := h.service.List(c.Request.Context(), c.Query("sort_by"), c.DefaultQuery("order", "asc"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toFlightResponses(priced))
}

func (h *FlightHandler) search(c *gin.Context) {
	params := flights.SearchParams{
		Origin:      c.Query("origin"),
		Destination: c.Query("destination"),
		Date:        c.Query("date"),
		SortBy:      c.Query("sort_by"),
		Order:       c.DefaultQuery("order", "asc"),
	}
	if params.Origin == "" || params.Destination == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "origin and destination are required"})
		return
	}

	priced, err := h.service.Search(c.Request.Context(), params)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toFlightResponses(priced))
}

func (h *FlightHandler) price(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	priced, err := h.service.GetWithPrice(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	f := priced.Flight
	c.JSON(http.StatusOK, gin.H{
		"flight_id":       f.ID,
		"flight_number":   f.FlightNumber,
		"origin":          f.Source,
		"destination":     f.Destination,
		"departure_time":  f.DepartureTime.Format(time.RFC3339),
		"arrival_time":    f.ArrivalTime.Format(time.RFC3339),
		"dynamic_price":   priced.DynamicPrice,
		"base_fare":       f.BaseFare,
		"available_seats": f.AvailableSeats,
		"total_seats":     f.TotalSeats,
	})
}

func (h *FlightHandler) fares(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	records, err := h.service.FareHistory(c.Request.Context(), id, limit)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	out := make([]gin.H, 0, len(records))
	for _, r := range records {
		out = append(out, gin.H{"recorded_at": r.RecordedAt.Format(time.RFC3339), "price": r.Price})
	}
	c.JSON(http.StatusOK, gin.H{"flight_id": id, "fares": out})
}

func (h *FlightHandler) airlineSchedules(c *gin.Context) {
	airline := c.Param("airline")

	schedules, err := h.service.AirlineSchedules(c.Request.Context(), airline)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	out := make([]gin.H, 0, len(schedules))
	for _, f := range schedules {
		out = append(out, gin.H{
			"flight_number":   f.FlightNumber,
			"source":          f.Source,
			"destination":     f.Destination,
			"departure_time":  f.DepartureTime.Format(time.RFC3339),
			"arrival_time":    f.ArrivalTime.Format(time.RFC3339),
			"available_seats": f.AvailableSeats,
		})
	}
	c.JSON(http.StatusOK, gin.H{"airline": airline, "schedules": out, "source": "mock-external-provider"})
}

func toFlightResponses(priced []flights.PricedFlight) []flightResponse {
	out := make([]flightResponse, 0, len(priced))
	for _, p := range priced {
		out = append(out, toFlightResponse(p))
	}
	return out
}

func toFlightResponse(p flights.PricedFlight) flightResponse {
	return flightResponse{
		FlightID:        p.Flight.ID,
		Airline:         p.Flight.Airline,
		FlightNumber:    p.Flight.FlightNumber,
		Source:          p.Flight.Source,
		Destination:     p.Flight.Destination,
		DepartureTime:   p.Flight.DepartureTime.Format(time.RFC3339),
		ArrivalTime:     p.Flight.ArrivalTime.Format(time.RFC3339),
		TotalSeats:      p.Flight.TotalSeats,
		AvailableSeats:  p.Flight.AvailableSeats,
		DurationMinutes: p.DurationMinutes,
		DynamicPrice:    p.DynamicPrice,
		PricingTier:     string(p.Flight.PricingTier),
	}
}
