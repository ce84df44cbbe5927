package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightsim/internal/kafka"
)

// Sender is the notification sink for the worker. Delivery is a stdout
// placeholder; the simulator has no real mail backend.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	fmt.Printf("notify passenger %d: %s for PNR %s (flight %d, status %s, total %.2f)\n",
		event.PassengerID, event.Type, event.PNR, event.FlightID, event.Status, event.TotalPrice)
	return nil
}
