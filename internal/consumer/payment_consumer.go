package consumer

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"petsit-marketplace/internal/models"
	"petsit-marketplace/internal/repository"
	"petsit-marketplace/internal/service"
)

// PaymentConsumer reconciles Booking.payment_status from settlement events.
// Settlement and booking state live in different stores and are allowed to
// be briefly inconsistent; this consumer is the eventual-consistency path.
type PaymentConsumer struct {
	bookings repository.BookingRepository
}

func NewPaymentConsumer(bookings repository.BookingRepository) *PaymentConsumer {
	return &PaymentConsumer{bookings: bookings}
}

// Start listens for payment events and updates local booking rows.
func (pc *PaymentConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			pc.handleMessage(msg)
		}
		log.Println("[PaymentConsumer] channel closed, stopping consumer")
	}()
}

func (pc *PaymentConsumer) handleMessage(msg amqp.Delivery) {
	var event service.PaymentEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Printf("[PaymentConsumer] failed to unmarshal: %v", err)
		msg.Nack(false, false)
		return
	}

	var status models.PaymentStatus
	switch msg.RoutingKey {
	case "payment.recorded":
		status = models.PaymentPaid
	case "payment.refunded":
		status = models.PaymentRefunded
	default:
		log.Printf("[PaymentConsumer] ignoring routing key %s", msg.RoutingKey)
		msg.Ack(false)
		return
	}

	if err := pc.bookings.UpdatePaymentStatus(context.Background(), event.BookingID, status); err != nil {
		log.Printf("[PaymentConsumer] failed to mark booking %d %s: %v", event.BookingID, status, err)
		msg.Nack(false, true) // requeue
		return
	}

	log.Printf("[PaymentConsumer] booking %d payment_status=%s (transaction %d)", event.BookingID, status, event.TransactionID)
	msg.Ack(false)
}
