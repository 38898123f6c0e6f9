package domain

import (
	"time"

	"github.com/sirupsen/logrus"
)

const (
	EventCustomerCreated        = "CustomerCreated"
	EventCustomerAddressUpdated = "CustomerAddressUpdated"
)

// Event is something that happened to an entity.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// EventHandler is invoked synchronously, on the caller's stack, right after the state change.
// Handlers are fire-and-forget and must not panic.
type EventHandler interface {
	Handle(event Event)
}

type EventHandlerFunc func(event Event)

func (f EventHandlerFunc) Handle(event Event) {
	f(event)
}

type NopEventHandler struct{}

func (NopEventHandler) Handle(Event) {}

// CustomerCreated carries the customer as it was right after construction.
type CustomerCreated struct {
	Customer *Customer
	At       time.Time
}

func (e CustomerCreated) EventName() string     { return EventCustomerCreated }
func (e CustomerCreated) OccurredAt() time.Time { return e.At }

type CustomerAddressUpdated struct {
	ID      string
	Name    string
	Address Address
	At      time.Time
}

func (e CustomerAddressUpdated) EventName() string     { return EventCustomerAddressUpdated }
func (e CustomerAddressUpdated) OccurredAt() time.Time { return e.At }

// LogEventHandler writes a human-readable entry per event.
type LogEventHandler struct {
	log logrus.FieldLogger
}

func NewLogEventHandler(logger logrus.FieldLogger) *LogEventHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogEventHandler{log: logger}
}

func (h *LogEventHandler) Handle(event Event) {
	entry := h.log.WithField("event", event.EventName())

	switch e := event.(type) {
	case CustomerCreated:
		entry.WithField("customer_id", e.Customer.ID()).
			Infof("Customer %s (%s) created", e.Customer.ID(), e.Customer.Name())
	case CustomerAddressUpdated:
		entry.WithFields(logrus.Fields{
			"customer_id": e.ID,
			"address":     e.Address.String(),
		}).Infof("Address of customer %s, %s changed to: %s", e.ID, e.Name, e.Address)
	default:
		entry.Info("Domain event received")
	}
}
