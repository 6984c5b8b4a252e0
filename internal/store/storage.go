package store

import "errors"

var ErrNotFound = errors.New("resource not found")

// Storage aggregates the application's data access behind per-entity
// interfaces. Everything lives in process memory and is lost on restart.
type Storage struct {
	Subscribers interface {
		Add(email string) bool
		Contains(email string) bool
		Count() int
	}
	Payments interface {
		RecordInitiated(p *PaymentRecord) error
		MarkResult(checkoutRequestID string, res PaymentResult) (*PaymentRecord, error)
		Get(checkoutRequestID string) (*PaymentRecord, error)
	}
}

func NewStorage() Storage {
	return Storage{
		Subscribers: NewSubscriberSet(),
		Payments:    NewPaymentLog(),
	}
}
