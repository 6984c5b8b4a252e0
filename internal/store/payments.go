package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentSuccess PaymentStatus = "success"
	PaymentFailed  PaymentStatus = "failed"
)

// PaymentRecord correlates an initiated STK push with the callback the
// gateway delivers later, keyed by CheckoutRequestID.
type PaymentRecord struct {
	ID                string
	MerchantRequestID string
	CheckoutRequestID string
	PhoneNumber       string
	Amount            float64
	Reference         string
	Description       string
	Status            PaymentStatus
	ResultCode        int
	ResultDesc        string
	ReceiptNumber     string
	TransactionDate   string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// PaymentResult is the transaction detail extracted from a callback.
type PaymentResult struct {
	ResultCode      int
	ResultDesc      string
	Amount          float64
	ReceiptNumber   string
	TransactionDate string
	PhoneNumber     string
}

type PaymentLog struct {
	mu      sync.Mutex
	records map[string]*PaymentRecord
}

func NewPaymentLog() *PaymentLog {
	return &PaymentLog{records: make(map[string]*PaymentRecord)}
}

// RecordInitiated stores a pending record after the gateway's synchronous ack.
func (l *PaymentLog) RecordInitiated(p *PaymentRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now()
	p.Status = PaymentPending
	p.CreatedAt = now
	p.UpdatedAt = now
	l.records[p.CheckoutRequestID] = p
	return nil
}

// MarkResult resolves a pending record from a callback. Returns ErrNotFound
// when no push with that CheckoutRequestID was recorded.
func (l *PaymentLog) MarkResult(checkoutRequestID string, res PaymentResult) (*PaymentRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.records[checkoutRequestID]
	if !ok {
		return nil, ErrNotFound
	}

	p.ResultCode = res.ResultCode
	p.ResultDesc = res.ResultDesc
	if res.ResultCode == 0 {
		p.Status = PaymentSuccess
		if res.Amount != 0 {
			p.Amount = res.Amount
		}
		p.ReceiptNumber = res.ReceiptNumber
		p.TransactionDate = res.TransactionDate
		if res.PhoneNumber != "" {
			p.PhoneNumber = res.PhoneNumber
		}
	} else {
		p.Status = PaymentFailed
	}
	p.UpdatedAt = time.Now()

	rec := *p
	return &rec, nil
}

func (l *PaymentLog) Get(checkoutRequestID string) (*PaymentRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.records[checkoutRequestID]
	if !ok {
		return nil, ErrNotFound
	}
	rec := *p
	return &rec, nil
}
