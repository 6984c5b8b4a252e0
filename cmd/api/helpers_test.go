package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"cprm/internal/mailer"
	"cprm/internal/mpesa"
	"cprm/internal/store"

	"go.uber.org/zap"
)

// mailerMock records every send and can be told to fail for specific
// recipients.
type mailerMock struct {
	mu     sync.Mutex
	sent   []mailer.Email
	failTo map[string]bool
}

func newMailerMock() *mailerMock {
	return &mailerMock{failTo: make(map[string]bool)}
}

func (m *mailerMock) Send(e mailer.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failTo[e.To] {
		return fmt.Errorf("failed to send email to %s: connection refused", e.To)
	}
	m.sent = append(m.sent, e)
	return nil
}

func (m *mailerMock) sentTo(to string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.sent {
		if e.To == to {
			n++
		}
	}
	return n
}

func (m *mailerMock) total() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func newTestApplication(t *testing.T, m mailer.Client, gateway *mpesa.Client) *application {
	t.Helper()
	return &application{
		config: config{
			addr:                ":0",
			env:                 "test",
			frontendURL:         "https://example.com",
			siteName:            "CPRM",
			contactRecipient:    "admin@example.com",
			newsletterRecipient: "newsletter-admin@example.com",
		},
		logger:  zap.NewNop().Sugar(),
		store:   store.NewStorage(),
		mailer:  m,
		gateway: gateway,
	}
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("response body is not JSON: %v\n%s", err, rr.Body.String())
	}
	return out
}
