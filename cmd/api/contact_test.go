package main

import (
	"net/http"
	"strings"
	"testing"
)

const validContact = `{
  "name": "Jane Doe",
  "email": "jane@example.com",
  "phone": "0712345678",
  "subject": "Sunday service",
  "message": "What time does it start?"
}`

func TestContactSubmit(t *testing.T) {
	mock := newMailerMock()
	app := newTestApplication(t, mock, nil)
	mux := app.mount()

	rr := postJSON(t, mux, "/api/contact/submit", validContact)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)
	if msg, _ := body["message"].(string); !strings.Contains(msg, "Thank you") {
		t.Errorf("message = %q", msg)
	}

	if mock.sentTo("admin@example.com") != 1 {
		t.Errorf("admin notifications = %d, want 1", mock.sentTo("admin@example.com"))
	}
	if mock.sentTo("jane@example.com") != 1 {
		t.Errorf("user confirmations = %d, want 1", mock.sentTo("jane@example.com"))
	}
}

func TestContactMissingSubject(t *testing.T) {
	mock := newMailerMock()
	app := newTestApplication(t, mock, nil)
	mux := app.mount()

	rr := postJSON(t, mux, "/api/contact/submit", `{
	  "name": "Jane Doe",
	  "email": "jane@example.com",
	  "message": "Hello"
	}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)
	if body["status"] != "fail" {
		t.Errorf("status word = %v, want fail", body["status"])
	}
	if msg, _ := body["message"].(string); !strings.Contains(msg, "required") {
		t.Errorf("message = %q, want it to name the requirement", msg)
	}
	if mock.total() != 0 {
		t.Errorf("emails sent = %d, want none on validation failure", mock.total())
	}
}

func TestContactInvalidEmail(t *testing.T) {
	mock := newMailerMock()
	app := newTestApplication(t, mock, nil)
	mux := app.mount()

	rr := postJSON(t, mux, "/api/contact/submit", `{
	  "name": "Jane Doe",
	  "email": "not-an-email",
	  "subject": "Hi",
	  "message": "Hello"
	}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rr.Code, rr.Body.String())
	}
	if mock.total() != 0 {
		t.Errorf("emails sent = %d, want none", mock.total())
	}
}

func TestContactAdminSendFailureFailsRequest(t *testing.T) {
	mock := newMailerMock()
	mock.failTo["admin@example.com"] = true
	app := newTestApplication(t, mock, nil)
	mux := app.mount()

	rr := postJSON(t, mux, "/api/contact/submit", validContact)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500: %s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)
	if body["status"] != "error" {
		t.Errorf("status word = %v, want error", body["status"])
	}
	// The user confirmation alone is not sufficient and is never attempted
	// once the admin notification fails.
	if mock.sentTo("jane@example.com") != 0 {
		t.Errorf("user confirmations = %d, want 0", mock.sentTo("jane@example.com"))
	}
}

func TestContactUserConfirmationFailureIsNonFatal(t *testing.T) {
	mock := newMailerMock()
	mock.failTo["jane@example.com"] = true
	app := newTestApplication(t, mock, nil)
	mux := app.mount()

	rr := postJSON(t, mux, "/api/contact/submit", validContact)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	if mock.sentTo("admin@example.com") != 1 {
		t.Errorf("admin notifications = %d, want 1", mock.sentTo("admin@example.com"))
	}
}
