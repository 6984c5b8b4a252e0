package main

import (
	"fmt"
	"net/http"

	"cprm/internal/mailer"
)

type SubscribePayload struct {
	Email string `json:"email" validate:"required,emailshape"`
}

func (app *application) subscribeHandler(w http.ResponseWriter, r *http.Request) {
	var payload SubscribePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err.Error())
		return
	}

	app.logger.Infow("newsletter subscription request", "email", payload.Email)

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, "Please provide a valid email address.")
		return
	}

	// Idempotent: an address that is already on the list still gets a
	// success response, without resending the confirmation.
	if !app.store.Subscribers.Add(payload.Email) {
		app.logger.Infow("email already subscribed", "email", payload.Email)
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "You are already subscribed to our newsletter!",
		})
		return
	}
	app.logger.Infow("subscriber added", "email", payload.Email, "total", app.store.Subscribers.Count())

	// Both notifications are best-effort; the subscription already succeeded.
	if err := app.mailer.Send(app.newsletterConfirmationEmail(payload.Email)); err != nil {
		app.logger.Warnw("failed to send subscription confirmation", "email", payload.Email, "error", err)
	}
	if app.config.newsletterRecipient != "" {
		if err := app.mailer.Send(app.newsletterAdminEmail(payload.Email)); err != nil {
			app.logger.Errorw("failed to notify admin of new subscriber", "email", payload.Email, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Thank you for subscribing! Please check your inbox for a confirmation (if applicable).",
	})
}

func (app *application) newsletterConfirmationEmail(email string) mailer.Email {
	text := fmt.Sprintf(`Hello,

Thank you for subscribing to the %s newsletter! You'll now receive our latest updates and announcements.

The %s Team

%s
`, app.config.siteName, app.config.siteName, app.config.frontendURL)

	html := fmt.Sprintf(`<p>Hello,</p>
<p>Thank you for subscribing to the <strong>%s</strong> newsletter! You'll now receive our latest updates and announcements.</p>
<p>The %s Team</p>
<p><a href="%s">Visit our website</a></p>`, app.config.siteName, app.config.siteName, app.config.frontendURL)

	return mailer.Email{
		To:      email,
		Subject: fmt.Sprintf("Subscription Confirmed - %s Newsletter", app.config.siteName),
		Text:    text,
		HTML:    html,
	}
}

func (app *application) newsletterAdminEmail(email string) mailer.Email {
	return mailer.Email{
		To:      app.config.newsletterRecipient,
		Subject: fmt.Sprintf("New Newsletter Subscription - %s Website", app.config.siteName),
		Text:    fmt.Sprintf("A new user has subscribed to the newsletter:\nEmail: %s", email),
		HTML:    fmt.Sprintf("<p>A new user has subscribed to the newsletter:</p><p><strong>Email:</strong> %s</p>", email),
	}
}
