package main

import (
	"fmt"
	"net/http"
	"strings"

	"cprm/internal/apperror"
	"cprm/internal/mailer"
)

type ContactPayload struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,emailshape"`
	Phone   string `json:"phone,omitempty"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

func (app *application) contactHandler(w http.ResponseWriter, r *http.Request) {
	var payload ContactPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err.Error())
		return
	}

	app.logger.Infow("contact form submission received", "name", payload.Name, "email", payload.Email, "subject", payload.Subject)

	if payload.Name == "" || payload.Email == "" || payload.Subject == "" || payload.Message == "" {
		app.badRequestResponse(w, r, "Name, email, subject, and message are required fields.")
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, "Please provide a valid email address.")
		return
	}

	if app.config.contactRecipient == "" {
		app.logger.Errorw("contact form recipient is not configured")
		app.errorResponse(w, r, apperror.New("Unable to process contact form due to server configuration error.", http.StatusInternalServerError))
		return
	}

	// Admin notification is the primary effect; its failure fails the request.
	if err := app.mailer.Send(app.contactAdminEmail(payload)); err != nil {
		app.logger.Errorw("failed to send contact form to admin", "recipient", app.config.contactRecipient, "error", err)
		app.errorResponse(w, r, apperror.New("Could not send your message at this time. Please try again later.", http.StatusInternalServerError))
		return
	}
	app.logger.Infow("contact form sent to admin", "recipient", app.config.contactRecipient)

	// The auto-reply to the sender is best-effort.
	if err := app.mailer.Send(app.contactConfirmationEmail(payload)); err != nil {
		app.logger.Warnw("failed to send confirmation email to user", "email", payload.Email, "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Thank you for your message! We will get back to you soon.",
	})
}

func (app *application) contactAdminEmail(p ContactPayload) mailer.Email {
	phone := p.Phone
	if phone == "" {
		phone = "Not provided"
	}

	text := fmt.Sprintf(`You have received a new message from the %s website contact form:
--------------------------------------------------
Name: %s
Email: %s
Phone: %s
Subject: %s
--------------------------------------------------
Message:
%s
--------------------------------------------------
`, app.config.siteName, p.Name, p.Email, phone, p.Subject, p.Message)

	html := fmt.Sprintf(`<h3>New Contact Form Submission</h3>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> <a href="mailto:%s">%s</a></p>
<p><strong>Phone:</strong> %s</p>
<p><strong>Subject:</strong> %s</p>
<hr>
<h4>Message:</h4>
<p>%s</p>
<hr>`, p.Name, p.Email, p.Email, phone, p.Subject, strings.ReplaceAll(p.Message, "\n", "<br>"))

	return mailer.Email{
		To:      app.config.contactRecipient,
		Subject: fmt.Sprintf("New Contact Form Submission: %s", p.Subject),
		Text:    text,
		HTML:    html,
	}
}

func (app *application) contactConfirmationEmail(p ContactPayload) mailer.Email {
	text := fmt.Sprintf(`Dear %s,

Thank you for contacting %s. We have received your message regarding "%s" and will get back to you as soon as possible.

If your query is urgent, please feel free to call us.

The %s Team
%s
`, p.Name, app.config.siteName, p.Subject, app.config.siteName, app.config.frontendURL)

	html := fmt.Sprintf(`<p>Dear %s,</p>
<p>Thank you for contacting <strong>%s</strong>. We have received your message regarding "<em>%s</em>" and will get back to you as soon as possible.</p>
<p>If your query is urgent, please feel free to call us.</p>
<p>The %s Team</p>
<p><a href="%s">Visit our website</a></p>`, p.Name, app.config.siteName, p.Subject, app.config.siteName, app.config.frontendURL)

	return mailer.Email{
		To:      p.Email,
		Subject: fmt.Sprintf("Message Received - %s Contact Form", app.config.siteName),
		Text:    text,
		HTML:    html,
	}
}
