package main

import (
	"encoding/json"
	"net/http"

	"cprm/internal/mpesa"
	"cprm/internal/store"
	"cprm/internal/validate"
)

type STKPushPayload struct {
	Amount           jsonString `json:"amount"`
	MpesaPhone       string     `json:"mpesaPhone"`
	GivingType       string     `json:"givingType,omitempty"`
	AccountReference string     `json:"accountReference,omitempty"`
}

type callbackAck struct {
	ResponseCode string `json:"ResponseCode"`
	ResponseDesc string `json:"ResponseDesc"`
}

func (app *application) stkPushHandler(w http.ResponseWriter, r *http.Request) {
	var payload STKPushPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err.Error())
		return
	}

	if payload.Amount == "" || payload.MpesaPhone == "" {
		app.badRequestResponse(w, r, "Amount and M-Pesa phone number are required.")
		return
	}

	givingType := payload.GivingType
	if givingType == "" {
		givingType = "Donation"
	}
	reference := payload.AccountReference
	if reference == "" {
		reference = app.config.siteName + " Donation"
	}

	app.logger.Infow("stk push request received", "amount", payload.Amount, "phone", payload.MpesaPhone, "giving_type", givingType)

	ack, err := app.gateway.InitiateSTKPush(r.Context(), mpesa.STKPushRequest{
		Amount:           string(payload.Amount),
		PhoneNumber:      payload.MpesaPhone,
		AccountReference: reference,
		Description:      givingType,
	})
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	app.logger.Infow("stk push initiated",
		"merchant_request_id", ack.MerchantRequestID,
		"checkout_request_id", ack.CheckoutRequestID,
	)

	// Record the pending push so the asynchronous callback can be correlated.
	amount, _ := validate.ParseAmount(string(payload.Amount))
	phone, _ := validate.NormalizePhone(payload.MpesaPhone)
	if err := app.store.Payments.RecordInitiated(&store.PaymentRecord{
		MerchantRequestID: ack.MerchantRequestID,
		CheckoutRequestID: ack.CheckoutRequestID,
		PhoneNumber:       phone,
		Amount:            amount,
		Reference:         reference,
		Description:       givingType,
	}); err != nil {
		app.logger.Errorw("failed to record initiated payment", "checkout_request_id", ack.CheckoutRequestID, "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "STK Push initiated. Please check your phone to enter M-Pesa PIN.",
		"data":    ack,
	})
}

// mpesaCallbackHandler receives Daraja's out-of-band result webhook. The
// gateway retries on any non-200 response, so the handler acknowledges
// unconditionally, malformed bodies and processing faults included.
func (app *application) mpesaCallbackHandler(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			app.logger.Errorw("panic while processing mpesa callback", "panic", rec)
			writeJSON(w, http.StatusOK, callbackAck{"0", "Callback received but internal processing error occurred."})
		}
	}()

	// Lenient decode: the gateway owns this payload shape.
	var envelope mpesa.CallbackEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil || envelope.Body.STKCallback == nil {
		app.logger.Errorw("invalid callback format received", "error", err)
		writeJSON(w, http.StatusOK, callbackAck{"0", "Callback received but format was unexpected."})
		return
	}

	cb := envelope.Body.STKCallback
	app.logger.Infow("mpesa callback received",
		"merchant_request_id", cb.MerchantRequestID,
		"checkout_request_id", cb.CheckoutRequestID,
		"result_code", cb.ResultCode,
		"result_desc", cb.ResultDesc,
	)

	var result mpesa.CallbackResult
	if cb.Succeeded() {
		result = cb.Result()
		app.logger.Infow("payment successful",
			"amount", result.Amount,
			"receipt", result.ReceiptNumber,
			"transaction_date", result.TransactionDate,
			"phone", result.PhoneNumber,
		)
		if cb.CallbackMetadata == nil {
			app.logger.Warnw("successful payment but callback metadata is missing", "checkout_request_id", cb.CheckoutRequestID)
		}
	} else {
		app.logger.Warnw("payment failed or cancelled by user",
			"checkout_request_id", cb.CheckoutRequestID,
			"result_code", cb.ResultCode,
			"result_desc", cb.ResultDesc,
		)
	}

	if _, err := app.store.Payments.MarkResult(cb.CheckoutRequestID, store.PaymentResult{
		ResultCode:      cb.ResultCode,
		ResultDesc:      cb.ResultDesc,
		Amount:          result.Amount,
		ReceiptNumber:   result.ReceiptNumber,
		TransactionDate: result.TransactionDate,
		PhoneNumber:     result.PhoneNumber,
	}); err != nil {
		// Unknown or restarted-away pushes are acknowledged all the same.
		app.logger.Warnw("callback did not match a recorded push", "checkout_request_id", cb.CheckoutRequestID, "error", err)
	}

	writeJSON(w, http.StatusOK, callbackAck{"0", "Callback received and acknowledged."})
}
