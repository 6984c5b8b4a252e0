package mpesa

import "strconv"

// CallbackEnvelope is the webhook body Daraja POSTs after an STK push
// completes, times out, or is cancelled on the phone.
type CallbackEnvelope struct {
	Body struct {
		STKCallback *STKCallback `json:"stkCallback"`
	} `json:"Body"`
}

type STKCallback struct {
	MerchantRequestID string            `json:"MerchantRequestID"`
	CheckoutRequestID string            `json:"CheckoutRequestID"`
	ResultCode        int               `json:"ResultCode"`
	ResultDesc        string            `json:"ResultDesc"`
	CallbackMetadata  *CallbackMetadata `json:"CallbackMetadata,omitempty"`
}

type CallbackMetadata struct {
	Item []MetadataItem `json:"Item"`
}

// MetadataItem values are heterogeneous: amounts and dates arrive as JSON
// numbers, receipt numbers as strings, phone numbers as either.
type MetadataItem struct {
	Name  string `json:"Name"`
	Value any    `json:"Value,omitempty"`
}

// Succeeded reports whether the push completed with a successful payment.
func (c *STKCallback) Succeeded() bool { return c.ResultCode == 0 }

// CallbackResult is the flattened transaction detail of a successful push.
type CallbackResult struct {
	Amount          float64
	ReceiptNumber   string
	TransactionDate string
	PhoneNumber     string
}

// Result extracts the name-keyed metadata items. Missing items leave zero
// values; Daraja omits the metadata block entirely on failed payments.
func (c *STKCallback) Result() CallbackResult {
	var res CallbackResult
	if c.CallbackMetadata == nil {
		return res
	}
	for _, item := range c.CallbackMetadata.Item {
		switch item.Name {
		case "Amount":
			if v, ok := item.Value.(float64); ok {
				res.Amount = v
			}
		case "MpesaReceiptNumber":
			res.ReceiptNumber = asString(item.Value)
		case "TransactionDate":
			res.TransactionDate = asString(item.Value)
		case "PhoneNumber":
			res.PhoneNumber = asString(item.Value)
		}
	}
	return res
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}
