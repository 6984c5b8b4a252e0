package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"cprm/internal/validate"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New(validator.WithRequiredStructEnabled())

	// Same email shape check the handlers advertise: local@domain.tld,
	// no DNS or mailbox verification.
	Validate.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
		return validate.IsValidEmail(fl.Field().String())
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1_048_578 //1mb
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(data)
}

// jsonString decodes a value that clients send as either a JSON number or a
// quoted string.
type jsonString string

func (s *jsonString) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case string:
		*s = jsonString(t)
	case float64:
		*s = jsonString(strconv.FormatFloat(t, 'f', -1, 64))
	case nil:
		*s = ""
	default:
		return fmt.Errorf("unsupported value %v", v)
	}
	return nil
}
