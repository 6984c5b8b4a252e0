package validate

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitsOnly = regexp.MustCompile(`^\d+$`)
)

// IsValidEmail reports whether s looks like local@domain.tld after trimming.
// No DNS or mailbox verification.
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(strings.TrimSpace(s))
}

// NormalizePhone rewrites a Kenyan mobile number into the 254XXXXXXXXX form
// the gateway expects. Accepts 07..., +2547... and 2547... inputs; the result
// must be exactly 12 digits.
func NormalizePhone(s string) (string, error) {
	phone := strings.TrimSpace(s)
	if strings.HasPrefix(phone, "0") {
		phone = "254" + phone[1:]
	} else if strings.HasPrefix(phone, "+254") {
		phone = phone[1:]
	}
	if !strings.HasPrefix(phone, "254") || len(phone) != 12 || !digitsOnly.MatchString(phone) {
		return "", fmt.Errorf("invalid phone number %q: expected format 254XXXXXXXXX", s)
	}
	return phone, nil
}

// ParseAmount parses a payment amount and enforces the gateway minimum of 1.
func ParseAmount(s string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(amount) || amount < 1 {
		return 0, fmt.Errorf("invalid amount %q: must be a number greater than or equal to 1", s)
	}
	return amount, nil
}
