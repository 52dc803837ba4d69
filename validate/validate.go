// Package validate holds the input checks applied before anything
// reaches a store. All functions are pure: no storage, no side effects.
package validate

import (
	"fmt"
	"strconv"
	"strings"

	"restaurant-backend/models"
)

// CurrencySymbol is prepended by DisplayPrice. Stored prices are always
// integer cents; the symbol is presentation only.
const CurrencySymbol = "€"

// FieldError reports a single invalid or missing field. It is returned
// as-is inside 400 responses.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Reason
}

// IsValidEmail checks for a local@domain.tld shape: at least one '@',
// a dot somewhere in the domain, and no whitespace anywhere.
func IsValidEmail(s string) bool {
	if strings.ContainsAny(s, " \t\n\r") {
		return false
	}
	at := strings.LastIndex(s, "@")
	if at <= 0 {
		return false
	}
	domain := s[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

// IsValidPhone accepts an optional leading '+' followed by 7-15 digits.
// Spaces, hyphens and parentheses may separate digit groups; anything
// else (letters included) is rejected.
func IsValidPhone(s string) bool {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == ' ' || r == '-' || r == '(' || r == ')':
			// separator, ignore
		default:
			return false
		}
	}
	return digits >= 7 && digits <= 15
}

// ToCents converts a major-unit price string ("24.00", "12.5", "7") to
// integer cents. Rejects negative, non-numeric, and prices with more
// than two significant fractional digits. Uses integer arithmetic so no
// float rounding error can creep into stored prices.
func ToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &FieldError{Field: "price", Reason: "price is required"}
	}
	if strings.HasPrefix(s, "-") {
		return 0, &FieldError{Field: "price", Reason: "price must not be negative"}
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	if intPart == "" && fracPart == "" {
		return 0, &FieldError{Field: "price", Reason: "price is not a number"}
	}
	if intPart == "" {
		intPart = "0"
	}

	major, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, &FieldError{Field: "price", Reason: "price is not a number"}
	}

	// Trailing zeros carry no significance: "12.500" is fine, "12.505" is not.
	fracPart = strings.TrimRight(fracPart, "0")
	if len(fracPart) > 2 {
		return 0, &FieldError{Field: "price", Reason: "price has more than two decimal places"}
	}
	// Digits only: ParseInt would accept a sign here ("12.+5").
	cents := int64(0)
	for _, r := range fracPart {
		if r < '0' || r > '9' {
			return 0, &FieldError{Field: "price", Reason: "price is not a number"}
		}
		cents = cents*10 + int64(r-'0')
	}
	if len(fracPart) == 1 {
		cents *= 10
	}

	return major*100 + cents, nil
}

// FormatPrice renders cents as a two-decimal major-unit string:
// 2400 -> "24.00".
func FormatPrice(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// DisplayPrice is FormatPrice with the currency symbol: 2400 -> "€24.00".
func DisplayPrice(cents int64) string {
	return CurrencySymbol + FormatPrice(cents)
}

// MenuItemInput validates the fields of a new menu item. Price arrives
// here already converted to cents.
func MenuItemInput(name, category string, priceCents int64) *FieldError {
	if strings.TrimSpace(name) == "" {
		return &FieldError{Field: "name", Reason: "name is required"}
	}
	if !models.ValidCategory(category) {
		return &FieldError{Field: "category", Reason: "unknown category: " + category}
	}
	if priceCents < 0 {
		return &FieldError{Field: "price", Reason: "price must not be negative"}
	}
	return nil
}

// ReservationInput validates a public reservation submission.
func ReservationInput(name, email, phone, date, timeOfDay string, guests int) *FieldError {
	if strings.TrimSpace(name) == "" {
		return &FieldError{Field: "name", Reason: "name is required"}
	}
	if !IsValidEmail(email) {
		return &FieldError{Field: "email", Reason: "invalid email address"}
	}
	if !IsValidPhone(phone) {
		return &FieldError{Field: "phone", Reason: "invalid phone number"}
	}
	if strings.TrimSpace(date) == "" {
		return &FieldError{Field: "date", Reason: "date is required"}
	}
	if strings.TrimSpace(timeOfDay) == "" {
		return &FieldError{Field: "time", Reason: "time is required"}
	}
	if guests <= 0 {
		return &FieldError{Field: "guests", Reason: "guests must be a positive number"}
	}
	return nil
}

// ContactInput validates a contact-form submission.
func ContactInput(name, email, subject, message string) *FieldError {
	if strings.TrimSpace(name) == "" {
		return &FieldError{Field: "name", Reason: "name is required"}
	}
	if !IsValidEmail(email) {
		return &FieldError{Field: "email", Reason: "invalid email address"}
	}
	if strings.TrimSpace(subject) == "" {
		return &FieldError{Field: "subject", Reason: "subject is required"}
	}
	if strings.TrimSpace(message) == "" {
		return &FieldError{Field: "message", Reason: "message is required"}
	}
	return nil
}
