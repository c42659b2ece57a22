package sms

import (
	"errors"
	"strings"
)

// Normalization errors carry the user-facing rejection text verbatim;
// handlers return them as the plain-text response body.
var (
	ErrCountryCode = errors.New("Recipient number must have the country code for Kenya (+254).")
	ErrInvalidLen  = errors.New("Please provide a valid phone number. (0712345678 | 0123456789)")
)

// Normalize rewrites a recipient number into the +254 form the gateway
// expects. A leading 0 is replaced with +254; a number already carrying
// a + must carry +254; anything else is rejected. The normalized result
// must be exactly 13 characters.
func Normalize(recipient string) (string, error) {
	switch {
	case strings.HasPrefix(recipient, "0"):
		recipient = "+254" + recipient[1:]
	case strings.HasPrefix(recipient, "+"):
		if !strings.HasPrefix(recipient, "+254") {
			return "", ErrCountryCode
		}
	default:
		return "", ErrCountryCode
	}

	if len(recipient) != 13 {
		return "", ErrInvalidLen
	}

	return recipient, nil
}
