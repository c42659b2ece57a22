package sms

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{"leading zero rewritten", "0712345678", "+254712345678", nil},
		{"already normalized", "+254712345678", "+254712345678", nil},
		{"foreign country code", "+255712345678", "", ErrCountryCode},
		{"bare digits", "712345678", "", ErrCountryCode},
		{"too short after rewrite", "071234567", "", ErrInvalidLen},
		{"too long after rewrite", "07123456789", "", ErrInvalidLen},
		{"plus prefix wrong length", "+2547123456", "", ErrInvalidLen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.in)
			if err != tt.wantErr {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeMessagesAreUserFacing(t *testing.T) {
	// The error text is returned verbatim as the response body.
	if ErrCountryCode.Error() != "Recipient number must have the country code for Kenya (+254)." {
		t.Fatalf("country code message changed: %q", ErrCountryCode.Error())
	}
	if ErrInvalidLen.Error() != "Please provide a valid phone number. (0712345678 | 0123456789)" {
		t.Fatalf("length message changed: %q", ErrInvalidLen.Error())
	}
}
