// Package barcode validates retail barcodes before they reach a provider API.
package barcode

import (
	"strings"

	"github.com/lkarjala/curator/internal/errors"
)

// Normalize strips spaces and hyphens from a scanned barcode and verifies it
// is a 12-digit UPC-A or 13-digit EAN-13, including the check digit.
// It returns the cleaned digits on success and a ValidationError otherwise.
func Normalize(code string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, strings.TrimSpace(code))

	if cleaned == "" {
		return "", errors.NewValidationError("barcode", code)
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return "", errors.NewValidationError("barcode", code)
		}
	}
	if len(cleaned) != 12 && len(cleaned) != 13 {
		return "", errors.NewValidationError("barcode", code)
	}
	if !checkDigitValid(cleaned) {
		return "", errors.NewValidationError("barcode", code)
	}
	return cleaned, nil
}

// checkDigitValid verifies the GS1 mod-10 check digit. Digits are weighted
// 1 and 3 alternately from the right, excluding the check digit itself.
func checkDigitValid(digits string) bool {
	sum := 0
	weight := 3
	for i := len(digits) - 2; i >= 0; i-- {
		sum += int(digits[i]-'0') * weight
		if weight == 3 {
			weight = 1
		} else {
			weight = 3
		}
	}
	check := (10 - sum%10) % 10
	return check == int(digits[len(digits)-1]-'0')
}
