package enums

import (
	"fmt"
	"strings"
)

// PaymentMethod enumerates the supported payment options.
type PaymentMethod string

const (
	PaymentMethodCOD PaymentMethod = "cod"
)

func (p PaymentMethod) IsValid() bool {
	return p == PaymentMethodCOD
}

func ParsePaymentMethod(value string) (PaymentMethod, error) {
	normalized := PaymentMethod(strings.ToLower(strings.TrimSpace(value)))
	if normalized.IsValid() {
		return normalized, nil
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
