package service

import (
	"context"
	"regexp"

	"github.com/google/uuid"
)

// paymentPhonePattern matches the mobile-money prefixes the platform
// accepts (MTN 078/079, Airtel 072/073).
var paymentPhonePattern = regexp.MustCompile(`^(078|079|072|073)\d{7}$`)

// IsValidPaymentPhone reports whether a phone number can receive a
// mobile-money charge.
func IsValidPaymentPhone(phone string) bool {
	return paymentPhonePattern.MatchString(phone)
}

// MobileMoneyProvider is the interface for a mobile-money payment provider.
// Charge debits the phone and returns the provider's transaction reference.
type MobileMoneyProvider interface {
	Charge(ctx context.Context, phone string, amount float64) (string, error)
}

// MockMobileMoney is a simulated provider. Every charge succeeds with a
// generated transaction reference.
type MockMobileMoney struct{}

// NewMockMobileMoney creates a new simulated mobile-money provider.
func NewMockMobileMoney() *MockMobileMoney {
	return &MockMobileMoney{}
}

// Charge simulates a mobile-money debit.
func (p *MockMobileMoney) Charge(ctx context.Context, phone string, amount float64) (string, error) {
	return "MM-" + uuid.New().String(), nil
}
