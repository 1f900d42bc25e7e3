package validator

import (
	"errors"
	"regexp"
	"strings"

	"pwshop/internal/usecase"
)

// チェックアウトフォームの検証。
// Usecaseは interface を依存注入
type checkoutValidator struct{}

func NewCheckoutValidator() usecase.CheckoutValidator {
	return &checkoutValidator{}
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// 必須項目・メール形式・支払い方法をチェックする
func (v *checkoutValidator) ValidateCheckout(in usecase.CheckoutInput) error {
	required := []struct {
		name  string
		value string
	}{
		{"full_name", in.FullName},
		{"email", in.Email},
		{"phone", in.Phone},
		{"address", in.Address},
		{"city", in.City},
		{"state", in.State},
		{"postal_code", in.PostalCode},
	}

	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return errors.New(f.name + " required")
		}
	}

	if !emailRe.MatchString(strings.TrimSpace(in.Email)) {
		return errors.New("invalid email")
	}

	if !in.PaymentMethod.Valid() {
		return errors.New("invalid payment_method")
	}

	return nil
}
