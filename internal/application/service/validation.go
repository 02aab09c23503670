package service

import (
	"github.com/sangkips/boutique-api/internal/domain/enum"
	"github.com/sangkips/boutique-api/pkg/apperror"
	"github.com/sangkips/boutique-api/pkg/money"
	"github.com/sangkips/boutique-api/pkg/utils"
)

// fieldErrors collects validation failures for a single request.
type fieldErrors []apperror.FieldError

func (f *fieldErrors) add(field, message string) {
	*f = append(*f, apperror.FieldError{Field: field, Message: message})
}

// err returns a validation AppError, or nil when nothing was collected.
func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return apperror.NewValidationError(f)
}

func (f *fieldErrors) phone(field, phone string) {
	switch {
	case phone == "":
		f.add(field, "is required")
	case !utils.IsValidPhone(phone):
		f.add(field, "must be a 10 digit mobile number")
	}
}

func (f *fieldErrors) required(field, value string) {
	if value == "" {
		f.add(field, "is required")
	}
}

func (f *fieldErrors) nonNegative(field string, amount money.Amount) {
	if amount < 0 {
		f.add(field, "must not be negative")
	}
}

// PaymentInput is one instalment as entered at the counter.
type PaymentInput struct {
	Amount  money.Amount
	Method  enum.PaymentMethod
	Remarks string
}

func (f *fieldErrors) payment(prefix string, p *PaymentInput) {
	if p.Amount <= 0 {
		f.add(prefix+"amount", "must be greater than zero")
	}
	if !p.Method.IsValid() {
		f.add(prefix+"method", "must be one of cash, upi, card, bank")
	}
}
