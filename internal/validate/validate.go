// Package validate checks caller input before it reaches the ledger. The
// ledger itself does not re-validate.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/theirongolddev/savr/internal/apperrors"
	"github.com/theirongolddev/savr/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Compare decimals numerically in gt/lt tags.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("field"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

type goalFields struct {
	Name         string          `field:"name" validate:"required"`
	TargetAmount decimal.Decimal `field:"targetAmount" validate:"gt=0"`
	Currency     string          `field:"currency" validate:"omitempty,oneof=USD IDR"`
	ImageURI     string          `field:"imageUri" validate:"omitempty,uri"`
}

type transactionFields struct {
	Amount      decimal.Decimal `field:"amount" validate:"gt=0"`
	Type        string          `field:"type" validate:"required,oneof=deposit withdrawal"`
	Description string          `field:"description" validate:"required"`
}

// Goal checks a new goal draft as of now.
func Goal(d model.GoalDraft, now time.Time) error {
	err := check(goalFields{
		Name:         strings.TrimSpace(d.Name),
		TargetAmount: d.TargetAmount,
		Currency:     string(d.Currency),
		ImageURI:     d.ImageURI,
	})
	if err != nil {
		return err
	}
	return futureDate(d.TargetDate, now)
}

// GoalUpdate checks only the fields an update supplies.
func GoalUpdate(u model.GoalUpdate, now time.Time) error {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return apperrors.Invalid("name", "must not be empty")
	}
	if u.TargetAmount != nil && !u.TargetAmount.IsPositive() {
		return apperrors.Invalid("targetAmount", "must be greater than zero")
	}
	if u.Currency != nil && *u.Currency != "" && !u.Currency.Valid() {
		return apperrors.Invalid("currency", "must be one of "+currencyList())
	}
	if u.ImageURI != nil && *u.ImageURI != "" {
		if err := validate.Var(*u.ImageURI, "uri"); err != nil {
			return apperrors.Invalid("imageUri", "must be a valid URI")
		}
	}
	if u.TargetDate != nil {
		return futureDate(*u.TargetDate, now)
	}
	return nil
}

// Transaction checks a transaction draft against the goal it targets.
// Withdrawals may not exceed the current balance.
func Transaction(g model.SavingsGoal, d model.TransactionDraft) error {
	err := check(transactionFields{
		Amount:      d.Amount,
		Type:        string(d.Type),
		Description: strings.TrimSpace(d.Description),
	})
	if err != nil {
		return err
	}
	if d.Type == model.Withdrawal && d.Amount.GreaterThan(g.CurrentAmount) {
		return apperrors.Invalid("amount", fmt.Sprintf(
			"insufficient balance: cannot withdraw %s, current balance is %s",
			d.Amount.String(), g.CurrentAmount.String()))
	}
	return nil
}

func futureDate(target, now time.Time) error {
	if !target.After(now) {
		return apperrors.Invalid("targetDate", "must be in the future")
	}
	return nil
}

func check(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	fe := verrs[0]
	return apperrors.Invalid(fe.Field(), reason(fe))
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "gt":
		return "must be greater than zero"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "uri":
		return "must be a valid URI"
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}

func currencyList() string {
	codes := make([]string, len(model.Currencies))
	for i, c := range model.Currencies {
		codes[i] = string(c.Code)
	}
	return strings.Join(codes, ", ")
}
