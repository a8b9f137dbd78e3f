package validation

import (
	"fmt"

	"github.com/hostfolio/property_mgmt_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators wires the domain enum validators into gin's
// binding engine so request DTOs can declare them in their binding tags.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine type %T", binding.Validator.Engine())
	}

	validations := map[string]validator.Func{
		"accounttype": func(fl validator.FieldLevel) bool {
			return domain.AccountType(fl.Field().String()).IsValid()
		},
		"vattreatment": func(fl validator.FieldLevel) bool {
			return domain.VATTreatment(fl.Field().String()).IsValid()
		},
		"entrysource": func(fl validator.FieldLevel) bool {
			return domain.EntrySource(fl.Field().String()).IsValid()
		},
		"deposittxntype": func(fl validator.FieldLevel) bool {
			return domain.DepositTransactionType(fl.Field().String()).IsValid()
		},
		"deductionreason": func(fl validator.FieldLevel) bool {
			return domain.DeductionReason(fl.Field().String()).IsValid()
		},
	}

	for tag, fn := range validations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %q validation: %w", tag, err)
		}
	}
	return nil
}
