package handlers

import (
	"fmt"

	"github.com/SscSPs/finance_dashboard/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs the enum validators used by the dto binding tags.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	validations := map[string]validator.Func{
		"account_type": func(fl validator.FieldLevel) bool {
			return domain.AccountType(fl.Field().String()).IsValid()
		},
		"txn_direction": func(fl validator.FieldLevel) bool {
			return domain.TransactionDirection(fl.Field().String()).IsValid()
		},
		"txn_status": func(fl validator.FieldLevel) bool {
			return domain.TransactionStatus(fl.Field().String()).IsValid()
		},
		"icon_kind": func(fl validator.FieldLevel) bool {
			return domain.IconKind(fl.Field().String()).IsValid()
		},
	}
	for tag, fn := range validations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %s validator: %w", tag, err)
		}
	}
	return nil
}
