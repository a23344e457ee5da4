package domain

import (
	"fmt"

	"github.com/SscSPs/finance_dashboard/internal/apperrors"
	"github.com/shopspring/decimal"
)

func init() {
	// Persisted and served amounts are JSON numbers, matching the stored document layout.
	decimal.MarshalJSONWithoutQuotes = true
}

// validationError wraps apperrors.ErrValidation with a field specific message.
func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", apperrors.ErrValidation, fmt.Sprintf(format, args...))
}
