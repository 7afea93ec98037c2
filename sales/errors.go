package sales

import "errors"

// Checkout rejection reasons. Each failure surfaces exactly one of
// these to the user; checks run in a fixed order and the first failure
// wins, never an aggregate of several.
var (
	ErrMissingProduct       = errors.New("no product selected")
	ErrInvalidQuantity      = errors.New("quantity must be a positive whole number")
	ErrInvalidPrice         = errors.New("unit price must be greater than zero")
	ErrInvalidDiscount      = errors.New("discount percentage must be between 0 and 100")
	ErrEmptyInvoice         = errors.New("sale needs at least one line item")
	ErrClientRequired       = errors.New("credit and partial sales require a client")
	ErrInvalidPartialAmount = errors.New("partial amount must be above zero and below the sale total; use a cash sale for full payment")
	ErrInvalidPaymentTerm   = errors.New("payment term must be between 1 and 365 days")
	ErrNoStoreSelected      = errors.New("no store selected")
	ErrInvalidSaleType      = errors.New("sale type must be cash, credit or partial")
)

var rejections = []error{
	ErrMissingProduct,
	ErrInvalidQuantity,
	ErrInvalidPrice,
	ErrInvalidDiscount,
	ErrEmptyInvoice,
	ErrClientRequired,
	ErrInvalidPartialAmount,
	ErrInvalidPaymentTerm,
	ErrNoStoreSelected,
	ErrInvalidSaleType,
}

// IsValidationError reports whether err is (or wraps) one of the
// checkout rejection reasons, as opposed to an infrastructure failure.
func IsValidationError(err error) bool {
	for _, r := range rejections {
		if errors.Is(err, r) {
			return true
		}
	}
	return false
}
