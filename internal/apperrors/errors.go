package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the authenticated user lacks the role required for the operation.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected server-side failure.
var ErrInternal = errors.New("internal error")

// Purchase settlement taxonomy. Every failure below aborts the settlement
// before any persisted mutation.
var (
	// ErrInvalidDenomination indicates a coin value outside the fixed denomination set.
	ErrInvalidDenomination = errors.New("invalid coin denomination")

	// ErrInvalidQuantity indicates a zero or negative quantity on a purchase line.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrProductNotFound indicates a referenced product id has no active product.
	ErrProductNotFound = errors.New("product not found")

	// ErrInsufficientStock indicates a requested quantity exceeds available stock.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInsufficientFunds indicates the purchase total exceeds the deposited amount.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrNoActiveDeposit indicates the buyer has no unutilized deposit to spend from.
	ErrNoActiveDeposit = errors.New("no active deposit")

	// ErrConcurrencyConflict indicates a concurrent mutation was detected at the
	// storage boundary. The whole operation may be retried by the caller.
	ErrConcurrencyConflict = errors.New("concurrent modification detected")

	// ErrUnmakeableChange indicates the change amount is not representable with the
	// fixed denomination set. This is a server-side invariant violation, not bad input.
	ErrUnmakeableChange = errors.New("change amount not representable in allowed coins")
)

// statusByErr is the fixed mapping from error kind to transport status code.
// Handlers must not invent their own mapping.
var statusByErr = []struct {
	err    error
	status int
}{
	{ErrValidation, http.StatusBadRequest},
	{ErrInvalidDenomination, http.StatusBadRequest},
	{ErrInvalidQuantity, http.StatusBadRequest},
	{ErrInsufficientStock, http.StatusBadRequest},
	{ErrInsufficientFunds, http.StatusBadRequest},
	{ErrUnauthorized, http.StatusUnauthorized},
	{ErrForbidden, http.StatusForbidden},
	{ErrNotFound, http.StatusNotFound},
	{ErrProductNotFound, http.StatusNotFound},
	{ErrNoActiveDeposit, http.StatusNotFound},
	{ErrDuplicate, http.StatusConflict},
	{ErrConcurrencyConflict, http.StatusConflict},
	{ErrUnmakeableChange, http.StatusInternalServerError},
	{ErrInternal, http.StatusInternalServerError},
}

// HTTPStatus resolves the transport status for an error via the fixed mapping
// table, defaulting to 500 for anything unclassified.
func HTTPStatus(err error) int {
	for _, entry := range statusByErr {
		if errors.Is(err, entry.err) {
			return entry.status
		}
	}
	return http.StatusInternalServerError
}

// AppError wraps an underlying error with a status code and a message safe to
// surface to clients.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}
