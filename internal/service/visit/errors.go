package visit

import "errors"

var (
	ErrNotFound             = errors.New("visit not found")
	ErrNameRequired         = errors.New("patient name is required")
	ErrInvalidPaymentMethod = errors.New("payment method must be online or clinic")
	ErrInvalidGender        = errors.New("invalid gender value")
	ErrInvalidTransition    = errors.New("visit status transition not allowed")
	ErrAlreadyPaid          = errors.New("visit is already paid")
	ErrNotPaid              = errors.New("visit has not been paid")
	ErrBookingFailed        = errors.New("could not allocate a queue token, please retry")
)
