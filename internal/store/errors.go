package store

import "errors"

var (
	ErrVisitNotFound        = errors.New("visit not found")
	ErrSettingsNotFound     = errors.New("clinic settings not found")
	ErrPrescriptionNotFound = errors.New("prescription not found")
	ErrDuplicateToken       = errors.New("token number already taken for this date")
	ErrInvalidTransition    = errors.New("invalid visit status transition")
)
