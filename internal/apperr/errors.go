package apperr

import "errors"

var (
	ErrBusy          = errors.New("submission already in progress")
	ErrNotConfigured = errors.New("delivery not configured")
)
