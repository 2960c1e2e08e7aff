package models

import "errors"

var (
	// ErrInvalidInput indicates a request failed validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidTransition indicates a lifecycle change that is not allowed from the current state.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrNotPregnant indicates a birth completion on an insemination that is no longer pregnant.
	ErrNotPregnant = errors.New("insemination is not pregnant")
)
