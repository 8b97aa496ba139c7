package domain

import "errors"

var (
	ErrNotFound        = errors.New("record not found")
	ErrAlreadySelected = errors.New("candidate already selected for interview")
)
