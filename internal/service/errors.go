package service

import "errors"

var (
	ErrMixedEntities = errors.New("samples belong to more than one entity")
	ErrNoSamples     = errors.New("no location samples")
	ErrInvalidSample = errors.New("invalid location sample")
	ErrInvalidWindow = errors.New("invalid time window")
	ErrBatchTooLarge = errors.New("sample batch too large")
)
