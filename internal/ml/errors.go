// Package ml provides the client for the match-outcome model service.
package ml

import "errors"

var (
	// ErrModelServiceUnavailable indicates the model service is unreachable
	ErrModelServiceUnavailable = errors.New("model service unavailable")

	// ErrInvalidPrediction indicates the prediction response is malformed
	ErrInvalidPrediction = errors.New("invalid prediction response")

	// ErrModelDisabled indicates model predictions are switched off
	ErrModelDisabled = errors.New("model predictions disabled")
)
