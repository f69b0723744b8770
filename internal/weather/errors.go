package weather

import (
	"errors"
	"fmt"
)

// NotFoundError is returned when a query resolves to no place.
type NotFoundError struct {
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("city %q not found. Please check the city name and try again.", e.Query)
}

// UpstreamError is returned when the provider answers with a non-success status.
type UpstreamError struct {
	Op         string
	Status     string
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Status)
}

// UnknownError wraps any failure that is neither a NotFoundError nor an UpstreamError.
type UnknownError struct {
	Err error
}

func (e *UnknownError) Error() string {
	return "unknown error occurred while fetching weather data"
}

func (e *UnknownError) Unwrap() error {
	return e.Err
}

// Classify returns err unchanged if it is a recognized error value and wraps
// it in an UnknownError otherwise.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var (
		nf *NotFoundError
		up *UpstreamError
		un *UnknownError
	)
	if errors.As(err, &nf) || errors.As(err, &up) || errors.As(err, &un) {
		return err
	}
	return &UnknownError{Err: err}
}
