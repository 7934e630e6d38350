package repository

import (
	"errors"
	"fmt"
)

// Kinds of narrative fetch failure. Match with errors.Is.
var (
	ErrEmptyResponse      = errors.New("empty response")
	ErrUnparsableResponse = errors.New("unparsable response")
	ErrMalformedJSON      = errors.New("malformed JSON")
	ErrNarrativeTransport = errors.New("narrative transport failure")
)

// NarrativeFetchError is returned for every narrative failure. Raw holds the
// upstream text when there was any.
type NarrativeFetchError struct {
	Kind error
	Raw  string
	Err  error
}

func (e *NarrativeFetchError) Error() string {
	switch e.Kind {
	case ErrUnparsableResponse:
		return fmt.Sprintf("%s: no JSON object found, raw response: %s", e.Kind, e.Raw)
	case ErrMalformedJSON:
		return fmt.Sprintf("%s: %v, raw response: %s", e.Kind, e.Err, e.Raw)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.Error()
}

func (e *NarrativeFetchError) Is(target error) bool {
	return target == e.Kind
}

func (e *NarrativeFetchError) Unwrap() error {
	return e.Err
}
