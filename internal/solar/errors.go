package solar

import (
	"fmt"
	"strings"
)

// NetworkError reports a failed download: connection error, timeout, or
// a non-2xx response (Status is zero when no response arrived).
type NetworkError struct {
	URL    string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("download %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("download %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DecodeError reports bytes that downloaded fine but could not be
// decoded as an image.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Attempt records how one source failed during a fetch.
type Attempt struct {
	Source Source
	Err    error
}

// FetchFailure means every source in the catalog failed. Attempts holds
// exactly one entry per source, in catalog order.
type FetchFailure struct {
	Attempts []Attempt
}

func (e *FetchFailure) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "all %d sources failed", len(e.Attempts))
	for _, a := range e.Attempts {
		fmt.Fprintf(&b, "; %s: %v", a.Source.Name, a.Err)
	}
	return b.String()
}

func (e *FetchFailure) Unwrap() []error {
	errs := make([]error, len(e.Attempts))
	for i, a := range e.Attempts {
		errs[i] = a.Err
	}
	return errs
}
