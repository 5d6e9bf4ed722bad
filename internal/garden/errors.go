package garden

import (
	"errors"
	"fmt"
)

// Every failure the garden core produces matches exactly one of these with errors.Is.
var (
	ErrInvalidPlantType = errors.New("garden: invalid plant type")
	ErrInvalidSignature = errors.New("garden: invalid signature")
	ErrInternal         = errors.New("garden: internal error")
)

// PlantTypeError reports a plant type that is not in the catalog.
type PlantTypeError struct {
	Name string
}

func (e *PlantTypeError) Error() string {
	return fmt.Sprintf("`%s` is not a valid plant type", e.Name)
}

func (e *PlantTypeError) Is(target error) bool {
	return target == ErrInvalidPlantType
}

// SignatureFault says why a garden failed verification. Callers outside the
// server should not be told which fault occurred.
type SignatureFault int

const (
	FaultNotFound SignatureFault = iota + 1
	FaultMalformed
	FaultMismatch
)

func (f SignatureFault) String() string {
	switch f {
	case FaultNotFound:
		return "not_found"
	case FaultMalformed:
		return "malformed"
	case FaultMismatch:
		return "mismatch"
	default:
		return "unknown"
	}
}

type SignatureError struct {
	Fault SignatureFault
	Err   error
}

func (e *SignatureError) Error() string {
	var msg string
	switch e.Fault {
	case FaultNotFound:
		msg = "garden: signature not found"
	case FaultMalformed:
		msg = "garden: signature malformed"
	case FaultMismatch:
		msg = "garden: signature does not match garden"
	default:
		msg = "garden: invalid signature"
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *SignatureError) Is(target error) bool {
	return target == ErrInvalidSignature
}

func (e *SignatureError) Unwrap() error {
	return e.Err
}

// InternalError is an environment or invariant fault. Detail is for logs only.
type InternalError struct {
	Detail string
	Err    error
}

func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("garden: internal error: %s: %v", e.Detail, e.Err)
	}
	return "garden: internal error: " + e.Detail
}

func (e *InternalError) Is(target error) bool {
	return target == ErrInternal
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

func internalf(err error, format string, args ...any) *InternalError {
	return &InternalError{Detail: fmt.Sprintf(format, args...), Err: err}
}

// FaultOf extracts the signature fault from err, if any.
func FaultOf(err error) (SignatureFault, bool) {
	var sigErr *SignatureError
	if errors.As(err, &sigErr) {
		return sigErr.Fault, true
	}
	return 0, false
}
