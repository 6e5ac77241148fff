package keyfinder

import "fmt"

// InvalidStateError reports an operation attempted on audio that is not
// configured for it, such as counting frames before the channel count
// is set, or configuring a stream parameter with a non-positive value.
type InvalidStateError struct {
	Op     string
	Reason string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("keyfinder: %s: %s", e.Op, e.Reason)
}

// UnknownKeyCodeError reports a key code outside the 0-24 domain the
// detection engine is defined over. Codes are never coerced to a
// default; an out-of-range code always surfaces as this error.
type UnknownKeyCodeError struct {
	Code int
}

func (e *UnknownKeyCodeError) Error() string {
	return fmt.Sprintf("keyfinder: unknown key code %d", e.Code)
}
