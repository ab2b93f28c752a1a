package scrypt

import "errors"

// Sentinel errors corresponding to the three error kinds of this module.
// Wrap them with fmt.Errorf("scrypt: ...: %w", Err...) at the call site so
// errors.Is still matches the kind.
var (
	// ErrInvalidType names the kind for an argument that is not the byte
	// sequence or integer kind the operation expects. Go's static parameter
	// types rule such arguments out at compile time, so no function in this
	// module returns it.
	ErrInvalidType = errors.New("scrypt: invalid argument type")

	// ErrInvalidParams is returned when a numeric parameter is outside its
	// declared domain: N not a power of two greater than 1, r or p <= 0,
	// r*p >= 2^30, olen out of range, a salt too long for MCF, or a cost
	// that would overflow this implementation's memory limit.
	ErrInvalidParams = errors.New("scrypt: invalid parameters")

	// ErrInvalidFormat is returned when an MCF record fails to parse: wrong
	// tag, wrong field count, malformed hex, malformed base64, or a decoded
	// key of the wrong length.
	ErrInvalidFormat = errors.New("scrypt: invalid mcf record")
)
