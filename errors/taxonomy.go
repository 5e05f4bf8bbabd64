package errors

// Kind classifies an error using the WebCrypto-derived taxonomy this
// module's callers (and its test vectors) key off of. It is carried as a
// tag on the underlying *Error value so the rest of the package's
// stack/hint/event machinery keeps working unchanged.
type Kind string

const (
	// KindNotSupported marks an algorithm name or multicodec entry that
	// is not present in the relevant allow-list.
	KindNotSupported Kind = "NotSupportedError"

	// KindInvalidAccess marks correctly typed input that is semantically
	// disallowed: wrong key type for the operation, wrong key algorithm,
	// disallowed key operation, same-pair ECDH, "is not valid for X".
	KindInvalidAccess Kind = "InvalidAccessError"

	// KindOperation marks a primitive-level failure: exceeded length,
	// invalid counter length, non-multiple-of-8 length, AEAD tag
	// mismatch, non-positive iteration count.
	KindOperation Kind = "OperationError"

	// KindType marks an argument error: missing required parameter,
	// wrong runtime type, or a value outside the allowed set or range.
	KindType Kind = "TypeError"
)

// kindTag is the tag key used to stash a Kind value on an *Error.
const kindTag = "kind"

// tagged builds a stack-carrying *Error with the given Kind and message,
// using the same root-error machinery as New so the stacktrace points at
// the caller of the exported constructor (NotSupported, InvalidAccess, ...).
func tagged(kind Kind, msg string) error {
	err := New(msg)
	var e *Error
	if As(err, &e) {
		e.SetTag(kindTag, kind)
	}
	return err
}

// taggedf is the Errorf equivalent of tagged.
func taggedf(kind Kind, format string, args ...interface{}) error {
	err := Errorf(format, args...)
	var e *Error
	if As(err, &e) {
		e.SetTag(kindTag, kind)
	}
	return err
}

// NotSupported returns a KindNotSupported error with the given message.
func NotSupported(msg string) error {
	return tagged(KindNotSupported, msg)
}

// NotSupportedf is the formatted equivalent of NotSupported.
func NotSupportedf(format string, args ...interface{}) error {
	return taggedf(KindNotSupported, format, args...)
}

// InvalidAccess returns a KindInvalidAccess error with the given message.
func InvalidAccess(msg string) error {
	return tagged(KindInvalidAccess, msg)
}

// InvalidAccessf is the formatted equivalent of InvalidAccess.
func InvalidAccessf(format string, args ...interface{}) error {
	return taggedf(KindInvalidAccess, format, args...)
}

// Operation returns a KindOperation error with the given message.
func Operation(msg string) error {
	return tagged(KindOperation, msg)
}

// Operationf is the formatted equivalent of Operation.
func Operationf(format string, args ...interface{}) error {
	return taggedf(KindOperation, format, args...)
}

// TypeErr returns a KindType error with the given message. Named `TypeErr`
// (not `Type`) to avoid colliding with the common `Type` identifier and to
// keep its call sites readable: `errors.TypeErr("...")`.
func TypeErr(msg string) error {
	return tagged(KindType, msg)
}

// TypeErrf is the formatted equivalent of TypeErr.
func TypeErrf(format string, args ...interface{}) error {
	return taggedf(KindType, format, args...)
}

// KindOf returns the Kind tag attached to err, if any, and whether one was
// found. Errors created outside this package (or via New/Wrap/Errorf
// without a taxonomy constructor) report ok == false.
func KindOf(err error) (kind Kind, ok bool) {
	var e *Error
	if !As(err, &e) {
		return "", false
	}
	v, found := e.Tags()[kindTag]
	if !found {
		return "", false
	}
	kind, ok = v.(Kind)
	return kind, ok
}

// IsNotSupported reports whether err was built with NotSupported(f).
func IsNotSupported(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindNotSupported
}

// IsInvalidAccess reports whether err was built with InvalidAccess(f).
func IsInvalidAccess(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindInvalidAccess
}

// IsOperation reports whether err was built with Operation(f).
func IsOperation(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindOperation
}

// IsTypeErr reports whether err was built with TypeErr(f).
func IsTypeErr(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindType
}
