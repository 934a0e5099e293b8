package sqlnorm

import "fmt"

// ErrorKind is the closed set of failure discriminants a processing
// operation can raise. Kinds are compared by value, not by
// wrapped-error identity, so callers can branch on errors.As(err,
// *ProcessingError) and then switch on Kind.
type ErrorKind string

// The error kinds a processing operation can raise.
const (
	// ParameterStyleMismatch: the placeholder list is named but the
	// caller gave an ordered sequence, or vice versa, and the driver
	// does not allow mixed shapes.
	ParameterStyleMismatch ErrorKind = "ParameterStyleMismatch"

	// MissingParameter: a named placeholder has no corresponding key,
	// there are fewer positional values than placeholders, or a scalar
	// was given for more than one placeholder.
	MissingParameter ErrorKind = "MissingParameter"

	// ExtraParameter: the input has more values than placeholders, or
	// named keys go unreferenced by the SQL text.
	ExtraParameter ErrorKind = "ExtraParameter"

	// UnsupportedParameterStyle: the detected style is not in the
	// driver's supported_parameter_styles and cannot be rewritten.
	UnsupportedParameterStyle ErrorKind = "UnsupportedParameterStyle"

	// ParseError: the AST oracle failed to parse the statement and the
	// caller requested strict parsing.
	ParseError ErrorKind = "ParseError"

	// InvalidLiteralForStatic: a parameter value has no safe literal
	// rendering (e.g. raw bytes) under STATIC style.
	InvalidLiteralForStatic ErrorKind = "InvalidLiteralForStatic"
)

// ProcessingError wraps an error with the context a caller needs to
// act on it: the placeholder's name or ordinal, the shape the caller
// supplied, and the shape that was expected. A single struct carries
// enough context to print a precise one-line message, with Unwrap so
// callers can still errors.Is/As through to Cause.
type ProcessingError struct {
	Kind ErrorKind

	// Placeholder identifies the parameter the failure concerns: Name
	// when the placeholder is named, otherwise Ordinal.
	Placeholder ParameterInfo

	// ObservedShape and ExpectedShape describe the container shapes
	// involved, e.g. "map", "sequence", "scalar".
	ObservedShape string
	ExpectedShape string

	// Detail is an optional human-readable elaboration, e.g. naming an
	// unreferenced key or an unsupported style.
	Detail string

	// Cause is the underlying error, when one exists (e.g. a ParseError
	// from the AST oracle).
	Cause error
}

func (e *ProcessingError) Error() string {
	ref := placeholderRef(e.Placeholder)
	switch {
	case e.ObservedShape != "" && e.ExpectedShape != "":
		return fmt.Sprintf("%s: parameter %s: got %s, expected %s", e.Kind, ref, e.ObservedShape, e.ExpectedShape)
	case e.Detail != "":
		return fmt.Sprintf("%s: parameter %s: %s", e.Kind, ref, e.Detail)
	case e.Cause != nil:
		return fmt.Sprintf("%s: parameter %s: %v", e.Kind, ref, e.Cause)
	default:
		return fmt.Sprintf("%s: parameter %s", e.Kind, ref)
	}
}

func (e *ProcessingError) Unwrap() error {
	return e.Cause
}

func placeholderRef(p ParameterInfo) string {
	if p.Name != "" {
		return p.Name
	}
	return fmt.Sprintf("#%d", p.Ordinal)
}

func newMissingParameterError(p ParameterInfo, observedShape, expectedShape string) error {
	return &ProcessingError{
		Kind:          MissingParameter,
		Placeholder:   p,
		ObservedShape: observedShape,
		ExpectedShape: expectedShape,
	}
}

func newExtraParameterError(key string, detail string) error {
	return &ProcessingError{
		Kind:        ExtraParameter,
		Placeholder: ParameterInfo{Name: key},
		Detail:      detail,
	}
}

func newParameterStyleMismatchError(p ParameterInfo, observedShape, expectedShape string) error {
	return &ProcessingError{
		Kind:          ParameterStyleMismatch,
		Placeholder:   p,
		ObservedShape: observedShape,
		ExpectedShape: expectedShape,
	}
}

func newUnsupportedParameterStyleError(style ParameterStyle) error {
	return &ProcessingError{
		Kind:   UnsupportedParameterStyle,
		Detail: fmt.Sprintf("style %s is not supported by this driver", style),
	}
}

func newParseError(cause error) error {
	return &ProcessingError{
		Kind:  ParseError,
		Cause: cause,
	}
}

func newInvalidLiteralForStaticError(p ParameterInfo, detail string) error {
	return &ProcessingError{
		Kind:        InvalidLiteralForStatic,
		Placeholder: p,
		Detail:      detail,
	}
}
