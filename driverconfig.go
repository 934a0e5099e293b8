package sqlnorm

// TypeCoercion is a per-driver last-mile value transform applied to a
// parameter's runtime value immediately before emission.
// The key a driver registers under is the DataType the value was
// wrapped to (see typedparam.go); unwrapped values are never coerced.
type TypeCoercion func(value any) any

// OutputTransformer is a driver's final hook over the fully-rewritten
// SQL and its reshaped parameters.
type OutputTransformer func(sql string, params any) (string, any)

// DriverConfig is the opaque, immutable record a driver author
// constructs once and passes to Compile. The Processor treats it as
// declarative data: which placeholder styles the driver accepts, which
// it can execute, and the last-mile hooks it needs applied.
type DriverConfig struct {
	// Identity is a short, stable name used in cache keys and error
	// messages. It must be
	// unique per distinct configuration, not just per database product —
	// two configs for the same product with different supported styles
	// need different identities.
	Identity string

	// DefaultParameterStyle is the style the driver prefers to see after
	// normalization.
	DefaultParameterStyle ParameterStyle

	// SupportedParameterStyles are the styles the driver will accept as
	// input.
	SupportedParameterStyles map[ParameterStyle]struct{}

	// SupportedExecutionParameterStyles are the styles the driver can
	// actually send over the wire. Nil means "same as
	// SupportedParameterStyles".
	SupportedExecutionParameterStyles map[ParameterStyle]struct{}

	// DefaultExecutionParameterStyle is used when the detected style set
	// is not a subset of SupportedExecutionParameterStyles. Empty means
	// "same as DefaultParameterStyle".
	DefaultExecutionParameterStyle ParameterStyle

	// TypeCoercionMap holds per-DataType coercions applied to parameter
	// values before emission.
	TypeCoercionMap map[DataType]TypeCoercion

	// HasNativeListExpansion, when true, tells the Processor the driver
	// handles `IN (?)` list expansion itself; otherwise the Processor
	// expands it.
	HasNativeListExpansion bool

	// OutputTransformer is the optional final hook over (sql, params).
	OutputTransformer OutputTransformer

	// AllowMixedParameterStyles permits mixed input: a single statement
	// mixing placeholder styles (otherwise rejected with
	// UnsupportedParameterStyle), and a parameter container whose shape
	// disagrees with the placeholder addressing — named placeholders
	// fed from an ordered sequence, or positional placeholders from a
	// keyed map (otherwise rejected with ParameterStyleMismatch).
	AllowMixedParameterStyles bool

	// PreserveParameterFormat, when true, keeps the caller's container
	// shape (ordered vs keyed) in the output whenever the target style
	// allows either.
	PreserveParameterFormat bool
}

// supportsStyle reports whether style is in the set, treating a nil set
// as "accepts nothing" (a driver author must supply at least one style).
func supportsStyle(set map[ParameterStyle]struct{}, style ParameterStyle) bool {
	_, ok := set[style]
	return ok
}

// executionStyles returns the execution-style set to validate against,
// falling back to SupportedParameterStyles when no narrower wire set
// was declared.
func (c DriverConfig) executionStyles() map[ParameterStyle]struct{} {
	if c.SupportedExecutionParameterStyles != nil {
		return c.SupportedExecutionParameterStyles
	}
	return c.SupportedParameterStyles
}

// executionTarget returns the style to rewrite to when the input styles
// are not already a subset of the execution style set.
func (c DriverConfig) executionTarget() ParameterStyle {
	if c.DefaultExecutionParameterStyle != "" {
		return c.DefaultExecutionParameterStyle
	}
	return c.DefaultParameterStyle
}

// styleSet is a small constructor helper for driver packages building
// SupportedParameterStyles/SupportedExecutionParameterStyles literals.
func styleSet(styles ...ParameterStyle) map[ParameterStyle]struct{} {
	set := make(map[ParameterStyle]struct{}, len(styles))
	for _, s := range styles {
		set[s] = struct{}{}
	}
	return set
}

// StyleSet is the exported form of styleSet, for use by drivers/*
// packages outside this module.
func StyleSet(styles ...ParameterStyle) map[ParameterStyle]struct{} {
	return styleSet(styles...)
}
