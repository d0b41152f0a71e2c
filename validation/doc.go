// Package validation checks configuration structs and command arguments.
//
// Struct validation uses validator tags and reports fields by their
// mapstructure key, so messages name the key a user would put in a config
// file:
//
//	err := validation.Validate(&cfg)
//	// INVALID_INPUT: range.batch_size: must be at least 0
//
// Argument validation collects errors programmatically:
//
//	v := validation.New()
//	v.NonNegative("take", take).OneOf("reduce", op, ops)
//	if err := v.Validate(); err != nil { ... }
package validation
