// Package validation validates descriptors and configuration structs.
//
// Struct tag validation uses go-playground/validator with two extra tags:
//
//   - header_names: every key of a map is a valid HTTP header field name
//   - header_values: every value of a map[string]string is a valid header value
//
// Programmatic checks collect field errors and return a single AppError:
//
//	v := validation.New()
//	v.Required("url", cfg.URL)
//	err := v.Validate()
package validation
