package cli

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/kbukum/neysla/errors"
	"github.com/kbukum/neysla/resource"
)

const schemaURL = "schema.json"

// checkSchema validates the envelope payload against the JSON schema in path.
// Violations are collected into one SCHEMA_MISMATCH error.
func checkSchema(path string, env *resource.Envelope) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.InvalidInput("schema", "cannot read schema file").WithCause(err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(raw)); err != nil {
		return errors.InvalidInput("schema", "invalid schema").WithCause(err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return errors.InvalidInput("schema", "invalid schema").WithCause(err)
	}

	data, err := payload(env)
	if err != nil {
		return errors.New(errors.ErrCodeSchemaMismatch, "response payload is not JSON").WithCause(err)
	}

	err = schema.Validate(data)
	if err == nil {
		return nil
	}
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return errors.New(errors.ErrCodeSchemaMismatch, "schema validation failed").WithCause(err)
	}
	violations := collectViolations(verr)
	return errors.New(errors.ErrCodeSchemaMismatch, strings.Join(violations, "; ")).
		WithDetail("violations", violations)
}

// payload returns the decoded JSON value of the envelope. Payloads kept as
// text or bytes are decoded here.
func payload(env *resource.Envelope) (any, error) {
	var raw []byte
	switch v := env.Data.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return env.Data, nil
	}
	var decoded any
	if err := sonic.ConfigStd.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}

func collectViolations(err *jsonschema.ValidationError) []string {
	var out []string
	if err.Message != "" && len(err.Causes) == 0 {
		loc := err.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		out = append(out, fmt.Sprintf("%s: %s", loc, err.Message))
	}
	for _, cause := range err.Causes {
		out = append(out, collectViolations(cause)...)
	}
	return out
}
