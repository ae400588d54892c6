// Package envdefaults populates a struct of environment-tunable knobs with
// values from the environment, falling back to a per-field default. It
// adapts envstruct.Populate's tag-driven design (env/envDefault struct
// tags, injectable lookupEnv) to typed fields instead of string-only ones,
// since the config loader's knob (the cache TTL) is a duration, not a string.
package envdefaults

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

var (
	// ErrInvalidValue reports a struct or field shape Populate cannot handle.
	ErrInvalidValue = errors.New("v must be a pointer to a struct with supported field kinds")
	// ErrParseFailed reports an environment or default value that failed to
	// parse into the field's kind.
	ErrParseFailed = errors.New("failed to parse value for field")
)

// Populate fills the exported fields of the struct pointed to by v using
// `env:"VAR_NAME"` struct tags, falling back to `envDefault:"value"` when
// the environment variable is unset. Supported field kinds are string, int,
// and time.Duration. lookupEnv has the same signature as os.LookupEnv so
// tests can inject a fake environment.
func Populate(v any, lookupEnv func(string) (string, bool)) error {
	ptrRef := reflect.ValueOf(v)
	if ptrRef.Kind() != reflect.Ptr || ptrRef.IsNil() {
		return fmt.Errorf("%w: not a non-nil pointer: %v", ErrInvalidValue, v)
	}
	ref := ptrRef.Elem()
	if ref.Kind() != reflect.Struct {
		return fmt.Errorf("%w: not a struct: %v", ErrInvalidValue, v)
	}

	refType := ref.Type()
	var errorList []error

	for i := range refType.NumField() {
		field := ref.Field(i)
		structField := refType.Field(i)

		envVarName, ok := structField.Tag.Lookup("env")
		if !ok {
			continue
		}
		if !field.CanSet() {
			errorList = append(errorList, fmt.Errorf("%w: cannot set field: %s", ErrInvalidValue, structField.Name))
			continue
		}

		raw, ok := lookupEnv(envVarName)
		if !ok {
			raw, ok = structField.Tag.Lookup("envDefault")
			if !ok {
				errorList = append(errorList, fmt.Errorf("%w: %s has no default and %s is unset",
					ErrInvalidValue, structField.Name, envVarName))
				continue
			}
		}

		if err := setField(field, structField, raw); err != nil {
			errorList = append(errorList, err)
		}
	}

	if len(errorList) != 0 {
		return errors.Join(errorList...)
	}
	return nil
}

func setField(field reflect.Value, structField reflect.StructField, raw string) error {
	switch {
	case field.Type() == reflect.TypeOf(time.Duration(0)):
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("%w: field %s, value %q: %v", ErrParseFailed, structField.Name, raw, err)
		}
		field.SetInt(int64(d))
	case field.Kind() == reflect.Int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: field %s, value %q: %v", ErrParseFailed, structField.Name, raw, err)
		}
		field.SetInt(int64(n))
	case field.Kind() == reflect.String:
		field.SetString(raw)
	default:
		return fmt.Errorf("%w: field %s has unsupported kind %s", ErrInvalidValue, structField.Name, field.Kind())
	}
	return nil
}
