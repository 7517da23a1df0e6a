// Package envstruct fills configuration structs from environment
// variables declared as struct tags.
package envstruct

import (
	"github.com/mkarvon/sleuthline/internal/errors"
	"log/slog"
	"reflect"
)

var (
	// ErrEnvNotSet marks a tagged field whose variable is absent and has no default.
	ErrEnvNotSet = errors.NewSentinel("environment variable not set")
	// ErrInvalidValue marks a target that is not a settable struct of strings.
	ErrInvalidValue = errors.NewSentinel("v must be a pointer to a struct")
)

// Populate sets every field of the struct pointed to by v that carries an
// `env:"NAME"` tag from the named environment variable, read through
// lookupEnv (same signature as [os.LookupEnv] so tests can inject their
// own environment). A missing variable falls back to the field's
// `envDefault` tag; without one the field contributes ErrEnvNotSet.
// Only string fields are supported. All field errors are joined so a bad
// deployment reports every problem at once.
func Populate(v any, lookupEnv func(string) (string, bool)) error {
	ptrRef := reflect.ValueOf(v)
	if ptrRef.Kind() != reflect.Ptr {
		return errors.Wrap(ErrInvalidValue, "not pointer", slog.Any("v", v))
	}
	ref := ptrRef.Elem()
	if ref.Kind() != reflect.Struct {
		return errors.Wrap(ErrInvalidValue, "not struct", slog.Any("v", v))
	}

	refType := ref.Type()

	var (
		errorList  []error
		ok         bool
		envVarName string
	)

	for i := range refType.NumField() {
		refField := ref.Field(i)
		refTypeField := refType.Field(i)
		tag := refTypeField.Tag

		envVarName, ok = tag.Lookup("env")
		if ok {
			if !refField.CanSet() {
				errorList = append(errorList, errors.Wrap(ErrInvalidValue, "cannot set field",
					slog.String("fieldName", refTypeField.Name)))
				continue
			}

			if refField.Kind() != reflect.String {
				errorList = append(errorList, errors.Wrap(ErrInvalidValue, "only strings are supported",
					slog.String("envVarName", envVarName),
					slog.String("fieldType", refField.Kind().String()),
					slog.String("fieldName", refTypeField.Name),
				))
				continue
			}

			if val, err := envLookupWithFallback(envVarName, tag, lookupEnv); err != nil {
				errorList = append(errorList, err)
				continue
			} else {
				refField.Set(reflect.ValueOf(val))
			}
		}
	}

	if len(errorList) != 0 {
		// Join the errors into a single error.
		return errors.Join(errorList...)
	}

	return nil
}

func envLookupWithFallback(
	envVarName string, tag reflect.StructTag, lookupEnv func(string) (string, bool)) (string, error) {
	envVarValue, ok := lookupEnv(envVarName)
	if !ok {
		envVarValue, ok = tag.Lookup("envDefault")
		if !ok {
			return "", errors.Wrap(ErrEnvNotSet, "environment variable not set", slog.String("envVarName", envVarName))
		}
	}
	return envVarValue, nil
}
