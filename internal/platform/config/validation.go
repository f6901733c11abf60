package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate reports fields by their koanf keys, so messages name the same
// path a YAML file or APP_ variable would use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "" || name == "-" {
			return f.Name
		}

		return name
	})

	v.RegisterStructValidation(validateRetry, RetryConfig{})
	v.RegisterStructValidation(validateShare, ShareConfig{})

	return v
}

func validateRetry(sl validator.StructLevel) {
	r, _ := sl.Current().Interface().(RetryConfig)
	if r.InitialInterval > 0 && r.MaxInterval > 0 && r.MaxInterval < r.InitialInterval {
		sl.ReportError(r.MaxInterval, "max_interval", "MaxInterval", "not_below", "initial_interval")
	}
}

// Cards are rendered into OutputDir and handed off by copying into
// OutboxDir; the two must not collide.
func validateShare(sl validator.StructLevel) {
	s, _ := sl.Current().Interface().(ShareConfig)
	if s.OutputDir != "" && s.OutputDir == s.OutboxDir {
		sl.ReportError(s.OutboxDir, "outbox_dir", "OutboxDir", "differs", "output_dir")
	}
}

// Validate checks c and lists every offending key. The process must not
// start on an invalid config.
func (c *Config) Validate() error {
	err := validate.Struct(c)

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	lines := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		lines[i] = describe(fe)
	}

	return fmt.Errorf("config validation failed:\n  %s", strings.Join(lines, "\n  "))
}

var tagMessages = map[string]string{
	"required":    "is required",
	"required_if": "is required when %s",
	"min":         "must be at least %s",
	"max":         "must be at most %s",
	"oneof":       "must be one of: %s",
	"url":         "must be a valid URL",
	"not_below":   "must not be below %s",
	"differs":     "must differ from %s",
}

func describe(fe validator.FieldError) string {
	key := formatFieldPath(fe.Namespace())

	msg, ok := tagMessages[fe.Tag()]
	if !ok {
		return fmt.Sprintf("%s failed validation: %s", key, fe.Tag())
	}

	if strings.Contains(msg, "%s") {
		msg = fmt.Sprintf(msg, fe.Param())
	}

	return key + " " + msg
}

// formatFieldPath drops the root struct from a namespace:
// "Config.client.retry.max_attempts" becomes "client.retry.max_attempts".
func formatFieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}

	return namespace
}
