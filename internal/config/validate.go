package config

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"vidquiz/internal/export"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks a config for correctness. Struct rules come from the
// validate tags; label overrides are checked against the player labels.
func Validate(cfg *Config) error {
	collector := &issueCollector{}

	if err := validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validate config: %w", err)
		}
		for _, fieldErr := range fieldErrs {
			collector.add(fieldPath(fieldErr), describe(fieldErr))
		}
	}

	keys := make([]string, 0, len(cfg.Labels))
	for key := range cfg.Labels {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if !export.KnownLabel(key) {
			collector.add("labels."+key, "unknown label")
		}
	}

	return collector.result()
}

// fieldPath drops the root struct name from the validator namespace.
func fieldPath(fieldErr validator.FieldError) string {
	namespace := fieldErr.Namespace()
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func describe(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "eq":
		return fmt.Sprintf("unsupported value %v (want %s)", fieldErr.Value(), fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fieldErr.Param(), " ", ", "))
	case "hostname_port":
		return "must be host:port"
	case "gte":
		return fmt.Sprintf("must be at least %s", fieldErr.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fieldErr.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", fieldErr.Param())
	default:
		return fmt.Sprintf("failed %q check", fieldErr.Tag())
	}
}

// PlayerLabels resolves the locale preset with the configured overrides.
func (cfg Config) PlayerLabels() (export.Labels, error) {
	labels, err := export.LabelsFor(cfg.Locale)
	if err != nil {
		return export.Labels{}, err
	}
	return labels.With(cfg.Labels)
}

// ExportOptions returns the exporter options described by the config.
func (cfg Config) ExportOptions() (export.Options, error) {
	labels, err := cfg.PlayerLabels()
	if err != nil {
		return export.Options{}, err
	}
	opts := export.DefaultOptions()
	opts.Title = cfg.Title
	opts.Locale = cfg.Locale
	opts.Labels = labels
	return opts, nil
}
