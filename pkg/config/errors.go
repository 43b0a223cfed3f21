package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfigNotFound indicates the configuration file was not found.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidYAML indicates YAML parsing failed.
	ErrInvalidYAML = errors.New("invalid YAML syntax")

	// ErrValidationFailed indicates configuration validation failed.
	ErrValidationFailed = errors.New("configuration validation failed")
)

// ValidationError describes one configuration problem with its location.
type ValidationError struct {
	Section string // config section (providers, cache, rate_limits, ...)
	Field   string // field name, optional
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: field '%s': %v", e.Section, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Section, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationErrors aggregates every problem found in a config so operators
// can fix them all in one pass.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "configuration validation failed with %d problem(s):", len(e))
	for _, problem := range e {
		b.WriteString("\n  - ")
		b.WriteString(problem.Error())
	}
	return b.String()
}

func (e ValidationErrors) Unwrap() error {
	return ErrValidationFailed
}

// LoadError wraps configuration loading errors with file context.
type LoadError struct {
	File string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.File, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
