package phonology

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration matches every *ConfigurationError via errors.Is
	ErrConfiguration = errors.New("invalid phonology configuration")

	// ErrInvalidParameter matches every *InvalidParameterError via errors.Is
	ErrInvalidParameter = errors.New("invalid parameter")
)

// ConfigurationError reports a phonology configuration rejected at construction
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("phonology.%s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// InvalidParameterError reports an out-of-range argument to a generator call
type InvalidParameterError struct {
	Param  string
	Value  int
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s %d: %s", e.Param, e.Value, e.Reason)
}

func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}
