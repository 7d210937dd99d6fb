package core

import (
	"errors"
	"fmt"
)

// Move rejection reasons. RequestSwap wraps them with the offending
// positions, so compare with errors.Is.
var (
	ErrInvalidPosition = errors.New("invalid position")
	ErrNotAdjacent     = errors.New("positions not adjacent")
	ErrInvalidConfig   = errors.New("invalid config")
)

// ConfigError describes a rejected engine configuration.
type ConfigError struct {
	Code    string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("match3: %s: %s", e.Code, e.Message)
}

// Is lets errors.Is(err, ErrInvalidConfig) match any ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

func configErr(code, format string, args ...any) error {
	return &ConfigError{Code: code, Message: fmt.Sprintf(format, args...)}
}
