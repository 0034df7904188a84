package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyReview is wrapped by GenerationError when the model returned no text.
var ErrEmptyReview = errors.New("model returned an empty review")

// ConfigError reports missing or invalid process inputs. It is returned
// before any network call is attempted.
type ConfigError struct {
	Missing []string
	Invalid []string
}

func (e *ConfigError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required configuration: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid configuration: "+strings.Join(e.Invalid, "; "))
	}
	if len(parts) == 0 {
		return "invalid configuration"
	}
	return strings.Join(parts, "; ")
}

// HasProblems reports whether anything was recorded.
func (e *ConfigError) HasProblems() bool {
	return len(e.Missing) > 0 || len(e.Invalid) > 0
}

// RequestError is a failed call to the hosting API. StatusCode is zero when
// the request never got a response.
type RequestError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s failed (status %d): %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// GenerationError is a failed or empty call to the generative model.
type GenerationError struct {
	Provider string
	Model    string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("review generation with %s (%s) failed: %v", e.Provider, e.Model, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
