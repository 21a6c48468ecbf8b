package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNetwork represents fetch-level errors (DNS, timeout, non-2xx)
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeParse represents listing or article shape errors
	ErrorTypeParse ErrorType = "parse"
	// ErrorTypeRateLimit represents rate limiting by a source
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypePersistence represents durable-write errors
	ErrorTypePersistence ErrorType = "persistence"
	// ErrorTypeState represents corrupt or unreadable persisted state
	ErrorTypeState ErrorType = "state"
	// ErrorTypePublisher represents publisher-related errors
	ErrorTypePublisher ErrorType = "publisher"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// HarvestError represents a harvester-specific error
type HarvestError struct {
	Type    ErrorType
	Source  string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *HarvestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Source, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Source, e.Message)
}

// Unwrap returns the underlying error
func (e *HarvestError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether the error must abort the partition's run.
// Network, parse and state errors degrade to empty results instead.
func (e *HarvestError) IsFatal() bool {
	switch e.Type {
	case ErrorTypePersistence, ErrorTypeConfiguration:
		return true
	default:
		return false
	}
}

// New creates a new HarvestError
func New(errType ErrorType, source, message string, err error) *HarvestError {
	return &HarvestError{
		Type:    errType,
		Source:  source,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewNetwork creates a new network error
func NewNetwork(source, message string, err error) *HarvestError {
	return New(ErrorTypeNetwork, source, message, err)
}

// NewParse creates a new parse error
func NewParse(source, message string, err error) *HarvestError {
	return New(ErrorTypeParse, source, message, err)
}

// NewRateLimit creates a new rate limit error
func NewRateLimit(source string, duration time.Duration) *HarvestError {
	message := fmt.Sprintf("rate limited for %v", duration)
	return New(ErrorTypeRateLimit, source, message, nil)
}

// NewPersistence creates a new persistence error
func NewPersistence(source, message string, err error) *HarvestError {
	return New(ErrorTypePersistence, source, message, err)
}

// NewState creates a new persisted-state error
func NewState(source, message string, err error) *HarvestError {
	return New(ErrorTypeState, source, message, err)
}

// NewPublisher creates a new publisher error
func NewPublisher(source, message string, err error) *HarvestError {
	return New(ErrorTypePublisher, source, message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *HarvestError {
	return New(ErrorTypeConfiguration, "", message, err)
}
