package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNetwork represents network-related errors
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeParsing represents payload parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeStructure represents unexpected page structure errors
	ErrorTypeStructure ErrorType = "structure"
	// ErrorTypeRateLimit represents rate limiting errors
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeState represents dedup state persistence errors
	ErrorTypeState ErrorType = "state"
	// ErrorTypeNotification represents webhook delivery errors
	ErrorTypeNotification ErrorType = "notification"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// ScrapeError represents a scraper-specific error
type ScrapeError struct {
	Type    ErrorType
	Source  string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Source, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Source, e.Message)
}

// Unwrap returns the underlying error
func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// New creates a new ScrapeError
func New(errType ErrorType, source, message string, err error) *ScrapeError {
	return &ScrapeError{
		Type:    errType,
		Source:  source,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewNetwork creates a new network error
func NewNetwork(source, message string, err error) *ScrapeError {
	return New(ErrorTypeNetwork, source, message, err)
}

// NewParsing creates a new parsing error
func NewParsing(source, message string, err error) *ScrapeError {
	return New(ErrorTypeParsing, source, message, err)
}

// NewStructure creates a new page structure error
func NewStructure(source, message string) *ScrapeError {
	return New(ErrorTypeStructure, source, message, nil)
}

// NewRateLimit creates a new rate limit error
func NewRateLimit(source string, duration time.Duration) *ScrapeError {
	message := fmt.Sprintf("rate limited for %v", duration)
	return New(ErrorTypeRateLimit, source, message, nil)
}

// NewState creates a new state persistence error
func NewState(message string, err error) *ScrapeError {
	return New(ErrorTypeState, "", message, err)
}

// NewNotification creates a new webhook delivery error
func NewNotification(source, message string, err error) *ScrapeError {
	return New(ErrorTypeNotification, source, message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *ScrapeError {
	return New(ErrorTypeConfiguration, "", message, err)
}
