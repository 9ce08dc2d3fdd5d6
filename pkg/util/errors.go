// Package util provides shared helpers and common error types.
package util

import (
	"errors"
	"fmt"
)

// Sentinel errors for the loading and deployment stages. Callers classify
// failures with errors.Is against these rather than matching message text.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("config parse failed")
	ErrTimeout        = errors.New("connection timed out")
	ErrAuthFailed     = errors.New("authentication failed")
	ErrConnection     = errors.New("connection failed")
	ErrDeployFailed   = errors.New("deployment failed")
)

// NotFoundError reports a model file path that does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("config file not found: %s", e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return ErrConfigNotFound
}

// NewNotFoundError creates a not-found error for a model file path
func NewNotFoundError(path string) *NotFoundError {
	return &NotFoundError{Path: path}
}

// ParseError reports a model file whose content could not be parsed.
type ParseError struct {
	Path    string
	Details string
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("parsing config file %s", e.Path)
	if e.Details != "" {
		msg += ": " + e.Details
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return ErrConfigParse
}

// NewParseError creates a parse error with the underlying parser message
func NewParseError(path string, cause error) *ParseError {
	details := ""
	if cause != nil {
		details = cause.Error()
	}
	return &ParseError{Path: path, Details: details}
}

// ConnectError reports a failed connection attempt. Kind carries the
// classified cause (ErrTimeout, ErrAuthFailed, or ErrConnection) so that
// errors.Is distinguishes the three without string matching.
type ConnectError struct {
	Host    string
	Kind    error
	Details string
}

func (e *ConnectError) Error() string {
	msg := fmt.Sprintf("connecting to %s: %v", e.Host, e.Kind)
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}
	return msg
}

func (e *ConnectError) Unwrap() error {
	if e.Kind != nil {
		return e.Kind
	}
	return ErrConnection
}

// NewConnectError creates a connect error classified as kind
func NewConnectError(host string, kind error, details string) *ConnectError {
	return &ConnectError{Host: host, Kind: kind, Details: details}
}

// DeployError reports a failure while pushing configuration to a device
// that was already connected.
type DeployError struct {
	Host    string
	Op      string
	Details string
}

func (e *DeployError) Error() string {
	msg := fmt.Sprintf("deploying to %s: %s failed", e.Host, e.Op)
	if e.Details != "" {
		msg += ": " + e.Details
	}
	return msg
}

func (e *DeployError) Unwrap() error {
	return ErrDeployFailed
}

// NewDeployError creates a deploy error for a failed device operation
func NewDeployError(host, op string, cause error) *DeployError {
	details := ""
	if cause != nil {
		details = cause.Error()
	}
	return &DeployError{Host: host, Op: op, Details: details}
}
