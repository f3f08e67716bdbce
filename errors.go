package main

import (
	"fmt"
	"strings"
)

// ErrorCategory classifies the type of error
type ErrorCategory int

const (
	CategorySyntax ErrorCategory = iota
	CategorySemantic
	CategoryCodegen
	CategoryInternal
)

func (c ErrorCategory) String() string {
	switch c {
	case CategorySyntax:
		return "syntax"
	case CategorySemantic:
		return "semantic"
	case CategoryCodegen:
		return "codegen"
	case CategoryInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// SourceLocation represents a position in source code
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

func (loc SourceLocation) String() string {
	if loc.File == "" {
		return fmt.Sprintf("%d:%d", loc.Line, loc.Column)
	}
	return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Column)
}

// ErrorContext provides additional context for an error
type ErrorContext struct {
	HelpText string // Explanatory help text
}

// CompilerError represents a single compilation error.
// Every error is fatal: compilation of the current statement stops at the
// point of detection and the whole run exits non-zero.
type CompilerError struct {
	Category ErrorCategory
	Message  string
	Location SourceLocation
	Context  ErrorContext
}

// Error implements the error interface
func (e *CompilerError) Error() string {
	return fmt.Sprintf("%s: %s", e.Location, e.Message)
}

// Format returns a nicely formatted error message with context
func (e *CompilerError) Format(useColor bool) string {
	var sb strings.Builder

	// Error header
	if useColor {
		sb.WriteString("\033[1;31m") // Bold red
	}
	sb.WriteString("error: ")
	if useColor {
		sb.WriteString("\033[0m") // Reset
	}
	sb.WriteString(e.Message)
	sb.WriteString("\n")

	// Location
	if useColor {
		sb.WriteString("\033[1;34m") // Bold blue
	}
	sb.WriteString("  --> ")
	sb.WriteString(e.Location.String())
	if useColor {
		sb.WriteString("\033[0m")
	}
	sb.WriteString("\n")

	// Help text
	if e.Context.HelpText != "" {
		if useColor {
			sb.WriteString("\033[1;36m") // Bold cyan
		}
		sb.WriteString("   note: ")
		if useColor {
			sb.WriteString("\033[0m")
		}
		sb.WriteString(e.Context.HelpText)
		sb.WriteString("\n")
	}

	return sb.String()
}

// Helper functions for creating common errors

// MismatchedParenthesesError creates an error for unbalanced parentheses
func MismatchedParenthesesError(loc SourceLocation) *CompilerError {
	return &CompilerError{
		Category: CategorySyntax,
		Message:  "mismatched parentheses",
		Location: loc,
		Context: ErrorContext{
			HelpText: "every '(' needs a matching ')'",
		},
	}
}

// InvalidAssignmentError creates an error for a malformed assignment left side
func InvalidAssignmentError(loc SourceLocation) *CompilerError {
	return &CompilerError{
		Category: CategorySyntax,
		Message:  "invalid assignment",
		Location: loc,
		Context: ErrorContext{
			HelpText: "the left side of '=' must be a single variable name",
		},
	}
}

// InvalidValueError creates an error for an operand that is neither a
// literal nor a declared variable
func InvalidValueError(token string, loc SourceLocation) *CompilerError {
	return &CompilerError{
		Category: CategorySemantic,
		Message:  fmt.Sprintf("invalid value '%s'", token),
		Location: loc,
		Context: ErrorContext{
			HelpText: "operands must be literals or declared variables",
		},
	}
}

// MalformedExpressionError creates an error for a multi-token range with no operator
func MalformedExpressionError(loc SourceLocation) *CompilerError {
	return &CompilerError{
		Category: CategorySyntax,
		Message:  "malformed expression",
		Location: loc,
	}
}

// NestingTooDeepError creates an error for expressions beyond the recursion bound
func NestingTooDeepError(limit int, loc SourceLocation) *CompilerError {
	return &CompilerError{
		Category: CategorySyntax,
		Message:  fmt.Sprintf("expression too deeply nested (limit %d)", limit),
		Location: loc,
		Context: ErrorContext{
			HelpText: "the limit can be raised with the SLATEC_MAX_DEPTH environment variable",
		},
	}
}

// UnknownTypeError creates an error for an unrecognized type keyword
func UnknownTypeError(name string, loc SourceLocation) *CompilerError {
	return &CompilerError{
		Category: CategorySemantic,
		Message:  fmt.Sprintf("unknown type '%s'", name),
		Location: loc,
		Context: ErrorContext{
			HelpText: "valid types are 'num' and 'str'",
		},
	}
}

// DuplicateVariableError creates an error for redeclaring a variable
func DuplicateVariableError(name string, loc SourceLocation) *CompilerError {
	return &CompilerError{
		Category: CategorySemantic,
		Message:  fmt.Sprintf("variable '%s' is already declared", name),
		Location: loc,
	}
}

// TypeMismatchError creates an error for initializing a variable with a
// value of the wrong type
func TypeMismatchError(expected, actual string, loc SourceLocation) *CompilerError {
	return &CompilerError{
		Category: CategorySemantic,
		Message:  fmt.Sprintf("type mismatch: expected %s, got %s", expected, actual),
		Location: loc,
	}
}

// UnexpectedTokenError creates an error for unexpected tokens
func UnexpectedTokenError(expected, got string, loc SourceLocation) *CompilerError {
	return &CompilerError{
		Category: CategorySyntax,
		Message:  fmt.Sprintf("expected %s, got %s", expected, got),
		Location: loc,
	}
}

// UnexpectedCharacterError creates an error for bytes the lexer cannot tokenize
func UnexpectedCharacterError(ch byte, loc SourceLocation) *CompilerError {
	return &CompilerError{
		Category: CategorySyntax,
		Message:  fmt.Sprintf("unexpected character '%c'", ch),
		Location: loc,
	}
}

// InternalError creates a fatal internal error
func InternalError(message string, loc SourceLocation) *CompilerError {
	return &CompilerError{
		Category: CategoryInternal,
		Message:  message,
		Location: loc,
		Context: ErrorContext{
			HelpText: "this is an internal compiler error, please report this bug",
		},
	}
}
