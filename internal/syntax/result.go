// Package syntax checks shell commands before SHELL spawns them and splits
// formulas into tokens for highlighting.
package syntax

import (
	"errors"
	"strings"
)

// SyntaxError is a single problem found in a command.
type SyntaxError struct {
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	Message   string `json:"message"`
	ErrorNode string `json:"error_node"`
}

// ValidationResult is the outcome of Validate.
type ValidationResult struct {
	Valid       bool          `json:"valid"`
	Errors      []SyntaxError `json:"errors,omitempty"`
	ParsedBytes int           `json:"parsed_bytes"`
}

// Err returns the first syntax error, or nil when the command is valid.
func (r *ValidationResult) Err() error {
	if r == nil || r.Valid {
		return nil
	}
	if len(r.Errors) == 0 {
		return errors.New("syntax error")
	}
	return errors.New(r.Errors[0].Message)
}

// Check validates command and returns its first syntax error.
func (v *Validator) Check(command string) error {
	res, err := v.Validate(command)
	if err != nil {
		return err
	}
	return res.Err()
}

const maxSnippet = 40

func snippet(s string) string {
	s = strings.ReplaceAll(s, "\n", `\n`)
	if r := []rune(s); len(r) > maxSnippet {
		return string(r[:maxSnippet]) + "..."
	}
	return s
}
