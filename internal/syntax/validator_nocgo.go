//go:build !cgo

package syntax

// Validator accepts every command when tree-sitter is not compiled in.
type Validator struct{}

// NewValidator creates a no-op validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Available reports whether commands are actually parsed.
func (v *Validator) Available() bool { return false }

// Validate always reports valid without cgo.
func (v *Validator) Validate(command string) (*ValidationResult, error) {
	return &ValidationResult{Valid: true, ParsedBytes: len(command)}, nil
}
