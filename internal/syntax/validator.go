//go:build cgo

package syntax

import (
	"fmt"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_bash "github.com/tree-sitter/tree-sitter-bash/bindings/go"
)

// Validator checks shell commands with the tree-sitter bash grammar before
// they are spawned.
type Validator struct {
	language *tree_sitter.Language
}

// NewValidator creates a bash validator.
func NewValidator() *Validator {
	return &Validator{language: tree_sitter.NewLanguage(tree_sitter_bash.Language())}
}

// Available reports whether commands are actually parsed.
func (v *Validator) Available() bool { return true }

// Validate parses command and collects ERROR and MISSING nodes.
func (v *Validator) Validate(command string) (*ValidationResult, error) {
	if strings.TrimSpace(command) == "" {
		return &ValidationResult{Valid: true}, nil
	}

	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(v.language); err != nil {
		return nil, fmt.Errorf("failed to set parser language: %w", err)
	}

	source := []byte(command)
	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse command: parser returned nil tree")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("failed to get root node from parsed tree")
	}
	if !root.HasError() {
		return &ValidationResult{Valid: true, ParsedBytes: len(source)}, nil
	}

	errs := findErrorNodes(root, source)
	return &ValidationResult{Valid: len(errs) == 0, Errors: errs, ParsedBytes: len(source)}, nil
}

func findErrorNodes(root *tree_sitter.Node, source []byte) []SyntaxError {
	var errs []SyntaxError

	var traverse func(*tree_sitter.Node)
	traverse = func(n *tree_sitter.Node) {
		if n == nil {
			return
		}
		kind := n.Kind()
		missing := n.IsMissing()
		if n.IsError() || missing {
			pos := n.StartPosition()
			errs = append(errs, SyntaxError{
				Line:      int(pos.Row) + 1,
				Column:    int(pos.Column) + 1,
				Message:   errorMessage(n, source, missing),
				ErrorNode: kind,
			})
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			traverse(n.Child(i))
		}
	}
	traverse(root)

	// Error recovery can flag the root without leaving an ERROR node behind.
	if len(errs) == 0 {
		pos := root.StartPosition()
		errs = append(errs, SyntaxError{
			Line:      int(pos.Row) + 1,
			Column:    int(pos.Column) + 1,
			Message:   "syntax error",
			ErrorNode: "ERROR",
		})
	}
	return errs
}

func errorMessage(n *tree_sitter.Node, source []byte, missing bool) string {
	if missing {
		return fmt.Sprintf("missing %s", n.Kind())
	}
	start, end := n.StartByte(), n.EndByte()
	if start >= end || end > uint(len(source)) {
		return "syntax error"
	}
	return fmt.Sprintf("syntax error near '%s'", snippet(string(source[start:end])))
}
