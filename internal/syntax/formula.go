package syntax

import (
	"strings"

	"github.com/xuri/efp"
)

// Kind classifies a formula token for display.
type Kind int

const (
	KindText Kind = iota
	KindFunction
	KindRef
	KindNumber
	KindString
	KindOperator
	KindParen
	KindSeparator
	KindLogical
	KindError
)

// Token is a slice of formula text with its display kind.
type Token struct {
	Text string
	Kind Kind
}

// Tokens splits a formula for highlighting. Text that is not a formula, or
// that the tokenizer cannot reproduce exactly, comes back as one KindText
// token so that the display never differs from the buffer.
func Tokens(text string) []Token {
	if !strings.HasPrefix(text, "=") || len(text) == 1 {
		return plain(text)
	}

	parser := efp.ExcelParser()
	parsed := parser.Parse(text[1:])
	if len(parsed) == 0 {
		return plain(text)
	}

	out := []Token{{Text: "=", Kind: KindOperator}}
	for _, t := range parsed {
		out = append(out, convert(t))
	}

	var b strings.Builder
	for _, t := range out {
		b.WriteString(t.Text)
	}
	if b.String() != text {
		return plain(text)
	}
	return out
}

func plain(text string) []Token {
	if text == "" {
		return nil
	}
	return []Token{{Text: text, Kind: KindText}}
}

func convert(t efp.Token) Token {
	switch t.TType {
	case efp.TokenTypeFunction:
		if t.TSubType == efp.TokenSubTypeStart {
			return Token{Text: t.TValue + "(", Kind: KindFunction}
		}
		return Token{Text: ")", Kind: KindFunction}
	case efp.TokenTypeSubexpression:
		if t.TSubType == efp.TokenSubTypeStart {
			return Token{Text: "(", Kind: KindParen}
		}
		return Token{Text: ")", Kind: KindParen}
	case efp.TokenTypeArgument:
		return Token{Text: ",", Kind: KindSeparator}
	case efp.TokenTypeOperatorPrefix, efp.TokenTypeOperatorInfix, efp.TokenTypeOperatorPostfix:
		return Token{Text: t.TValue, Kind: KindOperator}
	case efp.TokenTypeWhitespace:
		return Token{Text: t.TValue, Kind: KindText}
	case efp.TokenTypeOperand:
		switch t.TSubType {
		case efp.TokenSubTypeRange:
			return Token{Text: t.TValue, Kind: KindRef}
		case efp.TokenSubTypeNumber:
			return Token{Text: t.TValue, Kind: KindNumber}
		case efp.TokenSubTypeText:
			return Token{Text: `"` + strings.ReplaceAll(t.TValue, `"`, `""`) + `"`, Kind: KindString}
		case efp.TokenSubTypeLogical:
			return Token{Text: t.TValue, Kind: KindLogical}
		case efp.TokenSubTypeError:
			return Token{Text: t.TValue, Kind: KindError}
		}
	}
	return Token{Text: t.TValue, Kind: KindText}
}
