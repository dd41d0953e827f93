package domain

import "strings"

// TokenKind classifies a token for alignment and styling.
type TokenKind string

const (
	KindDigit     TokenKind = "digit"
	KindLetter    TokenKind = "letter"
	KindSeparator TokenKind = "separator"
	KindOpaque    TokenKind = "opaque"

	// KindBlank is the designated padding token. It renders as nothing.
	KindBlank TokenKind = "blank"
)

// Token is one position's semantic unit.
// Text kinds carry their literal character(s) in Text; Opaque tokens carry a handle in Unit
// that has no identity beyond equality of the handle itself.
type Token struct {
	Kind TokenKind `json:"kind"`
	Text string    `json:"text,omitempty"`
	Unit any       `json:"unit,omitempty"`

	// Position counts from the least-significant end for text values
	// and from the first emitted unit for opaque values.
	Position int `json:"position"`
}

// Blank returns the padding token.
func Blank() Token {
	return Token{Kind: KindBlank}
}

// Zero returns the digit zero, used to pad the start side of numeric values.
func Zero() Token {
	return Token{Kind: KindDigit, Text: "0"}
}

// Equal reports whether two tokens show the same thing. Position is ignored.
func (t Token) Equal(o Token) bool {
	if t.Kind != o.Kind {
		return false
	}
	if t.Kind == KindOpaque {
		return t.Unit == o.Unit
	}
	return t.Text == o.Text
}

// IsText reports whether the token carries a textual payload.
func (t Token) IsText() bool {
	return t.Kind == KindDigit || t.Kind == KindLetter || t.Kind == KindSeparator
}

// String returns the textual payload. Opaque and blank tokens render as empty.
func (t Token) String() string {
	if t.IsText() {
		return t.Text
	}
	return ""
}

// JoinTokens concatenates the textual payloads of tokens.
func JoinTokens(tokens []Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(t.String())
	}
	return sb.String()
}
