package domain

// Shape distinguishes text values from sequences of opaque renderable units.
// A counter instance keeps one shape for its whole life.
type Shape string

const (
	ShapeText   Shape = "text"
	ShapeOpaque Shape = "opaque"
)

// ValueSequence is the ordered list of tokens produced by tokenizing one value.
// It is immutable once built: accessors hand out copies.
type ValueSequence struct {
	tokens []Token
	shape  Shape
}

// NewValueSequence builds a sequence from tokens, assigning positions for the shape.
func NewValueSequence(shape Shape, tokens []Token) ValueSequence {
	out := make([]Token, len(tokens))
	copy(out, tokens)
	for i := range out {
		if shape == ShapeOpaque {
			out[i].Position = i
		} else {
			out[i].Position = len(out) - 1 - i
		}
	}
	return ValueSequence{tokens: out, shape: shape}
}

// Tokens returns a copy of the tokens.
func (v ValueSequence) Tokens() []Token {
	out := make([]Token, len(v.tokens))
	copy(out, v.tokens)
	return out
}

// At returns the token at index i.
func (v ValueSequence) At(i int) Token {
	return v.tokens[i]
}

// Len returns the number of tokens.
func (v ValueSequence) Len() int {
	return len(v.tokens)
}

// Shape returns the value shape.
func (v ValueSequence) Shape() Shape {
	if v.shape == "" {
		return ShapeText
	}
	return v.shape
}

// String concatenates the textual payloads.
func (v ValueSequence) String() string {
	return JoinTokens(v.tokens)
}

// Equal reports whether both sequences show the same tokens in the same order.
func (v ValueSequence) Equal(o ValueSequence) bool {
	if v.Shape() != o.Shape() || len(v.tokens) != len(o.tokens) {
		return false
	}
	for i := range v.tokens {
		if !v.tokens[i].Equal(o.tokens[i]) {
			return false
		}
	}
	return true
}

// IsNumeric reports whether every token is a digit or a separator.
func (v ValueSequence) IsNumeric() bool {
	if v.Shape() != ShapeText || len(v.tokens) == 0 {
		return false
	}
	for _, t := range v.tokens {
		if t.Kind != KindDigit && t.Kind != KindSeparator {
			return false
		}
	}
	return true
}
