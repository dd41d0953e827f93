package planner

import "github.com/aretw0/reel/pkg/domain"

// Align pairs old and next into two lists of equal length.
//
// Text values align right-to-left so low-order positions keep their identity when the
// value grows or shrinks. The start side is padded with zeros when the next value is
// numeric, with blanks otherwise. The target side is always padded with blanks.
//
// Opaque values align left-to-right and are padded with blanks on the right.
func Align(old, next domain.ValueSequence) (start, target []domain.Token) {
	startTokens := old.Tokens()
	targetTokens := next.Tokens()

	n := max(len(startTokens), len(targetTokens))

	if next.Shape() == domain.ShapeOpaque {
		return padRight(startTokens, n), padRight(targetTokens, n)
	}

	startPad := domain.Blank()
	if next.IsNumeric() {
		startPad = domain.Zero()
	}
	return padLeft(startTokens, n, startPad), padLeft(targetTokens, n, domain.Blank())
}

// Trim drops blank padding from both ends of a displayed snapshot so it can seed
// the next alignment.
func Trim(tokens []domain.Token) []domain.Token {
	lo, hi := 0, len(tokens)
	for lo < hi && tokens[lo].Kind == domain.KindBlank {
		lo++
	}
	for hi > lo && tokens[hi-1].Kind == domain.KindBlank {
		hi--
	}
	out := make([]domain.Token, hi-lo)
	copy(out, tokens[lo:hi])
	return out
}

func padLeft(tokens []domain.Token, n int, pad domain.Token) []domain.Token {
	out := make([]domain.Token, 0, n)
	for i := len(tokens); i < n; i++ {
		out = append(out, pad)
	}
	out = append(out, tokens...)
	return positioned(out, false)
}

func padRight(tokens []domain.Token, n int) []domain.Token {
	out := make([]domain.Token, 0, n)
	out = append(out, tokens...)
	for len(out) < n {
		out = append(out, domain.Blank())
	}
	return positioned(out, true)
}

func positioned(tokens []domain.Token, fromLeft bool) []domain.Token {
	for i := range tokens {
		if fromLeft {
			tokens[i].Position = i
		} else {
			tokens[i].Position = len(tokens) - 1 - i
		}
	}
	return tokens
}
