// Package tokenizer converts raw counter values into classified token sequences.
package tokenizer

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"

	"github.com/aretw0/reel/pkg/domain"
)

// Separators are the characters classified as domain.KindSeparator.
const Separators = ".,-"

// Tokenize takes a raw value and splits it into a ValueSequence.
// Accepted shapes: any Go integer or float, json.Number, string, a sequence of
// strings ([]string or []any of strings), or a sequence of comparable opaque units.
func Tokenize(v any) (domain.ValueSequence, error) {
	switch val := v.(type) {
	case nil:
		return domain.ValueSequence{}, &domain.ShapeError{Reason: "value is nil"}
	case domain.ValueSequence:
		return val, nil
	case string:
		return tokenizeText(val), nil
	case json.Number:
		return tokenizeText(val.String()), nil
	case []string:
		return tokenizeStrings(val), nil
	case []any:
		return tokenizeSlice(val)
	}

	if s, ok := FormatNumber(v); ok {
		return tokenizeText(s), nil
	}

	return domain.ValueSequence{}, &domain.ShapeError{Reason: "unsupported value type", Value: v}
}

// FormatNumber renders a numeric value to its shortest decimal form.
// The sign and fractional part are preserved.
func FormatNumber(v any) (string, bool) {
	switch n := v.(type) {
	case int:
		return strconv.FormatInt(int64(n), 10), true
	case int8:
		return strconv.FormatInt(int64(n), 10), true
	case int16:
		return strconv.FormatInt(int64(n), 10), true
	case int32:
		return strconv.FormatInt(int64(n), 10), true
	case int64:
		return strconv.FormatInt(n, 10), true
	case uint:
		return strconv.FormatUint(uint64(n), 10), true
	case uint8:
		return strconv.FormatUint(uint64(n), 10), true
	case uint16:
		return strconv.FormatUint(uint64(n), 10), true
	case uint32:
		return strconv.FormatUint(uint64(n), 10), true
	case uint64:
		return strconv.FormatUint(n, 10), true
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64), true
	}
	return "", false
}

// Classify returns the kind of a single character.
func Classify(r rune) domain.TokenKind {
	switch {
	case r >= '0' && r <= '9':
		return domain.KindDigit
	case r == '.' || r == ',' || r == '-':
		return domain.KindSeparator
	default:
		return domain.KindLetter
	}
}

// classifyText classifies a sequence element, which may hold more than one rune.
func classifyText(s string) domain.TokenKind {
	runes := []rune(s)
	if len(runes) == 1 {
		return Classify(runes[0])
	}
	return domain.KindLetter
}

func tokenizeText(s string) domain.ValueSequence {
	tokens := make([]domain.Token, 0, len(s))
	for _, r := range s {
		tokens = append(tokens, domain.Token{Kind: Classify(r), Text: string(r)})
	}
	return domain.NewValueSequence(domain.ShapeText, tokens)
}

func tokenizeStrings(items []string) domain.ValueSequence {
	tokens := make([]domain.Token, len(items))
	for i, s := range items {
		tokens[i] = domain.Token{Kind: classifyText(s), Text: s}
	}
	return domain.NewValueSequence(domain.ShapeText, tokens)
}

func tokenizeSlice(items []any) (domain.ValueSequence, error) {
	if len(items) == 0 {
		return domain.NewValueSequence(domain.ShapeOpaque, nil), nil
	}

	strs := 0
	for _, item := range items {
		if _, ok := item.(string); ok {
			strs++
		}
	}

	switch strs {
	case len(items):
		texts := make([]string, len(items))
		for i, item := range items {
			texts[i] = item.(string)
		}
		return tokenizeStrings(texts), nil
	case 0:
		tokens := make([]domain.Token, len(items))
		for i, item := range items {
			if item == nil {
				return domain.ValueSequence{}, &domain.ShapeError{Reason: fmt.Sprintf("unit %d is nil", i)}
			}
			if !reflect.TypeOf(item).Comparable() {
				return domain.ValueSequence{}, &domain.ShapeError{Reason: fmt.Sprintf("unit %d is not comparable", i), Value: item}
			}
			tokens[i] = domain.Token{Kind: domain.KindOpaque, Unit: item}
		}
		return domain.NewValueSequence(domain.ShapeOpaque, tokens), nil
	default:
		return domain.ValueSequence{}, &domain.ShapeError{Reason: "sequence mixes text and opaque units", Value: items}
	}
}
