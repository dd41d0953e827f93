package planner

import (
	"github.com/aretw0/reel/internal/tokenizer"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/ports"
)

// DefaultPool returns the digits 0 through 9.
func DefaultPool() []domain.Token {
	pool := make([]domain.Token, 10)
	for i := range pool {
		pool[i] = domain.Token{Kind: domain.KindDigit, Text: string(rune('0' + i))}
	}
	return pool
}

// ResolvePool tokenizes a user supplied dummy pool. A nil or empty pool yields the default digits.
func ResolvePool(v any) ([]domain.Token, error) {
	if v == nil {
		return DefaultPool(), nil
	}
	seq, err := tokenizer.Tokenize(v)
	if err != nil {
		return nil, err
	}
	if seq.Len() == 0 {
		return DefaultPool(), nil
	}
	return seq.Tokens(), nil
}

// Builder draws filler runs from a pool.
type Builder struct {
	rand ports.RandomSource
}

// NewBuilder creates a builder over the given randomness source.
func NewBuilder(src ports.RandomSource) *Builder {
	if src == nil {
		src = ports.NewTimeSource()
	}
	return &Builder{rand: src}
}

// Filler returns a run of count tokens ending on target.
// A count of zero or less returns an empty run: the slot jumps straight to its target.
func (b *Builder) Filler(target domain.Token, count int, pool []domain.Token) []domain.Token {
	if count <= 0 {
		return nil
	}
	if len(pool) == 0 {
		pool = DefaultPool()
	}

	run := make([]domain.Token, count)
	for i := 0; i < count-1; i++ {
		tok := pool[b.rand.Intn(len(pool))]
		tok.Position = target.Position
		run[i] = tok
	}
	run[count-1] = target
	return run
}
