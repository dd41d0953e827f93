package runtime

import (
	"fmt"

	"github.com/aretw0/reel/internal/planner"
	"github.com/aretw0/reel/internal/tokenizer"
	"github.com/aretw0/reel/internal/validator"
	"github.com/aretw0/reel/pkg/domain"
)

// load validates and adopts the initial options.
func (c *Controller) load(opts domain.Options) error {
	if err := validator.ValidateOptions(opts); err != nil {
		return err
	}
	if _, err := planner.ResolvePool(opts.DummyCharacters); err != nil {
		return fmt.Errorf("dummy characters: %w", err)
	}

	value := domain.NewValueSequence(domain.ShapeText, nil)
	if opts.Value != nil {
		seq, err := tokenizer.Tokenize(opts.Value)
		if err != nil {
			return err
		}
		value = seq
	}
	c.adopt(value)

	start, err := c.tokenizeStart(opts.StartValue)
	if err != nil {
		return err
	}

	c.opts = opts
	c.value = value
	c.start = start
	return nil
}

func (c *Controller) tokenizeStart(v any) (*domain.ValueSequence, error) {
	if v == nil {
		return nil, nil
	}
	seq, err := tokenizer.Tokenize(v)
	if err != nil {
		return nil, fmt.Errorf("start value: %w", err)
	}
	if err := c.checkShape(seq); err != nil {
		return nil, fmt.Errorf("start value: %w", err)
	}
	c.adopt(seq)
	return &seq, nil
}

// checkShape rejects a value whose shape differs from the one the counter already shows.
// Empty values fit any shape.
func (c *Controller) checkShape(seq domain.ValueSequence) error {
	if seq.Len() == 0 || c.shape == "" || seq.Shape() == c.shape {
		return nil
	}
	return &domain.ShapeError{
		Reason: fmt.Sprintf("counter %q shows %s values, got %s", c.id, c.shape, seq.Shape()),
	}
}

func (c *Controller) adopt(seq domain.ValueSequence) {
	if c.shape == "" && seq.Len() > 0 {
		c.shape = seq.Shape()
	}
}

func (c *Controller) currentShape() domain.Shape {
	if c.shape == "" {
		return domain.ShapeText
	}
	return c.shape
}
