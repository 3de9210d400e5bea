package extract

import (
	"context"

	"github.com/joseph-ayodele/visiting-cards/constants"
	"github.com/joseph-ayodele/visiting-cards/internal/cardfields"
)

// RulesAdapter runs the rule-based card engine as a FieldExtractor.
type RulesAdapter struct {
	engine *cardfields.Engine
}

func NewRulesAdapter(engine *cardfields.Engine) *RulesAdapter {
	if engine == nil {
		engine = cardfields.NewEngine(cardfields.DefaultRules())
	}
	return &RulesAdapter{engine: engine}
}

// ExtractFields never fails on content; it only honours cancellation.
func (a *RulesAdapter) ExtractFields(ctx context.Context, text string) (cardfields.ContactFields, error) {
	if err := ctx.Err(); err != nil {
		return cardfields.ContactFields{Website: constants.WebsiteNotFound}, err
	}
	return a.engine.Extract(text), nil
}
