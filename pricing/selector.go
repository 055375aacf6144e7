/*
selector.go - Choosing one user strategy among many candidates

PURPOSE:
  Several user strategies can apply to the same buyer at once. The
  selector filters the candidates to the applicable ones and picks a
  winner by a selection mode. Instead of printing its decision, it
  returns a structured Selection trace alongside the price so callers
  can audit which strategy won and what every candidate would have
  charged.

SELECTION MODES:
  BestPrice:       evaluate every applicable strategy, lowest price wins;
                   ties keep the first encountered
  HighestPriority: the single max-priority strategy is evaluated; ties
                   broken by list order
  FirstApplicable: the first applicable strategy in list order

The selector never fails: with no applicable strategies the base price
passes through unchanged and the trace records no winner.
*/
package pricing

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// SELECTION MODE
// =============================================================================

type SelectionMode string

const (
	BestPrice       SelectionMode = "best_price"
	HighestPriority SelectionMode = "highest_priority"
	FirstApplicable SelectionMode = "first_applicable"
)

// =============================================================================
// SELECTION TRACE
// =============================================================================

// CandidatePrice records what one applicable strategy would have charged.
type CandidatePrice struct {
	StrategyID   StrategyID
	StrategyName string
	Priority     PriorityLevel
	Price        decimal.Decimal
}

// Selection is the structured outcome of strategy selection.
type Selection struct {
	Mode       SelectionMode
	Price      decimal.Decimal
	WinnerID   StrategyID   // empty when no strategy applied
	WinnerName string
	Candidates []CandidatePrice // applicable strategies, in input order
}

// Applied reports whether any strategy improved on the base price.
func (s Selection) Applied() bool { return s.WinnerID != "" }

// =============================================================================
// SELECTOR
// =============================================================================

// SelectUserPrice filters the candidate strategies for the buyer and picks
// a winner by mode. The returned Selection always carries a price: the
// base price when nothing applies.
func SelectUserPrice(
	basePrice decimal.Decimal,
	user UserContext,
	strategies []*UserStrategy,
	mode SelectionMode,
	at Timestamp,
) Selection {

	sel := Selection{Mode: mode, Price: basePrice}
	if len(strategies) == 0 {
		return sel
	}

	applicable := make([]*UserStrategy, 0, len(strategies))
	for _, s := range strategies {
		if s.ApplicableTo(user, at) {
			applicable = append(applicable, s)
		}
	}
	if len(applicable) == 0 {
		return sel
	}

	switch mode {
	case HighestPriority:
		winner := applicable[0]
		for _, s := range applicable[1:] {
			if s.Priority.HigherThan(winner.Priority) {
				winner = s
			}
		}
		price := winner.Evaluate(basePrice, user, at)
		sel.Candidates = append(sel.Candidates, CandidatePrice{
			StrategyID: winner.ID, StrategyName: winner.Name,
			Priority: winner.Priority, Price: price,
		})
		sel.Price = price
		sel.WinnerID = winner.ID
		sel.WinnerName = winner.Name

	case FirstApplicable:
		winner := applicable[0]
		price := winner.Evaluate(basePrice, user, at)
		sel.Candidates = append(sel.Candidates, CandidatePrice{
			StrategyID: winner.ID, StrategyName: winner.Name,
			Priority: winner.Priority, Price: price,
		})
		sel.Price = price
		sel.WinnerID = winner.ID
		sel.WinnerName = winner.Name

	default: // BestPrice
		for _, s := range applicable {
			price := s.Evaluate(basePrice, user, at)
			sel.Candidates = append(sel.Candidates, CandidatePrice{
				StrategyID: s.ID, StrategyName: s.Name,
				Priority: s.Priority, Price: price,
			})
			if price.LessThan(sel.Price) {
				sel.Price = price
				sel.WinnerID = s.ID
				sel.WinnerName = s.Name
			}
		}
	}

	return sel
}

// AnalyzeStrategies evaluates every applicable strategy for the buyer and
// returns the full comparison under BestPrice. This is the audit view: the
// candidates carry each strategy's would-be price even when it loses.
func AnalyzeStrategies(
	basePrice decimal.Decimal,
	user UserContext,
	strategies []*UserStrategy,
	at Timestamp,
) Selection {
	return SelectUserPrice(basePrice, user, strategies, BestPrice, at)
}
