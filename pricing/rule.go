/*
rule.go - Price rules, customer-choice reduction, and day aggregation

PURPOSE:
  A PriceRule is a named discount computation applied to each (day, unit
  price) pair. An offer may carry several rules; the engine always quotes
  the cheapest applicable one. This file also holds the two reduction
  steps that turn raw per-unit, per-day prices into one offer total:

    1. ReduceDayPrice: combine interchangeable units into one day price
       (cheapest-of for Single/Multiple, sum-of for Fixed)
    2. AggregateStay: sum the reduced day price across the occupancy range

RULE KINDS:
  passthrough:    unit price unchanged (the default rate)
  percent_off:    unit price * (1 - pct/100)
  amount_off:     unit price - amount, floored at zero
  weekend_markup: unit price * (1 + pct/100) on Saturdays/Sundays only

MONOTONICITY:
  Adding a rule can only keep or lower the quoted minimum - the engine
  takes the minimum total across rules.

SEE ALSO:
  - catalog/offer.go: offers that own rule lists
  - factory/strategy.go: JSON construction of rules
*/
package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

// =============================================================================
// PRICE RULE
// =============================================================================

type RuleKind string

const (
	RulePassthrough   RuleKind = "passthrough"
	RulePercentOff    RuleKind = "percent_off"
	RuleAmountOff     RuleKind = "amount_off"
	RuleWeekendMarkup RuleKind = "weekend_markup"
)

// PriceRule maps a (day, unit price) pair to a rule-adjusted price.
type PriceRule struct {
	ID          RuleID
	Name        string
	Kind        RuleKind
	Value       decimal.Decimal // pct for percent_off/weekend_markup, amount for amount_off
	DefaultRate bool            // marks the rule used when an offer lists none
}

// UnitPrice applies the rule to one unit's price for one day.
func (pr PriceRule) UnitPrice(day Day, unitPrice decimal.Decimal) decimal.Decimal {
	switch pr.Kind {
	case RulePercentOff:
		return unitPrice.Mul(one.Sub(pr.Value.Div(hundred)))
	case RuleAmountOff:
		adjusted := unitPrice.Sub(pr.Value)
		if adjusted.IsNegative() {
			return zero
		}
		return adjusted
	case RuleWeekendMarkup:
		if day.IsWeekend() {
			return unitPrice.Mul(one.Add(pr.Value.Div(hundred)))
		}
		return unitPrice
	default:
		return unitPrice
	}
}

// PassthroughRule returns the identity rule used as a default rate.
func PassthroughRule(id RuleID, name string) PriceRule {
	return PriceRule{ID: id, Name: name, Kind: RulePassthrough, DefaultRate: true}
}

// =============================================================================
// PRICE SOURCE - External collaborator capability
// =============================================================================

// PriceSource supplies the minimum available price for a unit on a day.
// Absence of data is an error, never a zero price.
type PriceSource interface {
	MinPriceForDay(unitID UnitID, day Day) (decimal.Decimal, error)
}

// =============================================================================
// CUSTOMER-CHOICE REDUCTION
// =============================================================================

// ReduceDayPrice combines the per-unit prices of one day into a single day
// price according to the customer choice. An empty collection yields zero;
// callers are responsible for supplying non-empty unit lists, this is a
// boundary behavior rather than an error.
func ReduceDayPrice(choice CustomerChoice, unitPrices []decimal.Decimal) decimal.Decimal {
	if len(unitPrices) == 0 {
		return zero
	}
	result := unitPrices[0]
	for _, p := range unitPrices[1:] {
		if choice == ChoiceFixed {
			result = result.Add(p)
		} else {
			result = minPrice(result, p)
		}
	}
	return result
}

// =============================================================================
// DAY AGGREGATION - One rule, full stay
// =============================================================================

// AggregateStay prices a full occupancy range under one rule: each day,
// every unit's minimum price is fetched, rule-adjusted, and reduced via the
// customer choice; day prices are then summed. A missing unit price fails
// the whole aggregation.
func AggregateStay(
	rule PriceRule,
	stay DateRange,
	units []UnitID,
	choice CustomerChoice,
	source PriceSource,
) (decimal.Decimal, error) {

	total := zero
	for _, day := range stay.Days() {
		dayPrices := make([]decimal.Decimal, 0, len(units))
		for _, unit := range units {
			raw, err := source.MinPriceForDay(unit, day)
			if err != nil {
				return zero, &PriceLookupError{UnitID: unit, Day: day}
			}
			dayPrices = append(dayPrices, rule.UnitPrice(day, raw))
		}
		total = total.Add(ReduceDayPrice(choice, dayPrices))
	}
	return total, nil
}

// MinOverRules evaluates every rule with eval and returns the cheapest
// successful total. All rules failing, or an empty rule list, is
// ErrNoApplicableRule: the offer cannot be quoted.
func MinOverRules(rules []PriceRule, eval func(PriceRule) (decimal.Decimal, error)) (decimal.Decimal, error) {
	var (
		best    decimal.Decimal
		found   bool
		lastErr error
	)
	for _, rule := range rules {
		total, err := eval(rule)
		if err != nil {
			lastErr = err
			continue
		}
		if !found || total.LessThan(best) {
			best = total
			found = true
		}
	}
	if !found {
		if lastErr != nil {
			// Fully-failing rule set: report both the classification and
			// the underlying lookup failure.
			return zero, errors.Join(ErrNoApplicableRule, lastErr)
		}
		return zero, ErrNoApplicableRule
	}
	return best, nil
}
