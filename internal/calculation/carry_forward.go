package calculation

import (
	"sort"

	"github.com/itrdesk/tax-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// IncomeHeads are the current-year incomes that brought forward losses may absorb
type IncomeHeads struct {
	ShortTermGains decimal.Decimal `json:"short_term_gains" yaml:"short_term_gains"`
	LongTermGains  decimal.Decimal `json:"long_term_gains" yaml:"long_term_gains"`
	Business       decimal.Decimal `json:"business" yaml:"business"`
	HouseProperty  decimal.Decimal `json:"house_property" yaml:"house_property"`
	Speculative    decimal.Decimal `json:"speculative" yaml:"speculative"`
}

// SetOffResult is the outcome of applying brought forward losses. For every
// input record, its Utilized and Remaining amounts add back to the original.
type SetOffResult struct {
	Adjusted  IncomeHeads               `json:"adjusted" yaml:"adjusted"`
	Utilized  []domain.CarryForwardLoss `json:"utilized" yaml:"utilized"`
	Remaining []domain.CarryForwardLoss `json:"remaining" yaml:"remaining"`
}

// ApplyCarryForwardLosses sets off losses oldest assessment year first:
//
//	short-term capital loss  -> short-term gains, then long-term gains
//	long-term capital loss   -> long-term gains only
//	house property loss      -> house property, business, short-term, long-term
//	business loss            -> business, house property, short-term, long-term
//	non-speculative loss     -> same order as business loss
//	speculative loss         -> speculative income only
//
// Heads at or below zero absorb nothing. The losses slice is not modified.
func ApplyCarryForwardLosses(heads IncomeHeads, losses []domain.CarryForwardLoss) SetOffResult {
	sorted := make([]domain.CarryForwardLoss, len(losses))
	copy(sorted, losses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AssessmentYear < sorted[j].AssessmentYear
	})

	adj := heads
	result := SetOffResult{}
	for _, record := range sorted {
		left := record
		used := domain.CarryForwardLoss{AssessmentYear: record.AssessmentYear}

		used.ShortTermLoss = absorb(&left.ShortTermLoss, &adj.ShortTermGains, &adj.LongTermGains)
		used.LongTermLoss = absorb(&left.LongTermLoss, &adj.LongTermGains)
		used.HousePropertyLoss = absorb(&left.HousePropertyLoss,
			&adj.HouseProperty, &adj.Business, &adj.ShortTermGains, &adj.LongTermGains)
		used.BusinessLoss = absorb(&left.BusinessLoss,
			&adj.Business, &adj.HouseProperty, &adj.ShortTermGains, &adj.LongTermGains)
		used.NonSpeculativeLoss = absorb(&left.NonSpeculativeLoss,
			&adj.Business, &adj.HouseProperty, &adj.ShortTermGains, &adj.LongTermGains)
		used.SpeculativeLoss = absorb(&left.SpeculativeLoss, &adj.Speculative)

		result.Utilized = append(result.Utilized, used)
		if !left.IsZero() {
			result.Remaining = append(result.Remaining, left)
		}
	}
	result.Adjusted = adj
	return result
}

// absorb sets loss off against incomes in order, reducing both, and returns
// the amount used
func absorb(loss *decimal.Decimal, incomes ...*decimal.Decimal) decimal.Decimal {
	used := decimal.Zero
	for _, income := range incomes {
		if !loss.IsPositive() {
			break
		}
		if !income.IsPositive() {
			continue
		}
		amount := decimal.Min(*loss, *income)
		*loss = loss.Sub(amount)
		*income = income.Sub(amount)
		used = used.Add(amount)
	}
	return used
}
