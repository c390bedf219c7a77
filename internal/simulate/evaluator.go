// Package simulate runs one investment scenario month-by-month and reports
// the terminal share counts of the all-in and DCA strategies.
package simulate

import (
	"errors"
	"fmt"
)

// Params holds the fixed evaluation inputs shared by every scenario.
// DividendYield is the monthly rate; MonthlyInvestment is the fixed DCA
// contribution (total investment / horizon).
type Params struct {
	InitialPrice      float64
	TotalInvestment   float64
	MonthlyInvestment float64
	DividendYield     float64
}

// Validate checks evaluation parameter constraints.
func (p Params) Validate() error {
	if p.InitialPrice <= 0 {
		return fmt.Errorf("initial price must be positive, got %v", p.InitialPrice)
	}
	if p.TotalInvestment <= 0 {
		return fmt.Errorf("total investment must be positive, got %v", p.TotalInvestment)
	}
	if p.MonthlyInvestment <= 0 {
		return fmt.Errorf("monthly investment must be positive, got %v", p.MonthlyInvestment)
	}
	if p.DividendYield < 0 {
		return fmt.Errorf("dividend yield must not be negative, got %v", p.DividendYield)
	}
	return nil
}

// Result holds the terminal share counts of one evaluation. Compared at the
// same final price, share counts alone decide the winner.
type Result struct {
	AllInShares float64
	DCAShares   float64
}

// Evaluate walks the return sequence month by month. Month 0 applies the
// first return to the initial price and buys both strategies at that price
// with no dividend. Every later month compounds the price, reinvests each
// strategy's dividend at that month's closing price, and buys DCA's fixed
// contribution at the same price. Dividend and contribution purchases use
// the same closing price that produced them, with no lag.
func Evaluate(p Params, returns []float64) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	if len(returns) == 0 {
		return Result{}, errors.New("return sequence must cover at least one month")
	}

	price := p.InitialPrice + p.InitialPrice*returns[0]
	if price <= 0 {
		return Result{}, fmt.Errorf("price %v at month 0 is not positive, return configuration is invalid", price)
	}

	allInShares := p.TotalInvestment / price
	dcaShares := p.MonthlyInvestment / price

	for month := 1; month < len(returns); month++ {
		price += price * returns[month]
		if price <= 0 {
			return Result{}, fmt.Errorf("price %v at month %d is not positive, return configuration is invalid", price, month)
		}

		allInValue := allInShares * price
		dcaValue := dcaShares * price
		allInDividend := allInValue * p.DividendYield / price
		dcaDividend := dcaValue * p.DividendYield / price
		contribution := p.MonthlyInvestment / price

		allInShares += allInDividend
		dcaShares += dcaDividend + contribution
	}

	return Result{AllInShares: allInShares, DCAShares: dcaShares}, nil
}
