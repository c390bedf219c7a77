package simulate

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestParamsValidate(t *testing.T) {
	valid := Params{
		InitialPrice:      100,
		TotalInvestment:   12000,
		MonthlyInvestment: 500,
		DividendYield:     0.02 / 12,
	}

	tests := []struct {
		name    string
		mutate  func(*Params)
		wantErr bool
	}{
		{"valid", func(*Params) {}, false},
		{"zero dividend is valid", func(p *Params) { p.DividendYield = 0 }, false},
		{"zero initial price", func(p *Params) { p.InitialPrice = 0 }, true},
		{"negative total investment", func(p *Params) { p.TotalInvestment = -1 }, true},
		{"zero monthly investment", func(p *Params) { p.MonthlyInvestment = 0 }, true},
		{"negative dividend yield", func(p *Params) { p.DividendYield = -0.01 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEvaluateZeroReturnsZeroDividend(t *testing.T) {
	// With an unchanging price and no dividends, every DCA contribution buys
	// at the initial price, so both strategies end at total / price.
	p := Params{
		InitialPrice:      100,
		TotalInvestment:   12000,
		MonthlyInvestment: 500,
		DividendYield:     0,
	}
	returns := make([]float64, 24)

	res, err := Evaluate(p, returns)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	want := p.TotalInvestment / p.InitialPrice
	if !almostEqual(res.AllInShares, want) {
		t.Errorf("all-in shares: got %v, want %v", res.AllInShares, want)
	}
	if !almostEqual(res.DCAShares, want) {
		t.Errorf("dca shares: got %v, want %v", res.DCAShares, want)
	}
}

func TestEvaluateConstantGrowth(t *testing.T) {
	// Zero dividend, constant positive return: all-in buys once at month 0
	// and never changes, while DCA keeps adding shares every month.
	p := Params{
		InitialPrice:      100,
		TotalInvestment:   1200,
		MonthlyInvestment: 100,
		DividendYield:     0,
	}

	var prevAllIn, prevDCA float64
	for months := 1; months <= 12; months++ {
		returns := make([]float64, months)
		for i := range returns {
			returns[i] = 0.02
		}
		res, err := Evaluate(p, returns)
		if err != nil {
			t.Fatalf("Evaluate over %d months: %v", months, err)
		}
		if months > 1 {
			if res.AllInShares != prevAllIn {
				t.Errorf("month %d: all-in shares moved from %v to %v without dividends", months, prevAllIn, res.AllInShares)
			}
			if res.DCAShares <= prevDCA {
				t.Errorf("month %d: dca shares %v did not increase over %v", months, res.DCAShares, prevDCA)
			}
		}
		prevAllIn = res.AllInShares
		prevDCA = res.DCAShares
	}
}

func TestEvaluateDividendReinvestment(t *testing.T) {
	// Flat price with a dividend: both strategies compound shares by (1+y)
	// each month after the first, DCA additionally buys 4 shares per month.
	p := Params{
		InitialPrice:      100,
		TotalInvestment:   1200,
		MonthlyInvestment: 400,
		DividendYield:     0.01,
	}
	returns := []float64{0, 0, 0}

	res, err := Evaluate(p, returns)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	wantAllIn := 12.0 * 1.01 * 1.01
	wantDCA := (4.0*1.01+4.0)*1.01 + 4.0
	if !almostEqual(res.AllInShares, wantAllIn) {
		t.Errorf("all-in shares: got %v, want %v", res.AllInShares, wantAllIn)
	}
	if !almostEqual(res.DCAShares, wantDCA) {
		t.Errorf("dca shares: got %v, want %v", res.DCAShares, wantDCA)
	}
}

func TestEvaluateTwoMonthHandComputed(t *testing.T) {
	p := Params{
		InitialPrice:      100,
		TotalInvestment:   1200,
		MonthlyInvestment: 600,
		DividendYield:     0,
	}

	tests := []struct {
		name      string
		returns   []float64
		wantAllIn float64
		wantDCA   float64
	}{
		{
			name:      "crash first, recover after",
			returns:   []float64{-0.1, 0.1},
			wantAllIn: 1200.0 / 90.0,
			wantDCA:   600.0/90.0 + 600.0/99.0,
		},
		{
			name:      "rise first, crash after",
			returns:   []float64{0.1, -0.1},
			wantAllIn: 1200.0 / 110.0,
			wantDCA:   600.0/110.0 + 600.0/99.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Evaluate(p, tt.returns)
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			if !almostEqual(res.AllInShares, tt.wantAllIn) {
				t.Errorf("all-in shares: got %v, want %v", res.AllInShares, tt.wantAllIn)
			}
			if !almostEqual(res.DCAShares, tt.wantDCA) {
				t.Errorf("dca shares: got %v, want %v", res.DCAShares, tt.wantDCA)
			}
		})
	}
}

func TestEvaluateRejectsNonPositivePrice(t *testing.T) {
	p := Params{
		InitialPrice:      100,
		TotalInvestment:   1200,
		MonthlyInvestment: 100,
		DividendYield:     0,
	}

	if _, err := Evaluate(p, []float64{-1.0}); err == nil {
		t.Error("expected error when month 0 drives the price to zero")
	}
	if _, err := Evaluate(p, []float64{0.5, -1.5}); err == nil {
		t.Error("expected error when a later month drives the price negative")
	}
}

func TestEvaluateRejectsEmptyReturns(t *testing.T) {
	p := Params{
		InitialPrice:      100,
		TotalInvestment:   1200,
		MonthlyInvestment: 100,
	}
	if _, err := Evaluate(p, nil); err == nil {
		t.Error("expected error for empty return sequence")
	}
}
