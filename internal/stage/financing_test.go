package stage

import (
	"testing"

	"github.com/mahfuzr/smesim/internal/agent"
	"github.com/mahfuzr/smesim/internal/config"
	"github.com/mahfuzr/smesim/internal/rng"
)

func indebtedPopulation(debt, revenue, assets float64) *agent.Population {
	return agent.NewPopulation([]agent.SME{{
		ID: 1, Status: agent.StatusActive,
		Revenue: revenue, Assets: assets, Debt: debt,
		Creditworthiness: 0.5,
	}}, agent.OptionalColumns)
}

func TestRepaymentRunsWithoutSeekers(t *testing.T) {
	cfg := testParams()
	cfg.Financing.BaseLoanSeekProb = 0 // no new lending this year

	pop := indebtedPopulation(1000, 1_000_000, 500_000)
	if err := (Financing{}).Apply(pop, 2025, &Environment{}, cfg, rng.New(1)); err != nil {
		t.Fatal(err)
	}

	// Due fraction 0.10 binds (capacity is far larger).
	if got := pop.SMEs[0].Debt; got != 900 {
		t.Errorf("debt after repayment: %v, want 900", got)
	}
}

func TestRepaymentCappedByCapacity(t *testing.T) {
	cfg := testParams()
	cfg.Financing.BaseLoanSeekProb = 0

	pop := indebtedPopulation(100_000, 10_000, 50_000)
	if err := (Financing{}).Apply(pop, 2025, &Environment{}, cfg, rng.New(1)); err != nil {
		t.Fatal(err)
	}

	// Capacity 10_000*0.05 = 500 binds over due 100_000*0.10 = 10_000.
	if got := pop.SMEs[0].Debt; got != 99_500 {
		t.Errorf("debt after capped repayment: %v, want 99500", got)
	}
}

func TestDebtNeverNegative(t *testing.T) {
	cfg := testParams()
	cfg.Financing.BaseLoanSeekProb = 0
	cfg.Financing.RepaymentDueFraction = 5.0

	pop := indebtedPopulation(100, 1_000_000, 500_000)
	if err := (Financing{}).Apply(pop, 2025, &Environment{}, cfg, rng.New(1)); err != nil {
		t.Fatal(err)
	}
	if got := pop.SMEs[0].Debt; got != 0 {
		t.Errorf("debt: %v, want 0", got)
	}
}

func TestDebtDecreasesOverYearsWithoutBorrowing(t *testing.T) {
	cfg := testParams()
	cfg.Financing.BaseLoanSeekProb = 0

	pop := indebtedPopulation(50_000, 1_000_000, 500_000)
	prev := pop.SMEs[0].Debt
	for year := 2025; year <= 2034; year++ {
		if err := (Financing{}).Apply(pop, year, &Environment{}, cfg, rng.New(int64(year))); err != nil {
			t.Fatal(err)
		}
		got := pop.SMEs[0].Debt
		if got >= prev {
			t.Fatalf("debt not strictly decreasing at %d: %v >= %v", year, got, prev)
		}
		if got < 0 {
			t.Fatalf("negative debt at %d: %v", year, got)
		}
		prev = got
	}
}

func TestApprovalProbabilityZeroAssets(t *testing.T) {
	fp := config.DefaultParams().Financing
	s := &agent.SME{Debt: 10_000, Assets: 0, Creditworthiness: 0.9}

	// Infinite debt ratio zeroes the creditworthiness term; the guarantee
	// effect is the floor.
	if got := approvalProbability(fp, s); got != fp.CreditGuaranteeEffect {
		t.Errorf("zero-assets approval: %v, want %v", got, fp.CreditGuaranteeEffect)
	}

	s.Assets = -5
	if got := approvalProbability(fp, s); got != fp.CreditGuaranteeEffect {
		t.Errorf("negative-assets approval: %v, want %v", got, fp.CreditGuaranteeEffect)
	}
}

func TestApprovalProbabilityBounds(t *testing.T) {
	fp := config.DefaultParams().Financing

	cases := []agent.SME{
		{Debt: 0, Assets: 100, Creditworthiness: 0.5},
		{Debt: 1e12, Assets: 1, Creditworthiness: 1},
		{Debt: 0, Assets: 1, Creditworthiness: -3},
		{Debt: -50, Assets: 100, Creditworthiness: 0.5},
	}
	for i := range cases {
		p := approvalProbability(fp, &cases[i])
		if p < 0 || p > 1 {
			t.Errorf("case %d: approval probability %v outside [0,1]", i, p)
		}
	}

	// Adversarial coefficients still clip.
	fp.BaseApprovalFactor = 50
	fp.CreditGuaranteeEffect = 10
	s := &agent.SME{Debt: 0, Assets: 100, Creditworthiness: 1}
	if p := approvalProbability(fp, s); p != 1 {
		t.Errorf("oversized coefficients: %v, want clipped 1", p)
	}
}

func TestApprovalProbabilityDebtFreeBeatsLeveraged(t *testing.T) {
	fp := config.DefaultParams().Financing
	clean := &agent.SME{Debt: 0, Assets: 100_000, Creditworthiness: 0.6}
	leveraged := &agent.SME{Debt: 60_000, Assets: 100_000, Creditworthiness: 0.6}

	if pc, pl := approvalProbability(fp, clean), approvalProbability(fp, leveraged); pc <= pl {
		t.Errorf("debt-free approval %v not above leveraged %v", pc, pl)
	}
}

func TestFinancingSkipsWhenColumnsMissing(t *testing.T) {
	cfg := testParams()
	cfg.Financing.BaseLoanSeekProb = 1 // would always lend if not skipped

	// Loader-style population: core schema only.
	pop := agent.NewPopulation([]agent.SME{
		{ID: 1, Status: agent.StatusActive, Revenue: 100_000},
	}, nil)

	if err := (Financing{}).Apply(pop, 2025, &Environment{}, cfg, rng.New(1)); err != nil {
		t.Fatal(err)
	}
	if pop.SMEs[0].Debt != 0 {
		t.Errorf("dynamics ran on missing columns: debt %v", pop.SMEs[0].Debt)
	}
	// Defaults were filled and the columns are now present.
	if pop.SMEs[0].Creditworthiness != 0.5 {
		t.Errorf("creditworthiness default not filled: %v", pop.SMEs[0].Creditworthiness)
	}
	if pop.SMEs[0].Assets != 100_000 {
		t.Errorf("assets default not filled from revenue: %v", pop.SMEs[0].Assets)
	}
	for _, col := range []string{agent.ColCreditworthiness, agent.ColDebt, agent.ColAssets} {
		if !pop.HasColumn(col) {
			t.Errorf("column %s not marked after fill", col)
		}
	}
}
