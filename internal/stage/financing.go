package stage

import (
	"log/slog"
	"math"

	"github.com/mahfuzr/smesim/internal/agent"
	"github.com/mahfuzr/smesim/internal/config"
	"github.com/mahfuzr/smesim/internal/rng"
)

// Financing simulates loan seeking, approval, disbursement, and repayment.
// Repayment runs every year for every indebted SME, including years with no
// loan seekers at all.
type Financing struct{}

func (Financing) Name() string { return "financing" }

func (Financing) Apply(pop *agent.Population, year int, env *Environment, cfg *config.Params, rs *rng.Stream) error {
	fp := cfg.Financing

	ok := pop.EnsureColumn(agent.ColCreditworthiness, func(s *agent.SME) { s.Creditworthiness = 0.5 })
	ok = pop.EnsureColumn(agent.ColDebt, nil) && ok
	ok = pop.EnsureColumn(agent.ColAssets, func(s *agent.SME) { s.Assets = s.Revenue }) && ok
	if !ok {
		slog.Warn("financing columns missing, defaults filled and dynamics skipped", "year", year)
		return nil
	}

	seekers, approved := 0, 0
	for i := range pop.SMEs {
		s := &pop.SMEs[i]
		if s.Status != agent.StatusActive {
			continue
		}
		if !rs.Bernoulli(fp.BaseLoanSeekProb) {
			continue
		}
		seekers++
		if rs.Bernoulli(approvalProbability(fp, s)) {
			s.Debt += fp.AvgLoanSizeFactor * s.Revenue
			approved++
		}
	}

	// Repayment pass: independent of new lending.
	for i := range pop.SMEs {
		s := &pop.SMEs[i]
		if s.Debt <= 0 {
			continue
		}
		repayment := math.Min(s.Debt*fp.RepaymentDueFraction, s.Revenue*fp.RepaymentCapacityFactor)
		if repayment < 0 {
			repayment = 0
		}
		s.Debt = math.Max(0, s.Debt-repayment)
	}

	slog.Debug("financing dynamics", "year", year, "seekers", seekers, "approved", approved)
	return nil
}

// approvalProbability computes a seeker's loan approval probability. Zero
// assets are treated as an infinite debt ratio: the clip drives the ratio
// term to zero rather than dividing by zero, leaving the credit guarantee
// effect as the floor.
func approvalProbability(fp config.FinancingParams, s *agent.SME) float64 {
	debtRatio := math.Inf(1)
	if s.Assets > 0 {
		debtRatio = s.Debt / s.Assets
	}
	p := fp.BaseApprovalFactor * s.Creditworthiness * (1 - clip(debtRatio/fp.MaxDebtRatio, 0, 1))
	p += fp.CreditGuaranteeEffect
	return clip(p, 0, 1)
}
