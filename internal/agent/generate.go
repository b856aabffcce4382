package agent

import (
	"log/slog"

	"github.com/mahfuzr/smesim/internal/config"
	"github.com/mahfuzr/smesim/internal/rng"
)

// Generate builds a synthetic population from the segmentation parameters.
// Distributions are assumed validated by the caller (the runner validates
// the resolved parameter set before any population work).
func Generate(seg config.SegmentationParams, rs *rng.Stream) *Population {
	smes := make([]SME, 0, seg.NumSyntheticSMEs)
	for i := 0; i < seg.NumSyntheticSMEs; i++ {
		smes = append(smes, generateOne(i+1, seg, rs, false))
	}
	slog.Info("synthetic population generated", "count", len(smes))
	return NewPopulation(smes, OptionalColumns)
}

// GenerateEntrants builds newly-founded SMEs for the lifecycle stage,
// with IDs continuing past the current maximum and age zero.
func GenerateEntrants(count, firstID int, seg config.SegmentationParams, rs *rng.Stream) []SME {
	smes := make([]SME, 0, count)
	for i := 0; i < count; i++ {
		smes = append(smes, generateOne(firstID+i, seg, rs, true))
	}
	return smes
}

func generateOne(id int, seg config.SegmentationParams, rs *rng.Stream, entrant bool) SME {
	sectorLabels, sectorWeights := seg.SectorDistribution.Split()
	sizeLabels, sizeWeights := seg.SizeDistribution.Split()
	formLabels, formWeights := seg.FormalityDistribution.Split()
	locLabels, locWeights := seg.LocationDistribution.Split()

	size := rs.WeightedChoice(sizeLabels, sizeWeights)

	// Age: clipped non-negative normal around the configured mean.
	age := int(rs.ClampedNormal(seg.AvgBusinessAge, seg.AvgBusinessAge/2, 0))
	if entrant {
		age = 0
	}

	revenue := rs.Uniform(seg.InitialRevenueRange[0], seg.InitialRevenueRange[1])

	// Employment conditioned on size bucket; zero draws clamped to 1.
	lo, hi := EmploymentBounds(size)
	employment := rs.IntRange(lo, hi)
	if employment < 1 {
		employment = 1
	}

	gender := GenderMale
	if rs.Bernoulli(seg.InitialWomenOwnershipRate) {
		gender = GenderFemale
	}

	return SME{
		ID:                 id,
		Sector:             rs.WeightedChoice(sectorLabels, sectorWeights),
		SizeCategory:       size,
		Formality:          rs.WeightedChoice(formLabels, formWeights),
		Location:           rs.WeightedChoice(locLabels, locWeights),
		OwnerGender:        gender,
		IsYouthLed:         rs.Bernoulli(seg.InitialYouthLedRate),
		Age:                age,
		Revenue:            revenue,
		Employment:         employment,
		Assets:             revenue * rs.Uniform(seg.AssetsToRevenueRange[0], seg.AssetsToRevenueRange[1]),
		Status:             StatusActive,
		Creditworthiness:   rs.Uniform(seg.CreditworthinessRange[0], seg.CreditworthinessRange[1]),
		SkillLevel:         rs.Uniform(seg.SkillLevelRange[0], seg.SkillLevelRange[1]),
		DigitalLiteracy:    rs.Uniform(seg.DigitalLiteracyRange[0], seg.DigitalLiteracyRange[1]),
		ResourceEfficiency: rs.Uniform(seg.ResourceEfficiencyRange[0], seg.ResourceEfficiencyRange[1]),
		ResilienceScore:    rs.Uniform(seg.ResilienceScoreRange[0], seg.ResilienceScoreRange[1]),
		InclusionScore:     rs.Uniform(seg.InclusionScoreRange[0], seg.InclusionScoreRange[1]),
		Debt:               rs.Uniform(seg.InitialDebtRange[0], seg.InitialDebtRange[1]),
		ComplianceCost:     0,
		HasAdoptedTech:     rs.Bernoulli(seg.InitialTechAdoptionRate),
		UsesEcommerce:      rs.Bernoulli(seg.InitialEcommerceRate),
		Productivity:       rs.ClampedNormal(1.0, 0.2, 0),
	}
}
