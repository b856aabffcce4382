package config

import (
	"fmt"
	"math"
	"sort"
)

// Params is the fully-resolved parameter set for one scenario run. It is
// built once by Resolve and treated as immutable for the duration of the
// run; stages receive it read-only.
type Params struct {
	Scenario    string            `yaml:"-"`
	Simulation  SimulationParams  `yaml:"-"`
	DataSources DataSourcesConfig `yaml:"-"`

	Segmentation         SegmentationParams         `yaml:"sme_segmentation"`
	Financing            FinancingParams            `yaml:"financing"`
	Technology           TechnologyParams           `yaml:"technology_adoption"`
	MarketAccess         MarketAccessParams         `yaml:"market_access"`
	HumanCapital         HumanCapitalParams         `yaml:"human_capital"`
	Regulatory           RegulatoryParams           `yaml:"regulatory"`
	BusinessEnvironment  BusinessEnvironmentParams  `yaml:"business_environment"`
	Innovation           InnovationParams           `yaml:"innovation"`
	Sustainability       SustainabilityParams       `yaml:"sustainability"`
	Resilience           ResilienceParams           `yaml:"resilience"`
	Internationalization InternationalizationParams `yaml:"internationalization"`
	Inclusion            InclusionParams            `yaml:"inclusion"`
	Lifecycle            LifecycleParams            `yaml:"lifecycle"`
}

// Distribution is a discrete categorical distribution: label -> probability.
type Distribution map[string]float64

// Split returns labels and weights in sorted label order. The stable order
// matters: categorical draws must consume the random stream identically
// across runs.
func (d Distribution) Split() (labels []string, weights []float64) {
	labels = make([]string, 0, len(d))
	for k := range d {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	weights = make([]float64, len(labels))
	for i, k := range labels {
		weights[i] = d[k]
	}
	return labels, weights
}

// Validate checks that the distribution is non-empty and sums to ~1.
func (d Distribution) Validate(name string) error {
	if len(d) == 0 {
		return fmt.Errorf("distribution %q is empty", name)
	}
	sum := 0.0
	for k, w := range d {
		if w < 0 {
			return fmt.Errorf("distribution %q: negative weight for %q", name, k)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-6 {
		return fmt.Errorf("distribution %q sums to %.6f, want 1", name, sum)
	}
	return nil
}

// SegmentationParams drive synthetic population generation and the
// lifecycle stage's entrant generation.
type SegmentationParams struct {
	NumSyntheticSMEs          int          `yaml:"num_synthetic_smes"`
	AvgBusinessAge            float64      `yaml:"avg_business_age"`
	InitialRevenueRange       [2]float64   `yaml:"initial_revenue_range"`
	SectorDistribution        Distribution `yaml:"sector_distribution"`
	SizeDistribution          Distribution `yaml:"size_distribution"`
	FormalityDistribution     Distribution `yaml:"formality_distribution"`
	LocationDistribution      Distribution `yaml:"location_distribution"`
	InitialWomenOwnershipRate float64      `yaml:"initial_women_ownership_rate"`
	InitialYouthLedRate       float64      `yaml:"initial_youth_led_rate"`
	InitialTechAdoptionRate   float64      `yaml:"initial_tech_adoption_rate"`
	InitialEcommerceRate      float64      `yaml:"initial_ecommerce_rate"`
	CreditworthinessRange     [2]float64   `yaml:"creditworthiness_range"`
	DigitalLiteracyRange      [2]float64   `yaml:"digital_literacy_range"`
	SkillLevelRange           [2]float64   `yaml:"skill_level_range"`
	ResourceEfficiencyRange   [2]float64   `yaml:"resource_efficiency_range"`
	ResilienceScoreRange      [2]float64   `yaml:"resilience_score_range"`
	InclusionScoreRange       [2]float64   `yaml:"inclusion_score_range"`
	InitialDebtRange          [2]float64   `yaml:"initial_debt_range"`
	AssetsToRevenueRange      [2]float64   `yaml:"assets_to_revenue_range"`
}

// FinancingParams control loan seeking, approval, sizing, and repayment.
type FinancingParams struct {
	BaseLoanSeekProb        float64 `yaml:"base_loan_seek_prob"`
	BaseApprovalFactor      float64 `yaml:"base_loan_approval_prob_factor"`
	AvgLoanSizeFactor       float64 `yaml:"avg_loan_size_factor"`
	MaxDebtRatio            float64 `yaml:"max_debt_ratio_threshold"`
	CreditGuaranteeEffect   float64 `yaml:"credit_guarantee_effectiveness"`
	RepaymentDueFraction    float64 `yaml:"repayment_due_fraction"`
	RepaymentCapacityFactor float64 `yaml:"repayment_capacity_factor"`
}

type TechnologyParams struct {
	BaseAdoptionProb        float64 `yaml:"base_adoption_prob"`
	LiteracyInfluence       float64 `yaml:"literacy_influence_on_adoption"`
	ProductivityBoost       float64 `yaml:"tech_productivity_boost"`
	LiteracyImprovementRate float64 `yaml:"digital_literacy_improvement_rate"`
}

type MarketAccessParams struct {
	EcommerceRevenueBoostFactor float64 `yaml:"ecommerce_revenue_boost_factor"`
	EcommerceAdoptionProb       float64 `yaml:"ecommerce_adoption_prob"`
}

type HumanCapitalParams struct {
	SkillImprovementProb   float64 `yaml:"skill_improvement_prob"`
	SkillImprovementAmount float64 `yaml:"skill_improvement_amount"`
	SkillProductivityBoost float64 `yaml:"skill_productivity_boost"`
}

type RegulatoryParams struct {
	ComplianceCostFactor float64 `yaml:"base_compliance_cost_factor"`
	FormalizationProb    float64 `yaml:"formalization_prob_factor"`
}

type BusinessEnvironmentParams struct {
	InitialInfrastructureIndex    float64 `yaml:"initial_infrastructure_index"`
	InfrastructureImprovementRate float64 `yaml:"annual_infrastructure_improvement_rate"`
	InitialCompetitionLevel       float64 `yaml:"initial_competition_level"`
}

type InnovationParams struct {
	BaseInnovationProb float64 `yaml:"base_innovation_prob"`
	SkillInfluence     float64 `yaml:"skill_influence_on_innovation"`
}

type SustainabilityParams struct {
	EfficiencyImprovementProb   float64 `yaml:"efficiency_improvement_prob"`
	EfficiencyImprovementAmount float64 `yaml:"efficiency_improvement_amount"`
}

// ResilienceParams control both the gradual hardening draw and the sectoral
// shock field.
type ResilienceParams struct {
	ResilienceImprovementProb   float64 `yaml:"resilience_improvement_prob"`
	ResilienceImprovementAmount float64 `yaml:"resilience_improvement_amount"`
	ShockThreshold              float64 `yaml:"shock_threshold"`
	ShockMaxRevenueLoss         float64 `yaml:"shock_max_revenue_loss"`
	ShockHardeningAmount        float64 `yaml:"shock_hardening_amount"`
}

type InternationalizationParams struct {
	ExportEntryProb    float64  `yaml:"export_entry_prob"`
	ExportRevenueBoost float64  `yaml:"export_revenue_boost"`
	EligibleSizes      []string `yaml:"eligible_sizes"`
}

type InclusionParams struct {
	InclusionImprovementProb   float64 `yaml:"inclusion_improvement_prob"`
	InclusionImprovementAmount float64 `yaml:"inclusion_improvement_amount"`
}

// LifecycleParams control exit, entry, and size reclassification in the
// segmentation stage that closes every simulated year.
type LifecycleParams struct {
	EntryRate                float64 `yaml:"entry_rate"`
	ExitProb                 float64 `yaml:"exit_prob"`
	LowProductivityThreshold float64 `yaml:"low_productivity_threshold"`
	ExitAfterYears           int     `yaml:"exit_after_low_productivity_years"`
	EmploymentGrowthFactor   float64 `yaml:"employment_growth_factor"`
}

// Validate checks the resolved parameter set before a scenario runs.
// Distribution validation lives here, not in the population initializer:
// the initializer assumes a validated caller.
func (p *Params) Validate() error {
	if p.Simulation.EndYear < p.Simulation.StartYear {
		return fmt.Errorf("end_year %d before start_year %d", p.Simulation.EndYear, p.Simulation.StartYear)
	}
	if p.DataSources.UseSyntheticData {
		if p.Segmentation.NumSyntheticSMEs <= 0 {
			return fmt.Errorf("num_synthetic_smes must be positive, got %d", p.Segmentation.NumSyntheticSMEs)
		}
		dists := map[string]Distribution{
			"sector_distribution":    p.Segmentation.SectorDistribution,
			"size_distribution":      p.Segmentation.SizeDistribution,
			"formality_distribution": p.Segmentation.FormalityDistribution,
			"location_distribution":  p.Segmentation.LocationDistribution,
		}
		for name, d := range dists {
			if err := d.Validate(name); err != nil {
				return err
			}
		}
		if p.Segmentation.InitialRevenueRange[1] < p.Segmentation.InitialRevenueRange[0] {
			return fmt.Errorf("initial_revenue_range inverted: %v", p.Segmentation.InitialRevenueRange)
		}
	}
	if p.Financing.MaxDebtRatio <= 0 {
		return fmt.Errorf("max_debt_ratio_threshold must be positive, got %f", p.Financing.MaxDebtRatio)
	}
	for name, r := range map[string]float64{
		"base_loan_seek_prob":       p.Financing.BaseLoanSeekProb,
		"formalization_prob_factor": p.Regulatory.FormalizationProb,
		"skill_improvement_prob":    p.HumanCapital.SkillImprovementProb,
		"entry_rate":                p.Lifecycle.EntryRate,
		"exit_prob":                 p.Lifecycle.ExitProb,
	} {
		if r < 0 || r > 1 {
			return fmt.Errorf("%s out of [0,1]: %f", name, r)
		}
	}
	return nil
}
