package config

// DefaultParams returns the central declaration of every stage parameter's
// default. Resolve decodes the merged tree on top of this, so a key absent
// from both defaults and override still has a sane value.
func DefaultParams() *Params {
	return &Params{
		Segmentation: SegmentationParams{
			NumSyntheticSMEs:    1000,
			AvgBusinessAge:      5,
			InitialRevenueRange: [2]float64{10_000, 1_000_000},
			SectorDistribution: Distribution{
				"manufacturing": 0.30, "services": 0.40, "trade": 0.20, "agribusiness": 0.10,
			},
			SizeDistribution: Distribution{
				"micro": 0.70, "small": 0.25, "medium": 0.05,
			},
			FormalityDistribution: Distribution{
				"formal": 0.35, "informal": 0.65,
			},
			LocationDistribution: Distribution{
				"urban": 0.55, "rural": 0.45,
			},
			InitialWomenOwnershipRate: 0.15,
			InitialYouthLedRate:       0.20,
			InitialTechAdoptionRate:   0.20,
			InitialEcommerceRate:      0.30,
			CreditworthinessRange:     [2]float64{0.3, 0.8},
			DigitalLiteracyRange:      [2]float64{0.1, 0.6},
			SkillLevelRange:           [2]float64{0.1, 0.5},
			ResourceEfficiencyRange:   [2]float64{0.1, 0.4},
			ResilienceScoreRange:      [2]float64{0.1, 0.3},
			InclusionScoreRange:       [2]float64{0.2, 0.5},
			InitialDebtRange:          [2]float64{0, 50_000},
			AssetsToRevenueRange:      [2]float64{0.6, 1.8},
		},
		Financing: FinancingParams{
			BaseLoanSeekProb:        0.15,
			BaseApprovalFactor:      0.50,
			AvgLoanSizeFactor:       0.20,
			MaxDebtRatio:            0.70,
			CreditGuaranteeEffect:   0.10,
			RepaymentDueFraction:    0.10,
			RepaymentCapacityFactor: 0.05,
		},
		Technology: TechnologyParams{
			BaseAdoptionProb:        0.05,
			LiteracyInfluence:       0.10,
			ProductivityBoost:       0.03,
			LiteracyImprovementRate: 0.02,
		},
		MarketAccess: MarketAccessParams{
			EcommerceRevenueBoostFactor: 0.05,
			EcommerceAdoptionProb:       0.04,
		},
		HumanCapital: HumanCapitalParams{
			SkillImprovementProb:   0.04,
			SkillImprovementAmount: 0.015,
			SkillProductivityBoost: 0.02,
		},
		Regulatory: RegulatoryParams{
			ComplianceCostFactor: 0.01,
			FormalizationProb:    0.01,
		},
		BusinessEnvironment: BusinessEnvironmentParams{
			InitialInfrastructureIndex:    0.50,
			InfrastructureImprovementRate: 0.01,
			InitialCompetitionLevel:       0.60,
		},
		Innovation: InnovationParams{
			BaseInnovationProb: 0.01,
			SkillInfluence:     0.05,
		},
		Sustainability: SustainabilityParams{
			EfficiencyImprovementProb:   0.02,
			EfficiencyImprovementAmount: 0.01,
		},
		Resilience: ResilienceParams{
			ResilienceImprovementProb:   0.03,
			ResilienceImprovementAmount: 0.02,
			ShockThreshold:              0.75,
			ShockMaxRevenueLoss:         0.30,
			ShockHardeningAmount:        0.05,
		},
		Internationalization: InternationalizationParams{
			ExportEntryProb:    0.05,
			ExportRevenueBoost: 0.15,
			EligibleSizes:      []string{"medium"},
		},
		Inclusion: InclusionParams{
			InclusionImprovementProb:   0.02,
			InclusionImprovementAmount: 0.01,
		},
		Lifecycle: LifecycleParams{
			EntryRate:                0.02,
			ExitProb:                 0.30,
			LowProductivityThreshold: 0.50,
			ExitAfterYears:           3,
			EmploymentGrowthFactor:   0.05,
		},
	}
}

// DefaultYAML is a complete baked-in configuration so the binary can run
// without an external file. Scenario overrides demonstrate the layered
// merge: baseline is defaults-only, the others override a handful of leaves.
const DefaultYAML = `simulation_parameters:
  start_year: 2025
  end_year: 2035
  random_seed: 42

data_sources:
  use_synthetic_data: true

default_parameters:
  sme_segmentation:
    num_synthetic_smes: 1000
    avg_business_age: 5
    initial_revenue_range: [10000, 1000000]
    sector_distribution:
      manufacturing: 0.30
      services: 0.40
      trade: 0.20
      agribusiness: 0.10
    size_distribution:
      micro: 0.70
      small: 0.25
      medium: 0.05
    formality_distribution:
      formal: 0.35
      informal: 0.65
    location_distribution:
      urban: 0.55
      rural: 0.45
    initial_women_ownership_rate: 0.15
    initial_youth_led_rate: 0.20
    initial_tech_adoption_rate: 0.20
    initial_ecommerce_rate: 0.30
  financing:
    base_loan_seek_prob: 0.15
    base_loan_approval_prob_factor: 0.50
    avg_loan_size_factor: 0.20
    max_debt_ratio_threshold: 0.70
    credit_guarantee_effectiveness: 0.10
    repayment_due_fraction: 0.10
    repayment_capacity_factor: 0.05
  technology_adoption:
    base_adoption_prob: 0.05
    literacy_influence_on_adoption: 0.10
    tech_productivity_boost: 0.03
    digital_literacy_improvement_rate: 0.02
  human_capital:
    skill_improvement_prob: 0.04
    skill_improvement_amount: 0.015
    skill_productivity_boost: 0.02
  regulatory:
    base_compliance_cost_factor: 0.01
    formalization_prob_factor: 0.01
  business_environment:
    initial_infrastructure_index: 0.50
    annual_infrastructure_improvement_rate: 0.01
    initial_competition_level: 0.60
  innovation:
    base_innovation_prob: 0.01
    skill_influence_on_innovation: 0.05
  sustainability:
    efficiency_improvement_prob: 0.02
    efficiency_improvement_amount: 0.01
  resilience:
    resilience_improvement_prob: 0.03
    resilience_improvement_amount: 0.02
    shock_threshold: 0.75
    shock_max_revenue_loss: 0.30
    shock_hardening_amount: 0.05
  market_access:
    ecommerce_revenue_boost_factor: 0.05
    ecommerce_adoption_prob: 0.04
  internationalization:
    export_entry_prob: 0.05
    export_revenue_boost: 0.15
    eligible_sizes: [medium]
  inclusion:
    inclusion_improvement_prob: 0.02
    inclusion_improvement_amount: 0.01
  lifecycle:
    entry_rate: 0.02
    exit_prob: 0.30
    low_productivity_threshold: 0.50
    exit_after_low_productivity_years: 3
    employment_growth_factor: 0.05

scenarios:
  baseline:
    description: "Continuation of current policy settings."
  pro_investment:
    description: "Expanded credit guarantees and easier finance access."
    financing:
      base_loan_seek_prob: 0.20
      credit_guarantee_effectiveness: 0.20
  digital_leap:
    description: "Aggressive digital infrastructure and literacy push."
    technology_adoption:
      base_adoption_prob: 0.10
      digital_literacy_improvement_rate: 0.04
    business_environment:
      annual_infrastructure_improvement_rate: 0.03
`
