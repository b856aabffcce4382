// Package agent provides the SME record schema and the population store
// mutated in place by the dynamics stages.
package agent

// Status is an SME's lifecycle state. Exited firms stay in the table (soft
// delete) so totals and active counts remain distinguishable.
type Status uint8

const (
	StatusActive Status = iota
	StatusExited
)

func (s Status) String() string {
	if s == StatusExited {
		return "exited"
	}
	return "active"
}

// StatusFromString maps a stored status label back to its enum value.
func StatusFromString(v string) Status {
	if v == "exited" {
		return StatusExited
	}
	return StatusActive
}

// Canonical categorical labels.
const (
	FormalityFormal   = "formal"
	FormalityInformal = "informal"

	SizeMicro  = "micro"
	SizeSmall  = "small"
	SizeMedium = "medium"

	GenderFemale = "female"
	GenderMale   = "male"
)

// SME is one simulated enterprise. Value type on purpose: the population
// holds SMEs by value so a slice copy is a deep copy.
type SME struct {
	ID int

	// Fixed at creation.
	Sector      string
	Location    string
	OwnerGender string
	IsYouthLed  bool

	// Classification, revisited by the lifecycle stage.
	SizeCategory string
	Formality    string

	Age        int
	Revenue    float64
	Employment int
	Assets     float64
	Status     Status

	// Bounded [0,1] by every stage that mutates them.
	Creditworthiness   float64
	SkillLevel         float64
	DigitalLiteracy    float64
	ResourceEfficiency float64
	ResilienceScore    float64
	InclusionScore     float64

	// Non-negative.
	Debt           float64
	ComplianceCost float64

	// One-directional under the current rule set: false -> true only.
	HasAdoptedTech bool
	IsInnovator    bool
	IsExporter     bool
	UsesEcommerce  bool

	// Unbounded above.
	Productivity float64

	// Consecutive years below the lifecycle productivity threshold.
	LowProductivityYears int
}

// SizeForEmployment classifies headcount into a size category.
func SizeForEmployment(employment int) string {
	switch {
	case employment < 10:
		return SizeMicro
	case employment < 50:
		return SizeSmall
	default:
		return SizeMedium
	}
}

// EmploymentBounds returns the [lo, hi) headcount range for a size category.
func EmploymentBounds(size string) (lo, hi int) {
	switch size {
	case SizeSmall:
		return 10, 50
	case SizeMedium:
		return 50, 250
	default:
		return 1, 10
	}
}
