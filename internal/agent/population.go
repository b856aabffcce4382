package agent

// Optional column names. A loader-supplied dataset may omit any of these;
// the stages that need them fill defaults and skip their substantive logic
// for that year. The core schema (id, categoricals, age, revenue,
// employment, status) is always present.
const (
	ColCreditworthiness   = "creditworthiness"
	ColDebt               = "debt"
	ColAssets             = "assets"
	ColComplianceCost     = "compliance_cost"
	ColSkillLevel         = "skill_level"
	ColDigitalLiteracy    = "digital_literacy"
	ColResourceEfficiency = "resource_efficiency"
	ColResilienceScore    = "resilience_score"
	ColInclusionScore     = "inclusion_score"
	ColHasAdoptedTech     = "has_adopted_tech"
	ColIsInnovator        = "is_innovator"
	ColIsExporter         = "is_exporter"
	ColUsesEcommerce      = "uses_ecommerce"
	ColProductivity       = "productivity"
)

// OptionalColumns lists every column a dataset may omit.
var OptionalColumns = []string{
	ColCreditworthiness, ColDebt, ColAssets, ColComplianceCost,
	ColSkillLevel, ColDigitalLiteracy, ColResourceEfficiency,
	ColResilienceScore, ColInclusionScore, ColHasAdoptedTech,
	ColIsInnovator, ColIsExporter, ColUsesEcommerce, ColProductivity,
}

// Population is the ordered SME table for one scenario run. It is owned
// exclusively by the scenario runner and passed through the pipeline in the
// fixed stage order; no two stages ever hold it concurrently.
type Population struct {
	SMEs []SME

	cols map[string]struct{}
}

// NewPopulation wraps records and marks which optional columns the source
// actually provided.
func NewPopulation(smes []SME, columns []string) *Population {
	p := &Population{SMEs: smes, cols: make(map[string]struct{}, len(columns))}
	for _, c := range columns {
		p.cols[c] = struct{}{}
	}
	return p
}

// Len returns the total number of SMEs, exited included.
func (p *Population) Len() int {
	return len(p.SMEs)
}

// ActiveCount returns the number of SMEs with active status.
func (p *Population) ActiveCount() int {
	n := 0
	for i := range p.SMEs {
		if p.SMEs[i].Status == StatusActive {
			n++
		}
	}
	return n
}

// MaxID returns the highest assigned ID, or 0 for an empty population.
func (p *Population) MaxID() int {
	max := 0
	for i := range p.SMEs {
		if p.SMEs[i].ID > max {
			max = p.SMEs[i].ID
		}
	}
	return max
}

// Append adds new SMEs to the table, marking no additional columns: entrants
// are generated fully populated.
func (p *Population) Append(smes []SME) {
	p.SMEs = append(p.SMEs, smes...)
}

// Clone deep-copies the population. Snapshots must never alias the live
// table, so later pipeline mutation cannot reach into collected results.
func (p *Population) Clone() *Population {
	smes := make([]SME, len(p.SMEs))
	copy(smes, p.SMEs)
	cols := make(map[string]struct{}, len(p.cols))
	for c := range p.cols {
		cols[c] = struct{}{}
	}
	return &Population{SMEs: smes, cols: cols}
}

// HasColumn reports whether the named optional column was provided.
func (p *Population) HasColumn(name string) bool {
	_, ok := p.cols[name]
	return ok
}

// Columns returns the provided optional column names.
func (p *Population) Columns() []string {
	out := make([]string, 0, len(p.cols))
	for c := range p.cols {
		out = append(out, c)
	}
	return out
}

// EnsureColumn reports whether the column was already present. When absent,
// it runs fill (if non-nil) on every record and marks the column present so
// the default only applies once; the caller then skips its substantive
// logic for the year.
func (p *Population) EnsureColumn(name string, fill func(*SME)) bool {
	if p.HasColumn(name) {
		return true
	}
	if fill != nil {
		for i := range p.SMEs {
			fill(&p.SMEs[i])
		}
	}
	if p.cols == nil {
		p.cols = make(map[string]struct{})
	}
	p.cols[name] = struct{}{}
	return false
}
