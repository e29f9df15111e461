package checkbm

// A RuleSet declares which regions must be checked and how many bits the
// inode and data bitmaps are expected to have set.
type RuleSet struct {
	Checks     []string
	Required   []RegionKind
	ValidInode uint64
	ValidData  uint64
}

// NewRuleSet builds a RuleSet from raw check descriptions.
func NewRuleSet(checks []string, validInode, validData uint64) *RuleSet {
	return &RuleSet{
		Checks:     checks,
		Required:   NormalizeChecks(checks),
		ValidInode: validInode,
		ValidData:  validData,
	}
}

// NormalizeChecks classifies each check description in order. Descriptions
// matching no kind are dropped; duplicates are kept. If nothing classifies,
// every kind is required.
func NormalizeChecks(checks []string) []RegionKind {
	kinds := []RegionKind{}
	for _, check := range checks {
		if kind, ok := Classify(check); ok {
			kinds = append(kinds, kind)
		}
	}
	if len(kinds) == 0 {
		return append([]RegionKind{}, AllKinds...)
	}
	return kinds
}

// Requires reports whether kind is among the required checks.
func (r *RuleSet) Requires(kind RegionKind) bool {
	return ContainsKind(r.Required, kind)
}
