package rules

// Category groups rules under a theme so that a per-category weight can
// scale all of them at once.
type Category int

const (
	CategoryMaterial Category = iota
	CategoryMobility
	CategoryKingSafety
	CategoryPawnStructure
	CategoryPositional
	CategoryPieceCoordination
	CategoryThreats
)

var categoryNames = [...]string{
	CategoryMaterial:          "material",
	CategoryMobility:          "mobility",
	CategoryKingSafety:        "king_safety",
	CategoryPawnStructure:     "pawn_structure",
	CategoryPositional:        "positional",
	CategoryPieceCoordination: "piece_coordination",
	CategoryThreats:           "threats",
}

// Categories lists every category in declaration order.
func Categories() []Category {
	out := make([]Category, len(categoryNames))
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// ParseCategory maps a category alias. Default: CategoryPositional.
func ParseCategory(s string) Category {
	switch normalizeAlias(s) {
	case "material":
		return CategoryMaterial
	case "mobility":
		return CategoryMobility
	case "kingsafety":
		return CategoryKingSafety
	case "pawnstructure":
		return CategoryPawnStructure
	case "piececoordination":
		return CategoryPieceCoordination
	case "threats":
		return CategoryThreats
	default:
		return CategoryPositional
	}
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "positional"
	}
	return categoryNames[c]
}

// Rule binds a gate, a selector, and a value curve under one category.
// Rules are built by configuration and never mutated by evaluation.
type Rule struct {
	ID        string
	Name      string
	Category  Category
	Condition Condition
	Target    Target
	Value     Value
	Enabled   bool
}

// Score runs the rule against ctx and returns the summed centipawn
// contribution before category weighting. A disabled rule or a failed
// condition contributes zero.
func (r *Rule) Score(ctx Context) float64 {
	if !r.Enabled || r.Condition == nil || r.Target == nil || r.Value == nil {
		return 0
	}
	if !r.Condition.Evaluate(ctx) {
		return 0
	}
	total := 0.0
	for _, c := range r.Target.Select(ctx) {
		total += r.Value.Compute(c.Measurement)
	}
	return total
}
