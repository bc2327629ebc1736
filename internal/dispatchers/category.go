package dispatchers

type CommandCategory int

const (
	CategoryUncategorized CommandCategory = iota
	CategoryMirror                        // Fetching and committing activity
	CategoryInspect                       // Viewing the ledger and state
	CategoryConfig                        // Configuration
)

func (c CommandCategory) String() string {
	switch c {
	case CategoryMirror:
		return "mirror activity"
	case CategoryInspect:
		return "inspect ledger and state"
	case CategoryConfig:
		return "configure recommit"
	default:
		return "other commands"
	}
}

var categoryOrder = []CommandCategory{
	CategoryMirror,
	CategoryInspect,
	CategoryConfig,
	CategoryUncategorized,
}

// CategoryOrder returns the display order for categories.
func CategoryOrder() []CommandCategory {
	return categoryOrder
}
