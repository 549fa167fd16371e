package spending

// ResolutionKind classifies what the dictionary knows about a subcategory.
type ResolutionKind int

const (
	// ResolutionExplicit - the category came straight from the input and is
	// trusted as-is.
	ResolutionExplicit ResolutionKind = iota
	// ResolutionUnique - the subcategory lives under exactly one category.
	ResolutionUnique
	// ResolutionAmbiguous - the subcategory lives under two or more
	// categories; the user has to pick one.
	ResolutionAmbiguous
	// ResolutionUnknown - the subcategory is not in the dictionary at all.
	ResolutionUnknown
)

type Resolution struct {
	Kind       ResolutionKind
	Category   string   // set for Explicit and Unique
	Candidates []string // set for Ambiguous
}

// Resolve classifies a subcategory against the dictionary via the reverse
// index. Lookup only - the dictionary is mutated later, once a category is
// confirmed.
func Resolve(dict *Dictionary, subcategory string) Resolution {
	matches := dict.ReverseLookup(subcategory)
	switch len(matches) {
	case 0:
		return Resolution{Kind: ResolutionUnknown}
	case 1:
		return Resolution{Kind: ResolutionUnique, Category: matches[0]}
	default:
		return Resolution{Kind: ResolutionAmbiguous, Candidates: matches}
	}
}

// ResolveExplicit is the trivial outcome for inputs that named the category
// themselves.
func ResolveExplicit(category string) Resolution {
	return Resolution{Kind: ResolutionExplicit, Category: category}
}
