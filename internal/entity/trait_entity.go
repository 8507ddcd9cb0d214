package entity

// TraitDefinition is one entry of the trait registry. The Key is the stable
// identifier criteria are expressed in; DisplayName is what users see.
type TraitDefinition struct {
	Key         string
	DisplayName string
	Description string
}

// TraitResult is a candidate's assessment outcome for a single trait.
// DisplayName and Description are backfilled from the registry; when the
// trait key is unknown the raw key stands in as the display name and the
// result stays usable for scoring.
type TraitResult struct {
	Score       float64
	Percentile  *float64
	DisplayName string
	Description string
}
