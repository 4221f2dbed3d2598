package domain

// FilterPreset is a user-named snapshot of the filter bar. Presets form an
// ordered sequence and are never deduplicated.
type FilterPreset struct {
	Name       string       `json:"name"`
	SearchTerm string       `json:"searchTerm"`
	Status     StatusFilter `json:"statusFilter"`
	Category   string       `json:"categoryFilter"`
	Sort       SortKey      `json:"sortKey"`
}
