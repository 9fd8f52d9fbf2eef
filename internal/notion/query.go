package notion

// Filter is a database query filter. Either a property condition or a
// compound And.
type Filter struct {
	Property string         `json:"property,omitempty"`
	Checkbox *BoolCondition `json:"checkbox,omitempty"`
	RichText *TextCondition `json:"rich_text,omitempty"`
	Select   *TextCondition `json:"select,omitempty"`
	And      []Filter       `json:"and,omitempty"`
}

// BoolCondition matches checkbox values.
type BoolCondition struct {
	Equals bool `json:"equals"`
}

// TextCondition matches text and select values.
type TextCondition struct {
	Equals string `json:"equals"`
}

// Sort orders query results.
type Sort struct {
	Property  string `json:"property,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Direction string `json:"direction"`
}

// QueryRequest is the body of a database query.
type QueryRequest struct {
	Filter   *Filter `json:"filter,omitempty"`
	Sorts    []Sort  `json:"sorts,omitempty"`
	PageSize int     `json:"page_size,omitempty"`
}

// QueryResponse is the decoded result of a database query.
type QueryResponse struct {
	Object     string  `json:"object"`
	Results    []Page  `json:"results"`
	NextCursor *string `json:"next_cursor"`
	HasMore    bool    `json:"has_more"`
}

// PublishedFilter matches pages whose Published checkbox is set.
func PublishedFilter() Filter {
	return Filter{
		Property: PropPublished,
		Checkbox: &BoolCondition{Equals: true},
	}
}

// CategoryFilter matches pages whose Category select equals name.
func CategoryFilter(name string) Filter {
	return Filter{
		Property: PropCategory,
		Select:   &TextCondition{Equals: name},
	}
}

// SlugFilter matches pages whose Slug text equals slug.
func SlugFilter(slug string) Filter {
	return Filter{
		Property: PropSlug,
		RichText: &TextCondition{Equals: slug},
	}
}

// And combines filters. A single filter is returned unchanged.
func And(filters ...Filter) Filter {
	if len(filters) == 1 {
		return filters[0]
	}
	return Filter{And: filters}
}

// LastEditedDescending sorts newest edits first.
func LastEditedDescending() Sort {
	return Sort{
		Timestamp: "last_edited_time",
		Direction: "descending",
	}
}
