package model

// WebPage is a web page that contains the annotated image or a similar one.
type WebPage struct {
	// URL is the address of the page.
	URL string `json:"url"`
}

// WebImage is an image found on the web that matches the annotated image.
type WebImage struct {
	// URL is the address of the matching image.
	URL string `json:"url"`
}

// WebEntity is a labeled concept the remote service associates with the image.
type WebEntity struct {
	// Score is the relevance of the entity. It is not normalized and is
	// not comparable across requests.
	Score float64 `json:"score"`

	// Description is the canonical description of the entity, in English.
	Description string `json:"description"`
}

// Result is the flattened web detection result for one image.
// The four lists are independent of each other; any of them may be empty.
// Order is exactly the order returned by the remote service.
type Result struct {
	// PagesWithMatchingImages are web pages containing matching images.
	PagesWithMatchingImages []WebPage

	// FullMatchingImages are fully matching images found on the web.
	FullMatchingImages []WebImage

	// PartialMatchingImages are partially matching images found on the web,
	// for example crops of the annotated image.
	PartialMatchingImages []WebImage

	// WebEntities are the entities deduced from similar images on the web.
	WebEntities []WebEntity
}

// NewResult creates an empty Result whose lists are non-nil.
func NewResult() *Result {
	return &Result{
		PagesWithMatchingImages: []WebPage{},
		FullMatchingImages:      []WebImage{},
		PartialMatchingImages:   []WebImage{},
		WebEntities:             []WebEntity{},
	}
}

// IsEmpty reports whether none of the four lists holds an entry.
func (r *Result) IsEmpty() bool {
	return len(r.PagesWithMatchingImages) == 0 &&
		len(r.FullMatchingImages) == 0 &&
		len(r.PartialMatchingImages) == 0 &&
		len(r.WebEntities) == 0
}

// Total returns the number of entries across all four lists.
func (r *Result) Total() int {
	return len(r.PagesWithMatchingImages) +
		len(r.FullMatchingImages) +
		len(r.PartialMatchingImages) +
		len(r.WebEntities)
}
