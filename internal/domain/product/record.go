package product

// Record is the JSON shape of an Item. Nil fields were absent upstream.
type Record struct {
	ASIN  *string  `json:"asin"`
	Title *string  `json:"title"`
	Image *string  `json:"image"`
	Price any      `json:"price"` // float64, string or nil
	Stars *float64 `json:"stars"`
	URL   *string  `json:"url"`
}

// Listing is the JSON shape of a Page.
type Listing struct {
	Items    []Record `json:"items"`
	RawCount int      `json:"rawCount"`
}

// Record renders the item for JSON output.
func (i *Item) Record() Record {
	out := Record{
		ASIN:  optString(i.externalID),
		Title: optString(i.title),
		Image: optString(i.imageURL),
		Price: i.price.Value(),
		URL:   optString(i.productURL),
	}
	if i.hasRating {
		stars := i.rating
		out.Stars = &stars
	}
	return out
}

// Listing renders the page for JSON output. Items is never nil.
func (p *Page) Listing() Listing {
	items := make([]Record, len(p.items))
	for n := range p.items {
		items[n] = p.items[n].Record()
	}
	return Listing{Items: items, RawCount: p.candidateCount}
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
