package product

// MaxItems bounds a normalized result page.
const MaxItems = 10

// Item is a single normalized product from the upstream search. Every field is optional;
// empty strings mean absent.
type Item struct {
	externalID string
	title      string
	imageURL   string
	productURL string
	price      Price
	rating     float64
	hasRating  bool
}

// Fields carries the raw values an Item is built from.
type Fields struct {
	ExternalID string
	Title      string
	ImageURL   string
	ProductURL string
	Price      Price
	Rating     *float64
}

// NewItem creates an item.
func NewItem(f Fields) Item {
	it := Item{
		externalID: f.ExternalID,
		title:      f.Title,
		imageURL:   f.ImageURL,
		productURL: f.ProductURL,
		price:      f.Price,
	}
	if f.Rating != nil {
		it.rating = *f.Rating
		it.hasRating = true
	}
	return it
}

// ExternalID returns the upstream product identifier.
func (i *Item) ExternalID() string { return i.externalID }

// Title returns the display name.
func (i *Item) Title() string { return i.title }

// ImageURL returns the reference image location.
func (i *Item) ImageURL() string { return i.imageURL }

// ProductURL returns the source listing link.
func (i *Item) ProductURL() string { return i.productURL }

// Price returns the price.
func (i *Item) Price() Price { return i.price }

// Rating returns the score and whether the upstream supplied one.
func (i *Item) Rating() (float64, bool) { return i.rating, i.hasRating }

// Page is an ordered, bounded list of items plus the size of the candidate set
// it was cut from.
type Page struct {
	items          []Item
	candidateCount int
}

// NewPage creates a page.
func NewPage(items []Item, candidateCount int) Page {
	return Page{items: items, candidateCount: candidateCount}
}

// Items returns the items in upstream order.
func (p *Page) Items() []Item { return p.items }

// CandidateCount returns the upstream candidate count before truncation.
func (p *Page) CandidateCount() int { return p.candidateCount }
