package product

// PriceKind tells which representation a Price carries.
type PriceKind uint8

const (
	// PriceNone means the upstream record had no price.
	PriceNone PriceKind = iota
	// PriceNumeric is an exact amount.
	PriceNumeric
	// PriceDisplay is a pre-formatted string such as a range.
	PriceDisplay
)

// Price is either a numeric amount or an opaque display string. The two are never
// converted into each other.
type Price struct {
	kind    PriceKind
	amount  float64
	display string
}

// Numeric creates an exact-amount price.
func Numeric(amount float64) Price {
	return Price{kind: PriceNumeric, amount: amount}
}

// Display creates a display-string price.
func Display(text string) Price {
	return Price{kind: PriceDisplay, display: text}
}

// Kind returns the representation.
func (p Price) Kind() PriceKind { return p.kind }

// Amount returns the numeric amount when Kind is PriceNumeric.
func (p Price) Amount() (float64, bool) {
	return p.amount, p.kind == PriceNumeric
}

// Text returns the display string when Kind is PriceDisplay.
func (p Price) Text() (string, bool) {
	return p.display, p.kind == PriceDisplay
}

// Value returns nil, a float64 or a string depending on Kind.
func (p Price) Value() any {
	switch p.kind {
	case PriceNumeric:
		return p.amount
	case PriceDisplay:
		return p.display
	default:
		return nil
	}
}
