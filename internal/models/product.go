package models

// Color is a purely descriptive product variant.
type Color struct {
	Name  string `json:"name"`  // display name, may contain spaces
	Value string `json:"value"` // color code, always starts with '#'
}

// Size is a priced product variant; the delta may be negative.
type Size struct {
	Label      string `json:"label"`      // display label, may contain spaces
	PriceDelta int    `json:"priceDelta"` // added to the base price
}

// Product is a persisted catalog record. The json tags define the on-disk
// catalog file layout and the storefront API shape.
type Product struct {
	ID          int      `json:"id"`       // assigned at commit, never reused
	Name        string   `json:"name"`     // display name
	Price       int      `json:"price"`    // base price in rubles
	OldPrice    *int     `json:"oldPrice"` // strike-through price, display only
	Category    string   `json:"category"` // one of the fixed category keys
	Badge       *string  `json:"badge"`    // optional card label (ХИТ, NEW, ...)
	Emoji       string   `json:"emoji"`    // card decoration
	Description string   `json:"desc"`     // free-text description
	Tags        []string `json:"tags"`     // ordered tag list
	Colors      []Color  `json:"colors"`   // ordered color variants
	Sizes       []Size   `json:"sizes"`    // ordered size variants
	Photos      []string `json:"photos"`   // index-ordered public photo URLs
}

// BasePrice returns the lowest displayable price: the base price adjusted
// by the smallest size delta, or the base price when there are no sizes.
func (p *Product) BasePrice() int {
	min, _ := p.PriceRange()
	return min
}

// PriceRange returns the minimum and maximum displayable prices across the
// product's sizes. Without sizes both bounds equal the base price.
func (p *Product) PriceRange() (int, int) {
	if len(p.Sizes) == 0 {
		return p.Price, p.Price
	}
	min := p.Price + p.Sizes[0].PriceDelta
	max := min
	for _, s := range p.Sizes[1:] {
		effective := p.Price + s.PriceDelta
		if effective < min {
			min = effective
		}
		if effective > max {
			max = effective
		}
	}
	return min, max
}
