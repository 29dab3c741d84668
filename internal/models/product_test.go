package models

import "testing"

func TestPriceRangeWithSizes(t *testing.T) {
	p := Product{
		Price: 1000,
		Sizes: []Size{
			{Label: "S", PriceDelta: -100},
			{Label: "M", PriceDelta: 0},
			{Label: "L", PriceDelta: 200},
		},
	}
	min, max := p.PriceRange()
	if min != 900 {
		t.Fatalf("expected min 900, got %d", min)
	}
	if max != 1200 {
		t.Fatalf("expected max 1200, got %d", max)
	}
	if p.BasePrice() != 900 {
		t.Fatalf("expected base price 900, got %d", p.BasePrice())
	}
}

func TestPriceRangeWithoutSizes(t *testing.T) {
	p := Product{Price: 45000}
	min, max := p.PriceRange()
	if min != 45000 || max != 45000 {
		t.Fatalf("expected 45000..45000, got %d..%d", min, max)
	}
}
