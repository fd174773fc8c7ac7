package domain

import "testing"

func TestPriceKnown(t *testing.T) {
	if (Product{ListPrice: 999}).PriceKnown() != true {
		t.Error("positive list price should be known")
	}
	if (Product{}).PriceKnown() {
		t.Error("zero list price is the unknown sentinel")
	}
}

func TestEffectivePrice(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		want    float64
	}{
		{
			name:    "on sale with valid discount",
			product: Product{ListPrice: 1199, DiscountPrice: 899, OnSale: true},
			want:    899,
		},
		{
			name:    "not on sale ignores discount",
			product: Product{ListPrice: 1199, DiscountPrice: 899},
			want:    1199,
		},
		{
			name:    "discount above list price ignored",
			product: Product{ListPrice: 100, DiscountPrice: 150, OnSale: true},
			want:    100,
		},
		{
			name:    "zero discount ignored",
			product: Product{ListPrice: 100, OnSale: true},
			want:    100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.product.EffectivePrice(); got != tt.want {
				t.Errorf("EffectivePrice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSummary(t *testing.T) {
	t.Run("plain product", func(t *testing.T) {
		p := Product{Name: "iPhone 13", Brand: "Apple", Category: "Electronics", ListPrice: 999}
		if got := p.Summary(); got != "Apple - Electronics" {
			t.Errorf("Summary() = %q", got)
		}
	})

	t.Run("discounted product includes the percentage", func(t *testing.T) {
		p := Product{Name: "Nike Air Max", Brand: "Nike", Category: "Footwear", ListPrice: 200, DiscountPrice: 150, OnSale: true}
		if got := p.Summary(); got != "Nike - Footwear - 25% off!" {
			t.Errorf("Summary() = %q", got)
		}
	})

	t.Run("on sale with unknown price omits the suffix", func(t *testing.T) {
		p := Product{Name: "Mystery", Brand: "Acme", Category: "Home", OnSale: true}
		if got := p.Summary(); got != "Acme - Home" {
			t.Errorf("Summary() = %q", got)
		}
	})
}

func TestBuildSearchText(t *testing.T) {
	p := Product{Name: "iPhone 13", Brand: "Apple", Category: "Electronics"}
	if got := BuildSearchText(p); got != "iphone 13 electronics apple" {
		t.Errorf("BuildSearchText() = %q", got)
	}
}
