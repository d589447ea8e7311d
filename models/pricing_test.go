package models

import (
	"math"
	"testing"
)

func testSizeTable() SizeTable {
	return SizeTable{
		{
			SizeID: "30x40 cm", Width: 30, Height: 40, Price: 150, Discount: 10,
			FramePrices: []FramePrice{
				{FrameTypeID: "wood", Price: 20, Discount: 0},
				{FrameTypeID: "gold", Price: 50, Discount: 50},
			},
		},
		{SizeID: "50x70 cm", Width: 50, Height: 70, Price: 250, Discount: 0},
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCartItem_UnitPrice(t *testing.T) {
	sizes := testSizeTable()
	tests := []struct {
		name string
		item CartItem
		want float64
	}{
		{
			name: "legacy sizes schema, matching sizeId",
			item: CartItem{
				Product:           Product{ID: "p1", Sizes: []LegacySize{{SizeID: "30x40", Price: 100}}},
				SelectedDimension: "30x40",
			},
			want: 100,
		},
		{
			name: "current schema with discount",
			item: CartItem{
				Product:           Product{ID: "p2", AvailableSizes: []string{"30x40 cm"}},
				SelectedDimension: "30x40 cm",
			},
			want: 135,
		},
		{
			name: "current schema with discount and frame",
			item: CartItem{
				Product:           Product{ID: "p2", AvailableSizes: []string{"30x40 cm"}},
				SelectedDimension: "30x40 cm",
				FrameType:         "wood",
			},
			want: 155,
		},
		{
			name: "current schema with discounted frame",
			item: CartItem{
				Product:           Product{ID: "p2", AvailableSizes: []string{"30x40 cm"}},
				SelectedDimension: "30x40 cm",
				FrameType:         "gold",
			},
			want: 160,
		},
		{
			name: "current schema, size id gone from table",
			item: CartItem{
				Product:           Product{ID: "p2", Price: 80, AvailableSizes: []string{"10x10 cm"}},
				SelectedDimension: "10x10 cm",
				FrameType:         "wood", // no frame addition on the fallback path
			},
			want: 80,
		},
		{
			name: "personalized line keeps frozen price",
			item: CartItem{
				Product:       Product{ID: "p3"},
				Customization: &Customization{ModelID: PersonalizedModelID, Price: 89},
			},
			want: 89,
		},
		{
			name: "legacy sizes beats flat product price",
			item: CartItem{
				// Legacy shape and a price field at the same time: the
				// sizes lookup must win
				Product:           Product{ID: "p4", Price: 999, Sizes: []LegacySize{{SizeID: "20x30", Price: 70}}},
				SelectedDimension: "20x30",
			},
			want: 70,
		},
		{
			name: "legacy sizes, no match falls back to first entry",
			item: CartItem{
				Product:           Product{ID: "p4", Price: 999, Sizes: []LegacySize{{SizeID: "20x30", Price: 70}, {SizeID: "30x40", Price: 90}}},
				SelectedDimension: "60x80",
			},
			want: 70,
		},
		{
			name: "legacy sizes, empty list",
			item: CartItem{
				Product:           Product{ID: "p5", Sizes: []LegacySize{}},
				SelectedDimension: "30x40",
			},
			want: 0,
		},
		{
			name: "flat legacy product with dimensions",
			item: CartItem{
				Product:           Product{ID: "p6", Price: 60, Dimensions: []FlatDimension{{Size: "A4", Price: 45}}},
				SelectedDimension: "A4",
			},
			want: 45,
		},
		{
			name: "flat legacy product, no dimension match",
			item: CartItem{
				Product:           Product{ID: "p6", Price: 60, Dimensions: []FlatDimension{{Size: "A4", Price: 45}}},
				SelectedDimension: "A3",
			},
			want: 60,
		},
		{
			name: "malformed line prices at zero",
			item: CartItem{ID: "bad"},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.UnitPrice(sizes); !almostEqual(got, tt.want) {
				t.Errorf("UnitPrice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCart_Total_LegacyQuantity(t *testing.T) {
	cart := Cart{}
	cart.AddItem(CartItem{
		Product:           Product{ID: "p1", Sizes: []LegacySize{{SizeID: "30x40", Price: 100}}},
		SelectedDimension: "30x40",
		Quantity:          2,
	})
	if got := cart.Total(testSizeTable()); !almostEqual(got, 200) {
		t.Errorf("Total() = %v, want 200", got)
	}
}

func TestCart_Total_FrozenPersonalizedPrice(t *testing.T) {
	sizes := testSizeTable()
	cart := Cart{}
	cart.AddItem(CartItem{
		Quantity: 1,
		Customization: &Customization{
			ModelID: PersonalizedModelID, SelectedSize: "30x40 cm", Price: 89,
		},
	})
	if got := cart.Total(sizes); !almostEqual(got, 89) {
		t.Fatalf("Total() = %v, want 89", got)
	}
	// A catalog price change must not leak into the already-added line
	sizes[0].Price = 500
	sizes[1].Price = 700
	if got := cart.Total(sizes); !almostEqual(got, 89) {
		t.Errorf("Total() after catalog change = %v, want 89", got)
	}
}

func TestCart_Total_Monotonicity(t *testing.T) {
	sizes := testSizeTable()
	cart := Cart{}
	previous := 0.0
	items := []CartItem{
		{Product: Product{ID: "a", AvailableSizes: []string{"30x40 cm"}}, SelectedDimension: "30x40 cm", Quantity: 1},
		{Product: Product{ID: "b", Sizes: []LegacySize{{SizeID: "x", Price: 10}}}, SelectedDimension: "x", Quantity: 3},
		{Quantity: 1, Customization: &Customization{Price: 42}},
	}
	for _, item := range items {
		cart.AddItem(item)
		total := cart.Total(sizes)
		if total < previous {
			t.Fatalf("total decreased after add: %v -> %v", previous, total)
		}
		previous = total
	}
	for len(cart.Items) > 0 {
		cart.RemoveItem(cart.Items[0].ID)
		total := cart.Total(sizes)
		if total > previous {
			t.Fatalf("total increased after remove: %v -> %v", previous, total)
		}
		previous = total
	}
}
