package models

// LegacySize is the embedded per-size price of the old painting schema
type LegacySize struct {
	SizeID string  `json:"sizeId"`
	Price  float64 `json:"price"`
}

// FlatDimension is the embedded per-dimension price of the oldest flat schema
type FlatDimension struct {
	Size  string  `json:"size"`
	Price float64 `json:"price"`
}

// Product is the catalog snapshot carried by a cart line. Three historical
// schemas are still in circulation and are told apart by which of the three
// optional arrays is populated; pricing resolves them in a fixed order.
type Product struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	// Current schema: ids into the external size table
	AvailableSizes []string `json:"availableSizes,omitempty"`
	// Legacy painting schema: embedded size list with own prices
	Sizes []LegacySize `json:"sizes,omitempty"`
	// Legacy flat schema: embedded dimension list with own prices
	Dimensions []FlatDimension `json:"dimensions,omitempty"`
}
