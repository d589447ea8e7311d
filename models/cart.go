package models

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"
)

// PersonalizedModelID marks custom-canvas line items
const PersonalizedModelID = "personalized-canvas"

// Customization is the immutable record attached to one finalised
// personalised canvas. Price is frozen at finalise time and is never
// recomputed from the catalog.
type Customization struct {
	ModelID          string  `json:"modelId"`
	OriginalImageURL string  `json:"originalImageUrl"`
	CroppedImageURL  string  `json:"croppedImageUrl"`
	SelectedSize     string  `json:"selectedSize"`
	Orientation      string  `json:"orientation"`
	Price            float64 `json:"price"`
}

// CartItem is one cart line. Which pricing variant applies is determined by
// Customization and by the shape of the embedded Product.
type CartItem struct {
	ID                string         `json:"id"`
	Product           Product        `json:"product"`
	Quantity          int            `json:"quantity"`
	SelectedDimension string         `json:"selectedDimension,omitempty"`
	PrintType         string         `json:"printType,omitempty"` // 'Print Canvas' | 'Print Hartie'
	FrameType         string         `json:"frameType,omitempty"`
	Customization     *Customization `json:"customization,omitempty"`
}

type Cart struct {
	Items []CartItem `json:"items"`
}

// AddItem inserts a line into the cart. Non-personalised lines merge with an
// existing line when product, dimension, print type and frame type all match;
// personalised lines always get a fresh id and are never merged.
func (c *Cart) AddItem(item CartItem) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Customization == nil {
		for i := range c.Items {
			existing := &c.Items[i]
			if existing.Customization != nil {
				continue
			}
			if existing.Product.ID == item.Product.ID &&
				existing.SelectedDimension == item.SelectedDimension &&
				existing.PrintType == item.PrintType &&
				existing.FrameType == item.FrameType {

				existing.Quantity += item.Quantity
				return
			}
		}
	}
	c.Items = append(c.Items, item)
}

// UpdateQuantity sets a line's quantity exactly. Zero or negative removes the line.
func (c *Cart) UpdateQuantity(id string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(id)
		return
	}
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

func (c *Cart) RemoveItem(id string) {
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.Items = nil
}

// ItemCount is the sum of quantities, not the number of lines
func (c *Cart) ItemCount() int {
	count := 0
	for i := range c.Items {
		count += c.Items[i].Quantity
	}
	return count
}

// Encode is the inverse of DecodeCart
func (c *Cart) Encode() ([]byte, error) {
	return json.Marshal(c)
}

// lineProbe captures the raw JSON of the two fields older clients are known
// to have written with the wrong type
type lineProbe struct {
	PrintType json.RawMessage `json:"printType"`
	FrameType json.RawMessage `json:"frameType"`
}

func stringOrAbsent(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return true
	}
	return raw[0] == '"'
}

// DecodeCart parses a persisted cart, dropping (not repairing) any line whose
// printType or frameType is present but not a string. Bad lines never enter
// cart state.
func DecodeCart(data []byte) (*Cart, error) {
	var envelope struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, err
	}
	cart := &Cart{}
	for _, raw := range envelope.Items {
		var probe lineProbe
		if err := json.Unmarshal(raw, &probe); err != nil {
			log.Printf("Dropping unreadable cart line: %v", err)
			continue
		}
		if !stringOrAbsent(probe.PrintType) || !stringOrAbsent(probe.FrameType) {
			log.Printf("Dropping cart line with malformed printType/frameType")
			continue
		}
		var item CartItem
		if err := json.Unmarshal(raw, &item); err != nil {
			log.Printf("Dropping undecodable cart line: %v", err)
			continue
		}
		cart.Items = append(cart.Items, item)
	}
	return cart, nil
}
