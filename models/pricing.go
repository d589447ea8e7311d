package models

import "log"

// UnitPrice resolves one line's effective unit price against the size table.
// Resolution precedence, first match wins:
//  1. personalised line - the frozen customization price, no catalog lookup
//  2. current schema - size table lookup with discount, plus frame surcharge;
//     unknown size id falls back to the product's own price
//  3. legacy painting schema - embedded sizes list, raw prices
//  4. legacy flat schema - embedded dimensions list, product price fallback
//
// A line matching no schema prices at 0 so one bad row can never take down
// the cart total. Pure computation, safe to call on every render.
func (i *CartItem) UnitPrice(sizes SizeTable) float64 {
	if i.Customization != nil {
		return i.Customization.Price
	}
	if i.Product.AvailableSizes != nil && i.SelectedDimension != "" {
		if size := sizes.ByID(i.SelectedDimension); size != nil {
			price := size.FinalPrice()
			if i.FrameType != "" {
				if frame := size.Frame(i.FrameType); frame != nil {
					price += frame.FinalPrice()
				}
			}
			return price
		}
		// Size id no longer in the table - undiscounted, no frame addition
		return i.Product.Price
	}
	if i.Product.Sizes != nil {
		for _, s := range i.Product.Sizes {
			if s.SizeID == i.SelectedDimension {
				return s.Price
			}
		}
		if len(i.Product.Sizes) > 0 {
			return i.Product.Sizes[0].Price
		}
		return 0
	}
	for _, d := range i.Product.Dimensions {
		if d.Size == i.SelectedDimension {
			return d.Price
		}
	}
	if i.Product.ID == "" && i.Product.Price == 0 {
		log.Printf("Cart line %s matches no product schema, pricing at 0", i.ID)
		return 0
	}
	return i.Product.Price
}

// Total multiplies each resolved unit price by its quantity and sums
func (c *Cart) Total(sizes SizeTable) float64 {
	total := 0.0
	for i := range c.Items {
		total += c.Items[i].UnitPrice(sizes) * float64(c.Items[i].Quantity)
	}
	return total
}
