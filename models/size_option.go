package models

import (
	"sort"

	"printshop/db"
)

// FramePrice is the surcharge for mounting a given size in a given frame type.
type FramePrice struct {
	ID           uint64  `gorm:"primaryKey" json:"-"`
	SizeOptionID string  `gorm:"type:varchar(50);index:uniq_size_frame,unique,priority:1;not null" json:"-"`
	FrameTypeID  string  `gorm:"type:varchar(50);index:uniq_size_frame,unique,priority:2;not null" json:"frameTypeId"`
	Price        float64 `json:"price"`
	Discount     float64 `json:"discount"` // percent, 0-100
}

// SizeOption is one row of the catalog size table. The ID doubles as the
// selection key used by the storefront, e.g. "30x40 cm".
type SizeOption struct {
	ID          uint64       `gorm:"primaryKey" json:"-"`
	SizeID      string       `gorm:"type:varchar(50);index:uniq_size,unique;not null" json:"id"`
	Width       float64      `json:"width"`  // cm
	Height      float64      `json:"height"` // cm
	Price       float64      `json:"price"`
	Discount    float64      `json:"discount"` // percent, 0-100
	FramePrices []FramePrice `gorm:"foreignKey:SizeOptionID;references:SizeID" json:"framePrices"`
}

func (s *SizeOption) Area() float64 {
	return s.Width * s.Height
}

// FinalPrice applies the size discount, if any
func (s *SizeOption) FinalPrice() float64 {
	if s.Discount > 0 {
		return s.Price * (1 - s.Discount/100)
	}
	return s.Price
}

func (f *FramePrice) FinalPrice() float64 {
	if f.Discount > 0 {
		return f.Price * (1 - f.Discount/100)
	}
	return f.Price
}

// Frame returns the frame surcharge entry for the given frame type, or nil
func (s *SizeOption) Frame(frameTypeID string) *FramePrice {
	for i := range s.FramePrices {
		if s.FramePrices[i].FrameTypeID == frameTypeID {
			return &s.FramePrices[i]
		}
	}
	return nil
}

// SizeTable is the read-only size catalog the pricing code resolves against
type SizeTable []SizeOption

func (t SizeTable) ByID(sizeID string) *SizeOption {
	for i := range t {
		if t[i].SizeID == sizeID {
			return &t[i]
		}
	}
	return nil
}

// SortByArea orders the table ascending by printed area, the order the
// storefront presents sizes for selection
func (t SizeTable) SortByArea() {
	sort.SliceStable(t, func(i, j int) bool {
		return t[i].Area() < t[j].Area()
	})
}

// GetSizes loads the size table, sorted ascending by area
func GetSizes() (SizeTable, error) {
	var sizes SizeTable
	if err := db.Instance.Preload("FramePrices").Find(&sizes).Error; err != nil {
		return nil, err
	}
	sizes.SortByArea()
	return sizes, nil
}
