package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryRef is the minimal projection embedded when a related category is
// expanded on reads.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Product is a catalog item. Category is a soft reference: the category may be
// deleted while products still point at it.
type Product struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	ShortDescription string           `json:"shortDescription,omitempty"`
	Price            decimal.Decimal  `json:"price"`
	CompareAtPrice   *decimal.Decimal `json:"compareAtPrice,omitempty"`
	SKU              string           `json:"sku"`
	CategoryID       string           `json:"categoryId"`
	Category         *CategoryRef     `json:"category,omitempty"`
	Subcategory      string           `json:"subcategory,omitempty"`
	Brand            string           `json:"brand,omitempty"`
	Images           []string         `json:"images"`
	Thumbnail        string           `json:"thumbnail,omitempty"`
	Stock            int              `json:"stock"`
	IsActive         bool             `json:"isActive"`
	IsAffiliate      bool             `json:"isAffiliate"`
	AffiliateLink    string           `json:"affiliateLink,omitempty"`
	Tags             []string         `json:"tags"`
	Rating           float64          `json:"rating"`
	ReviewCount      int              `json:"reviewCount"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// MainImage returns the image snapshotted into order items: the thumbnail when
// set, otherwise the first gallery image.
func (p *Product) MainImage() string {
	if p.Thumbnail != "" {
		return p.Thumbnail
	}
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}
