// Package catalog serves the product listing: filter parsing, query
// building, execution against Postgres and the card projection.
package catalog

import (
	"slices"
	"time"
)

// PlaceholderImageURL is used for products without any image.
const PlaceholderImageURL = "/placeholder.svg"

type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	IsActive bool   `json:"is_active"`
}

type Brand struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	IsActive bool   `json:"is_active"`
}

// Ref is the slim category or brand reference embedded in a product.
type Ref struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Image struct {
	ID        int64  `json:"id"`
	URL       string `json:"url"`
	IsPrimary bool   `json:"is_primary"`
	SortOrder int    `json:"sort_order"`
}

type Product struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Slug               string    `json:"slug"`
	Description        string    `json:"description"`
	OriginalPriceCents int64     `json:"original_price_cents"`
	SalePriceCents     *int64    `json:"sale_price_cents,omitempty"`
	DiscountPercent    *int      `json:"discount_percent,omitempty"`
	Category           *Ref      `json:"category,omitempty"`
	Brand              *Ref      `json:"brand,omitempty"`
	Gender             string    `json:"gender"`
	Condition          string    `json:"condition"`
	Images             []Image   `json:"images"`
	Featured           bool      `json:"featured"`
	SalesCount         int       `json:"sales_count"`
	CreatedAt          time.Time `json:"created_at"`
}

// CurrentPriceCents is the sale price when one is set, else the original.
func (p *Product) CurrentPriceCents() int64 {
	if p.SalePriceCents != nil {
		return *p.SalePriceCents
	}
	return p.OriginalPriceCents
}

// PrimaryImageURL picks the image flagged primary, else the first in display
// order, else the placeholder.
func (p *Product) PrimaryImageURL() string {
	if len(p.Images) == 0 {
		return PlaceholderImageURL
	}
	for _, img := range p.Images {
		if img.IsPrimary {
			return img.URL
		}
	}
	ordered := slices.Clone(p.Images)
	slices.SortStableFunc(ordered, func(a, b Image) int { return a.SortOrder - b.SortOrder })
	return ordered[0].URL
}

func (p *Product) SearchName() string        { return p.Name }
func (p *Product) SearchDescription() string { return p.Description }

// ProductCard is the listing projection of a product.
type ProductCard struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	Slug               string `json:"slug"`
	PriceCents         int64  `json:"price_cents"`
	OriginalPriceCents int64  `json:"original_price_cents"`
	DiscountPercent    *int   `json:"discount_percent,omitempty"`
	OnSale             bool   `json:"on_sale"`
	ImageURL           string `json:"image_url"`
	CategoryName       string `json:"category_name,omitempty"`
	BrandName          string `json:"brand_name,omitempty"`
}

func (p *Product) Card() ProductCard {
	c := ProductCard{
		ID:                 p.ID,
		Name:               p.Name,
		Slug:               p.Slug,
		PriceCents:         p.CurrentPriceCents(),
		OriginalPriceCents: p.OriginalPriceCents,
		DiscountPercent:    p.DiscountPercent,
		ImageURL:           p.PrimaryImageURL(),
	}
	c.OnSale = c.PriceCents < c.OriginalPriceCents
	if p.Category != nil {
		c.CategoryName = p.Category.Name
	}
	if p.Brand != nil {
		c.BrandName = p.Brand.Name
	}
	return c
}
