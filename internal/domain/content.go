package domain

import "time"

var BlogCategories = []string{"Hair Care", "Style Guide", "Product Reviews", "Tips & Tricks", "News"}

type BlogPost struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Excerpt       string    `json:"excerpt"`
	Author        string    `json:"author"`
	Category      string    `json:"category"`
	FeaturedImage string    `json:"featuredImage,omitempty"`
	Images        []string  `json:"images"`
	Tags          []string  `json:"tags"`
	Published     bool      `json:"published"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

const (
	SiteSettingsID   = "global"
	DefaultPromoText = "Get 50% Discount On Every Item Purchased On Christmas Day"
	MaxPromoWords    = 15
)

type SiteSettings struct {
	PromoText string    `json:"promoText"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}
