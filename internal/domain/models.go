package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Admin-curated facet values.
var (
	Categories         = []string{"New Arrivals", "Tape-Ins", "Ponytails", "Clip-Ins", "Trending", "Best Selling"}
	HairExtensionTypes = []string{"Luxury Wigs", "Invisible Tape", "Hand-Tied Weft", "Classic Weft"}
	Shades             = []string{"Black", "Brown", "Blonde", "Red"}
	Lengths            = []string{`14"`, `16"`, `18"`, `20"`, `22"`, `24"`}
)

const MaxColorSwatches = 7

type ColorSwatch struct {
	ID    string `json:"id"`
	Color string `json:"color"`
	Name  string `json:"name,omitempty"`
}

type LengthOption struct {
	ID    string           `json:"id"`
	Label string           `json:"label"`
	Price *decimal.Decimal `json:"price,omitempty"`
}

type ShadeOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Product struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	FullDescription   string          `json:"fullDescription,omitempty"`
	Price             decimal.Decimal `json:"price"`
	Category          string          `json:"category"`
	HairExtensionType string          `json:"hairExtensionType,omitempty"`
	Badge             string          `json:"badge,omitempty"`
	Images            []string        `json:"images"`
	Colors            []string        `json:"colors"`
	Shades            []string        `json:"shades"`
	Lengths           []string        `json:"lengths"`
	ColorSwatches     []ColorSwatch   `json:"colorSwatches"`
	LengthOptions     []LengthOption  `json:"lengthOptions"`
	ShadeOptions      []ShadeOption   `json:"shadeOptions"`
	FAQItems          []FAQItem       `json:"faqItems"`
	RelatedProductIDs []string        `json:"relatedProductIds"`
	InStock           bool            `json:"inStock"`
	Featured          bool            `json:"featured"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// PrimaryImage is the first image, or "" when the product has none.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// PriceFor returns the length option override when one matches label.
func (p Product) PriceFor(lengthLabel string) decimal.Decimal {
	for _, o := range p.LengthOptions {
		if o.Label == lengthLabel && o.Price != nil {
			return *o.Price
		}
	}
	return p.Price
}

type Availability struct {
	Status string `json:"status"` // IN_STOCK | OUT_OF_STOCK
}

func Contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
