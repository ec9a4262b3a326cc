package forms

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"emytrends/internal/domain"
)

// Errors maps a field name to a human readable problem.
type Errors map[string]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return strings.Join(parts, "; ")
}

type SwatchInput struct {
	Color string `json:"color"`
	Name  string `json:"name"`
}

type LengthInput struct {
	Label string `json:"label"`
	Price string `json:"price"`
}

// ProductInput is a full editor submission. Images lists the existing URLs
// the operator kept; new files travel next to it in the multipart body.
type ProductInput struct {
	Title             string           `json:"title"`
	Description       string           `json:"description"`
	FullDescription   string           `json:"fullDescription"`
	Price             string           `json:"price"`
	Category          string           `json:"category"`
	HairExtensionType string           `json:"hairExtensionType"`
	Badge             string           `json:"badge"`
	Images            []string         `json:"images"`
	Colors            []string         `json:"colors"`
	Shades            []string         `json:"shades"`
	Lengths           []string         `json:"lengths"`
	ColorSwatches     []SwatchInput    `json:"colorSwatches"`
	LengthOptions     []LengthInput    `json:"lengthOptions"`
	ShadeOptions      []string         `json:"shadeOptions"`
	FAQItems          []domain.FAQItem `json:"faqItems"`
	RelatedProductIDs []string         `json:"relatedProductIds"`
	InStock           *bool            `json:"inStock"`
	Featured          bool             `json:"featured"`
}

// Apply replaces the form state with in, running every list through its
// builder. Retained images not on the loaded record are ignored.
func (f *ProductForm) Apply(in ProductInput) error {
	f.p.Title = strings.TrimSpace(in.Title)
	f.p.Description = strings.TrimSpace(in.Description)
	f.p.FullDescription = strings.TrimSpace(in.FullDescription)
	f.p.Category = strings.TrimSpace(in.Category)
	f.p.HairExtensionType = strings.TrimSpace(in.HairExtensionType)
	f.p.Badge = strings.TrimSpace(in.Badge)
	f.p.Featured = in.Featured
	if in.InStock != nil {
		f.p.InStock = *in.InStock
	}

	price, err := decimal.NewFromString(strings.TrimSpace(in.Price))
	if err != nil {
		return Errors{"price": "price must be a number"}
	}
	f.p.Price = price

	f.p.Images = nil
	for _, u := range in.Images {
		if domain.Contains(f.current, u) && !domain.Contains(f.p.Images, u) {
			f.p.Images = append(f.p.Images, u)
		}
	}

	f.p.Colors, f.p.Shades, f.p.Lengths = nil, nil, nil
	for _, c := range in.Colors {
		f.AddColor(c)
	}
	for _, s := range in.Shades {
		if !domain.Contains(f.p.Shades, s) {
			f.ToggleShade(s)
		}
	}
	for _, l := range in.Lengths {
		if !domain.Contains(f.p.Lengths, l) {
			f.ToggleLength(l)
		}
	}

	f.p.ColorSwatches = nil
	for _, s := range in.ColorSwatches {
		if _, err := f.AddColorSwatch(s.Color, s.Name); err != nil {
			return err
		}
	}
	f.p.LengthOptions = nil
	for _, o := range in.LengthOptions {
		if _, err := f.AddLengthOption(o.Label, o.Price); err != nil {
			return err
		}
	}
	f.p.ShadeOptions = nil
	for _, label := range in.ShadeOptions {
		f.AddShadeOption(label)
	}
	f.p.FAQItems = nil
	for _, q := range in.FAQItems {
		f.AddFAQ(q.Question, q.Answer)
	}
	f.p.RelatedProductIDs = nil
	for _, id := range in.RelatedProductIDs {
		f.AddRelated(id)
	}
	return nil
}
