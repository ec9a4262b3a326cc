// Package forms builds Product and BlogPost records from admin edits.
package forms

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"emytrends/internal/colorname"
	"emytrends/internal/domain"
)

var ErrTooManySwatches = errors.Errorf("a product can have at most %d color swatches", domain.MaxColorSwatches)

var reSpaces = regexp.MustCompile(`\s+`)

// ProductForm is the editable state behind the admin product editor. The
// list builders mirror the editor buttons; Apply replays a whole submission.
type ProductForm struct {
	p       domain.Product
	current []string
	newID   func() string
}

// NewProductForm starts from existing, or from an empty in-stock product.
func NewProductForm(existing *domain.Product) *ProductForm {
	f := &ProductForm{newID: uuid.NewString}
	if existing != nil {
		f.p = clone(*existing)
		f.current = append([]string(nil), existing.Images...)
	} else {
		f.p.InStock = true
	}
	return f
}

// SetID fixes the record id ahead of the first save so uploads can be keyed
// by it.
func (f *ProductForm) SetID(id string) { f.p.ID = id }

func (f *ProductForm) ID() string { return f.p.ID }

func (f *ProductForm) WithIDs(gen func() string) *ProductForm {
	f.newID = gen
	return f
}

// AddColor appends a legacy hex color once.
func (f *ProductForm) AddColor(hex string) {
	hex = strings.TrimSpace(hex)
	if hex == "" || domain.Contains(f.p.Colors, hex) {
		return
	}
	f.p.Colors = append(f.p.Colors, hex)
}

func (f *ProductForm) RemoveColor(hex string) {
	f.p.Colors = without(f.p.Colors, hex)
}

func (f *ProductForm) ToggleShade(v string)  { f.p.Shades = toggle(f.p.Shades, v) }
func (f *ProductForm) ToggleLength(v string) { f.p.Lengths = toggle(f.p.Lengths, v) }

// AddLengthOption appends a length choice. An empty price means the product
// price applies.
func (f *ProductForm) AddLengthOption(label, price string) (domain.LengthOption, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return domain.LengthOption{}, Errors{"lengthOptions": "label is required"}
	}
	o := domain.LengthOption{ID: f.newID(), Label: label}
	if price = strings.TrimSpace(price); price != "" {
		d, err := decimal.NewFromString(price)
		if err != nil || d.IsNegative() {
			return domain.LengthOption{}, Errors{"lengthOptions": "price must be a non-negative number"}
		}
		o.Price = &d
	}
	f.p.LengthOptions = append(f.p.LengthOptions, o)
	return o, nil
}

func (f *ProductForm) RemoveLengthOption(id string) {
	out := f.p.LengthOptions[:0]
	for _, o := range f.p.LengthOptions {
		if o.ID != id {
			out = append(out, o)
		}
	}
	f.p.LengthOptions = out
}

// AddColorSwatch appends a swatch. A blank name is filled with the closest
// named color. The eighth swatch is refused and the list is left as is.
func (f *ProductForm) AddColorSwatch(hex, name string) (domain.ColorSwatch, error) {
	hex = strings.TrimSpace(hex)
	if hex == "" {
		return domain.ColorSwatch{}, Errors{"colorSwatches": "color is required"}
	}
	if len(f.p.ColorSwatches) >= domain.MaxColorSwatches {
		return domain.ColorSwatch{}, ErrTooManySwatches
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = colorname.Closest(hex)
	}
	s := domain.ColorSwatch{ID: f.newID(), Color: hex, Name: name}
	f.p.ColorSwatches = append(f.p.ColorSwatches, s)
	return s, nil
}

func (f *ProductForm) RemoveColorSwatch(id string) {
	out := f.p.ColorSwatches[:0]
	for _, s := range f.p.ColorSwatches {
		if s.ID != id {
			out = append(out, s)
		}
	}
	f.p.ColorSwatches = out
}

// ShadeID derives the option id from its label: lower case, whitespace runs
// become "-".
func ShadeID(label string) string {
	return reSpaces.ReplaceAllString(strings.ToLower(strings.TrimSpace(label)), "-")
}

func (f *ProductForm) AddShadeOption(label string) (domain.ShadeOption, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return domain.ShadeOption{}, false
	}
	o := domain.ShadeOption{ID: ShadeID(label), Label: label}
	f.p.ShadeOptions = append(f.p.ShadeOptions, o)
	return o, true
}

func (f *ProductForm) RemoveShadeOption(id string) {
	out := f.p.ShadeOptions[:0]
	for _, o := range f.p.ShadeOptions {
		if o.ID != id {
			out = append(out, o)
		}
	}
	f.p.ShadeOptions = out
}

// AddFAQ needs a question; the answer may be blank.
func (f *ProductForm) AddFAQ(question, answer string) bool {
	question = strings.TrimSpace(question)
	if question == "" {
		return false
	}
	f.p.FAQItems = append(f.p.FAQItems, domain.FAQItem{Question: question, Answer: strings.TrimSpace(answer)})
	return true
}

func (f *ProductForm) RemoveFAQ(index int) {
	if index < 0 || index >= len(f.p.FAQItems) {
		return
	}
	f.p.FAQItems = append(f.p.FAQItems[:index], f.p.FAQItems[index+1:]...)
}

func (f *ProductForm) AddRelated(id string) {
	id = strings.TrimSpace(id)
	if id == "" || id == f.p.ID || domain.Contains(f.p.RelatedProductIDs, id) {
		return
	}
	f.p.RelatedProductIDs = append(f.p.RelatedProductIDs, id)
}

func (f *ProductForm) RemoveRelated(id string) {
	f.p.RelatedProductIDs = without(f.p.RelatedProductIDs, id)
}

// RemoveImage drops the retained image at index.
func (f *ProductForm) RemoveImage(index int) {
	if index < 0 || index >= len(f.p.Images) {
		return
	}
	f.p.Images = append(f.p.Images[:index], f.p.Images[index+1:]...)
}

// AppendImages adds freshly uploaded URLs after the retained ones.
func (f *ProductForm) AppendImages(urls ...string) {
	f.p.Images = append(f.p.Images, urls...)
}

// DroppedImages lists images the record had on load that are no longer kept.
func (f *ProductForm) DroppedImages() []string {
	var out []string
	for _, u := range f.current {
		if !domain.Contains(f.p.Images, u) {
			out = append(out, u)
		}
	}
	return out
}

func (f *ProductForm) Validate() error {
	errs := Errors{}
	if strings.TrimSpace(f.p.Title) == "" {
		errs["title"] = "title is required"
	}
	if strings.TrimSpace(f.p.Description) == "" {
		errs["description"] = "description is required"
	}
	if f.p.Price.IsNegative() {
		errs["price"] = "price must not be negative"
	}
	if !domain.Contains(domain.Categories, f.p.Category) {
		errs["category"] = "choose one of the listed categories"
	}
	if f.p.HairExtensionType != "" && !domain.Contains(domain.HairExtensionTypes, f.p.HairExtensionType) {
		errs["hairExtensionType"] = "unknown extension type"
	}
	for _, s := range f.p.Shades {
		if !domain.Contains(domain.Shades, s) {
			errs["shades"] = "unknown shade " + s
		}
	}
	for _, l := range f.p.Lengths {
		if !domain.Contains(domain.Lengths, l) {
			errs["lengths"] = "unknown length " + l
		}
	}
	if len(f.p.ColorSwatches) > domain.MaxColorSwatches {
		errs["colorSwatches"] = ErrTooManySwatches.Error()
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Product returns the edited record with nil lists normalised to empty ones.
func (f *ProductForm) Product() domain.Product {
	p := f.p
	p.Images = nonNil(p.Images)
	p.Colors = nonNil(p.Colors)
	p.Shades = nonNil(p.Shades)
	p.Lengths = nonNil(p.Lengths)
	p.RelatedProductIDs = nonNil(p.RelatedProductIDs)
	if p.ColorSwatches == nil {
		p.ColorSwatches = []domain.ColorSwatch{}
	}
	if p.LengthOptions == nil {
		p.LengthOptions = []domain.LengthOption{}
	}
	if p.ShadeOptions == nil {
		p.ShadeOptions = []domain.ShadeOption{}
	}
	if p.FAQItems == nil {
		p.FAQItems = []domain.FAQItem{}
	}
	return p
}

func clone(p domain.Product) domain.Product {
	p.Images = append([]string(nil), p.Images...)
	p.Colors = append([]string(nil), p.Colors...)
	p.Shades = append([]string(nil), p.Shades...)
	p.Lengths = append([]string(nil), p.Lengths...)
	p.RelatedProductIDs = append([]string(nil), p.RelatedProductIDs...)
	p.ColorSwatches = append([]domain.ColorSwatch(nil), p.ColorSwatches...)
	p.LengthOptions = append([]domain.LengthOption(nil), p.LengthOptions...)
	p.ShadeOptions = append([]domain.ShadeOption(nil), p.ShadeOptions...)
	p.FAQItems = append([]domain.FAQItem(nil), p.FAQItems...)
	return p
}

func toggle(set []string, v string) []string {
	if domain.Contains(set, v) {
		return without(set, v)
	}
	return append(set, v)
}

func without(set []string, v string) []string {
	out := make([]string, 0, len(set))
	for _, s := range set {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
