// Package catalog filters and searches an already loaded product list.
package catalog

import (
	"strings"

	"emytrends/internal/domain"
)

// Selection holds the active facet values per group. An empty group imposes
// no constraint; values within a group are OR-ed and groups are AND-ed.
type Selection struct {
	Product        []string `json:"product"`
	HairExtensions []string `json:"hairExtensions"`
	Shade          []string `json:"shade"`
	Length         []string `json:"length"`
}

func (s Selection) Empty() bool {
	return len(s.Product) == 0 && len(s.HairExtensions) == 0 && len(s.Shade) == 0 && len(s.Length) == 0
}

// Toggle flips v in group ("product", "hairExtensions", "shade", "length").
// Unknown groups are ignored.
func (s *Selection) Toggle(group, v string) {
	var g *[]string
	switch group {
	case "product":
		g = &s.Product
	case "hairExtensions":
		g = &s.HairExtensions
	case "shade":
		g = &s.Shade
	case "length":
		g = &s.Length
	default:
		return
	}
	for i, x := range *g {
		if x == v {
			*g = append((*g)[:i], (*g)[i+1:]...)
			return
		}
	}
	*g = append(*g, v)
}

// Matches reports whether p passes every active group.
func (s Selection) Matches(p domain.Product) bool {
	if len(s.Product) > 0 && !domain.Contains(s.Product, p.Category) {
		return false
	}
	if len(s.HairExtensions) > 0 && !domain.Contains(s.HairExtensions, p.HairExtensionType) {
		return false
	}
	if len(s.Shade) > 0 && !intersects(s.Shade, p.Shades) {
		return false
	}
	if len(s.Length) > 0 && !intersects(s.Length, p.Lengths) {
		return false
	}
	return true
}

// Filter keeps the products matching sel, preserving order.
func Filter(products []domain.Product, sel Selection) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if sel.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

func intersects(want, have []string) bool {
	for _, h := range have {
		if domain.Contains(want, h) {
			return true
		}
	}
	return false
}

// ParseList splits a comma separated query value, dropping blanks.
func ParseList(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
