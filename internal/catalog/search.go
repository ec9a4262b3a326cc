package catalog

import (
	"strings"

	"emytrends/internal/domain"
)

const MaxProductResults = 8

// SearchProducts does a case-insensitive substring match over title,
// description, category, extension type, shades and lengths. A blank query
// matches nothing.
func SearchProducts(products []domain.Product, q string) []domain.Product {
	q = strings.ToLower(strings.TrimSpace(q))
	out := []domain.Product{}
	if q == "" {
		return out
	}
	for _, p := range products {
		if len(out) == MaxProductResults {
			break
		}
		if productMatches(p, q) {
			out = append(out, p)
		}
	}
	return out
}

func productMatches(p domain.Product, q string) bool {
	for _, f := range []string{p.Title, p.Description, p.Category, p.HairExtensionType} {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	for _, set := range [][]string{p.Shades, p.Lengths} {
		for _, v := range set {
			if strings.Contains(strings.ToLower(v), q) {
				return true
			}
		}
	}
	return false
}

type Page struct {
	Title    string   `json:"title"`
	Path     string   `json:"path"`
	Keywords []string `json:"-"`
}

var StaticPages = []Page{
	{"Shop", "/shop", []string{"shop", "products", "buy", "store"}},
	{"All Products", "/shop/all", []string{"all", "products", "collection"}},
	{"Learn", "/learn", []string{"learn", "guide", "help", "tutorial"}},
	{"Choosing Your Length", "/learn/choosing-length", []string{"length", "size", "inches"}},
	{"Choosing Your Shade", "/learn/choosing-shade", []string{"shade", "color", "colour"}},
	{"Care Guide", "/learn/care-guide", []string{"care", "maintenance", "wash", "style"}},
	{"Our World", "/our-world", []string{"about", "world", "story", "brand"}},
	{"Blog", "/blog", []string{"blog", "articles", "news", "posts"}},
	{"Ponytails", "/ponytail", []string{"ponytail", "ponytails"}},
}

// SearchPages matches q against page titles and keywords. Keywords match
// when they contain q.
func SearchPages(q string) []Page {
	q = strings.ToLower(strings.TrimSpace(q))
	out := []Page{}
	if q == "" {
		return out
	}
	for _, pg := range StaticPages {
		if strings.Contains(strings.ToLower(pg.Title), q) {
			out = append(out, pg)
			continue
		}
		for _, k := range pg.Keywords {
			if strings.Contains(k, q) {
				out = append(out, pg)
				break
			}
		}
	}
	return out
}
