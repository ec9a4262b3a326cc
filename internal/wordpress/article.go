package wordpress

import (
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const dateLayout = "2006-01-02T15:04:05"

// Article is a post flattened for listing and reading pages.
type Article struct {
	ID            int       `json:"id"`
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Excerpt       string    `json:"excerpt"`
	ContentHTML   string    `json:"contentHtml"`
	Link          string    `json:"link"`
	Date          time.Time `json:"date"`
	FeaturedImage string    `json:"featuredImage,omitempty"`
	FeaturedAlt   string    `json:"featuredAlt,omitempty"`
	Categories    []string  `json:"categories"`
	Tags          []string  `json:"tags"`
}

// NewArticle pulls the featured media and term names out of _embedded.
// WordPress embeds categories as the first term group and tags as the
// second.
func NewArticle(p Post) Article {
	a := Article{
		ID:          p.ID,
		Slug:        p.Slug,
		Title:       Text(p.Title.Rendered),
		Excerpt:     Text(p.Excerpt.Rendered),
		ContentHTML: p.Content.Rendered,
		Link:        p.Link,
		Categories:  []string{},
		Tags:        []string{},
	}
	if t, err := time.Parse(dateLayout, p.Date); err == nil {
		a.Date = t
	}
	if p.Embedded == nil {
		return a
	}
	if len(p.Embedded.FeaturedMedia) > 0 {
		a.FeaturedImage = p.Embedded.FeaturedMedia[0].SourceURL
		a.FeaturedAlt = p.Embedded.FeaturedMedia[0].AltText
	}
	for i, group := range p.Embedded.Terms {
		for _, t := range group {
			switch i {
			case 0:
				a.Categories = append(a.Categories, t.Name)
			case 1:
				a.Tags = append(a.Tags, t.Name)
			}
		}
	}
	return a
}

func Articles(posts []Post) []Article {
	out := make([]Article, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewArticle(p))
	}
	return out
}

// Text flattens rendered HTML to plain text: tags dropped, entities decoded,
// whitespace collapsed. Script and style bodies are skipped.
func Text(rendered string) string {
	nodes, err := html.ParseFragment(strings.NewReader(rendered), &html.Node{
		Type: html.ElementNode, Data: "div", DataAtom: atom.Div,
	})
	if err != nil {
		return strings.Join(strings.Fields(rendered), " ")
	}
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.ElementNode:
			if n.DataAtom == atom.Script || n.DataAtom == atom.Style {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && block(n.DataAtom) {
			b.WriteByte(' ')
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func block(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Br, atom.Li, atom.H1, atom.H2, atom.H3, atom.H4, atom.Blockquote:
		return true
	}
	return false
}
