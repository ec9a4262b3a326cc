package forms

import (
	"strings"

	"emytrends/internal/domain"
)

type BlogInput struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Excerpt       string   `json:"excerpt"`
	Author        string   `json:"author"`
	Category      string   `json:"category"`
	FeaturedImage string   `json:"featuredImage"`
	Images        []string `json:"images"`
	Tags          []string `json:"tags"`
	Published     bool     `json:"published"`
}

type BlogForm struct {
	b       domain.BlogPost
	current []string
}

func NewBlogForm(existing *domain.BlogPost) *BlogForm {
	f := &BlogForm{}
	if existing != nil {
		f.b = *existing
		f.b.Images = append([]string(nil), existing.Images...)
		f.b.Tags = append([]string(nil), existing.Tags...)
		f.current = append([]string(nil), existing.Images...)
		if existing.FeaturedImage != "" {
			f.current = append(f.current, existing.FeaturedImage)
		}
	}
	return f
}

func (f *BlogForm) SetID(id string) { f.b.ID = id }

func (f *BlogForm) ID() string { return f.b.ID }

func (f *BlogForm) AddTag(tag string) {
	tag = strings.TrimSpace(tag)
	if tag == "" || domain.Contains(f.b.Tags, tag) {
		return
	}
	f.b.Tags = append(f.b.Tags, tag)
}

func (f *BlogForm) RemoveTag(tag string) { f.b.Tags = without(f.b.Tags, tag) }

func (f *BlogForm) RemoveImage(index int) {
	if index < 0 || index >= len(f.b.Images) {
		return
	}
	f.b.Images = append(f.b.Images[:index], f.b.Images[index+1:]...)
}

func (f *BlogForm) AppendImages(urls ...string) { f.b.Images = append(f.b.Images, urls...) }

func (f *BlogForm) SetFeaturedImage(url string) { f.b.FeaturedImage = url }

func (f *BlogForm) Apply(in BlogInput) {
	f.b.Title = strings.TrimSpace(in.Title)
	f.b.Content = strings.TrimSpace(in.Content)
	f.b.Excerpt = strings.TrimSpace(in.Excerpt)
	f.b.Author = strings.TrimSpace(in.Author)
	f.b.Category = strings.TrimSpace(in.Category)
	f.b.Published = in.Published

	f.b.FeaturedImage = ""
	if in.FeaturedImage != "" && domain.Contains(f.current, in.FeaturedImage) {
		f.b.FeaturedImage = in.FeaturedImage
	}
	f.b.Images = nil
	for _, u := range in.Images {
		if domain.Contains(f.current, u) && !domain.Contains(f.b.Images, u) {
			f.b.Images = append(f.b.Images, u)
		}
	}
	f.b.Tags = nil
	for _, t := range in.Tags {
		f.AddTag(t)
	}
}

// DroppedImages lists stored images the post no longer references.
func (f *BlogForm) DroppedImages() []string {
	var out []string
	for _, u := range f.current {
		if u != f.b.FeaturedImage && !domain.Contains(f.b.Images, u) {
			out = append(out, u)
		}
	}
	return out
}

func (f *BlogForm) Validate() error {
	errs := Errors{}
	for field, v := range map[string]string{
		"title":    f.b.Title,
		"content":  f.b.Content,
		"excerpt":  f.b.Excerpt,
		"author":   f.b.Author,
		"category": f.b.Category,
	} {
		if v == "" {
			errs[field] = field + " is required"
		}
	}
	if f.b.Category != "" && !domain.Contains(domain.BlogCategories, f.b.Category) {
		errs["category"] = "choose one of the listed categories"
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (f *BlogForm) Post() domain.BlogPost {
	b := f.b
	b.Images = nonNil(b.Images)
	b.Tags = nonNil(b.Tags)
	return b
}
