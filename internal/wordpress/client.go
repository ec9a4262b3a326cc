// Package wordpress reads posts and categories from a WordPress REST API.
// Every call degrades to an empty result when the API is unreachable.
package wordpress

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	applog "emytrends/internal/log"
)

const (
	DefaultPerPage = 10
	categoriesPage = 100
)

type Rendered struct {
	Rendered  string `json:"rendered"`
	Protected bool   `json:"protected,omitempty"`
}

type Media struct {
	SourceURL string `json:"source_url"`
	AltText   string `json:"alt_text"`
}

type Term struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Embedded struct {
	FeaturedMedia []Media  `json:"wp:featuredmedia,omitempty"`
	Terms         [][]Term `json:"wp:term,omitempty"`
}

type Post struct {
	ID            int       `json:"id"`
	Date          string    `json:"date"`
	Modified      string    `json:"modified"`
	Slug          string    `json:"slug"`
	Status        string    `json:"status"`
	Type          string    `json:"type"`
	Link          string    `json:"link"`
	Title         Rendered  `json:"title"`
	Content       Rendered  `json:"content"`
	Excerpt       Rendered  `json:"excerpt"`
	Author        int       `json:"author"`
	FeaturedMedia int       `json:"featured_media"`
	Categories    []int     `json:"categories"`
	Tags          []int     `json:"tags"`
	Embedded      *Embedded `json:"_embedded,omitempty"`
}

type Category struct {
	ID          int    `json:"id"`
	Count       int    `json:"count"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Parent      int    `json:"parent"`
}

type Client struct {
	base    string
	timeout time.Duration
}

// New returns a client for the API rooted at base, e.g.
// "https://example.com/wp-json/wp/v2" or
// "https://example.com/index.php?rest_route=/wp/v2".
func New(base string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{base: strings.TrimRight(base, "/"), timeout: timeout}
}

// endpoint joins resource and query onto the base. A base that already
// carries a query string (rest_route style) takes the query after "&".
// embed adds the bare _embed flag WordPress expects.
func (c *Client) endpoint(resource string, embed bool, query url.Values) string {
	u := c.base + "/" + strings.TrimLeft(resource, "/")
	var parts []string
	if embed {
		parts = append(parts, "_embed")
	}
	if enc := query.Encode(); enc != "" {
		parts = append(parts, enc)
	}
	if len(parts) == 0 {
		return u
	}
	sep := "?"
	if strings.Contains(c.base, "?") {
		sep = "&"
	}
	return u + sep + strings.Join(parts, "&")
}

func (c *Client) get(ctx context.Context, target string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	timeout := c.timeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < timeout {
			timeout = left
		}
	}
	a := fiber.Get(target).Timeout(timeout)
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return errors.Wrapf(errs[0], "GET %s", target)
	}
	if code < 200 || code > 299 {
		return errors.Errorf("GET %s: status %d", target, code)
	}
	return errors.Wrapf(json.Unmarshal(body, v), "decode %s", target)
}

// Categories lists up to 100 categories.
func (c *Client) Categories(ctx context.Context) []Category {
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(categoriesPage))
	var out []Category
	if err := c.get(ctx, c.endpoint("categories", false, q), &out); err != nil {
		applog.L().Error("wordpress.categories", zap.Error(err))
		return []Category{}
	}
	return out
}

// Posts lists the newest perPage posts with embedded media and terms. An
// unknown categorySlug is ignored rather than matching nothing.
func (c *Client) Posts(ctx context.Context, categorySlug string, perPage int) []Post {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(perPage))
	if categorySlug != "" {
		for _, cat := range c.Categories(ctx) {
			if cat.Slug == categorySlug {
				q.Set("categories", strconv.Itoa(cat.ID))
				break
			}
		}
	}
	var out []Post
	if err := c.get(ctx, c.endpoint("posts", true, q), &out); err != nil {
		applog.L().Error("wordpress.posts", zap.Error(err), zap.String("category", categorySlug))
		return []Post{}
	}
	return out
}

// PostBySlug returns the first post with slug, or nil.
func (c *Client) PostBySlug(ctx context.Context, slug string) *Post {
	q := url.Values{}
	q.Set("slug", slug)
	var out []Post
	if err := c.get(ctx, c.endpoint("posts", true, q), &out); err != nil {
		applog.L().Error("wordpress.post", zap.Error(err), zap.String("slug", slug))
		return nil
	}
	if len(out) == 0 {
		return nil
	}
	return &out[0]
}
