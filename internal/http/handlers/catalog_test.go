package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emytrends/internal/domain"
	"emytrends/internal/services"
)

type productList struct {
	Products []domain.Product `json:"products"`
	Count    int              `json:"count"`
}

func ids(ps []domain.Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestProductListFilters(t *testing.T) {
	ta := newTestApp(t)
	c := ta.client(t)

	var all productList
	decode(t, c.get("/api/v1/products"), &all)
	assert.Equal(t, 6, all.Count)

	cases := []struct {
		name  string
		query url.Values
		want  []string
	}{
		{"category", url.Values{"category": {"Tape-Ins"}}, []string{"silk-tape-in"}},
		{"featured", url.Values{"featured": {"true"}}, []string{"silk-tape-in", "sleek-ponytail"}},
		{"extension OR within group", url.Values{"hairExtensions": {"Classic Weft,Hand-Tied Weft"}}, []string{"hand-tied-weft", "classic-weft"}},
		{"groups AND together", url.Values{"shade": {"Brown"}, "length": {`22"`}}, []string{"silk-tape-in", "classic-weft"}},
		{"no match", url.Values{"shade": {"Red"}, "length": {`14"`}}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got productList
			resp := c.get("/api/v1/products?" + tc.query.Encode())
			require.Equal(t, http.StatusOK, resp.StatusCode)
			decode(t, resp, &got)
			assert.ElementsMatch(t, tc.want, ids(got.Products))
		})
	}

	resp := c.get("/api/v1/products?category=Wigs")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProductDetailWithRelated(t *testing.T) {
	ta := newTestApp(t)
	c := ta.client(t)

	var got struct {
		Product domain.Product   `json:"product"`
		Related []domain.Product `json:"related"`
	}
	resp := c.get("/api/v1/products/silk-tape-in")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &got)
	assert.Equal(t, "Silk Seamless Tape-In", got.Product.Title)
	assert.ElementsMatch(t, []string{"classic-weft", "hand-tied-weft"}, ids(got.Related))

	resp = c.get("/api/v1/products/gone-forever")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "This item is no longer available", body["error"])
}

func TestFacets(t *testing.T) {
	ta := newTestApp(t)
	c := ta.client(t)
	var f services.Facets
	decode(t, c.get("/api/v1/facets"), &f)
	if diff := cmp.Diff(domain.Categories, f.Categories); diff != "" {
		t.Errorf("categories (-want +got):\n%s", diff)
	}
	assert.Equal(t, domain.HairExtensionTypes, f.HairExtensionTypes)
}

func TestSearchProductsAndPages(t *testing.T) {
	ta := newTestApp(t)
	c := ta.client(t)

	var res services.SearchResult
	decode(t, c.get("/api/v1/search?q=ponytail"), &res)
	assert.Equal(t, []string{"sleek-ponytail"}, ids(res.Products))
	var paths []string
	for _, p := range res.Pages {
		paths = append(paths, p.Path)
	}
	assert.Contains(t, paths, "/ponytail")

	res = services.SearchResult{}
	resp := c.get("/api/v1/search?q=")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &res)
	assert.Empty(t, res.Products)
	assert.Empty(t, res.Pages)
}

func TestSettingsAndBlogsArePublic(t *testing.T) {
	ta := newTestApp(t)
	c := ta.client(t)

	var st domain.SiteSettings
	decode(t, c.get("/api/v1/settings"), &st)
	assert.Equal(t, domain.DefaultPromoText, st.PromoText)

	var posts struct {
		Posts []domain.BlogPost `json:"posts"`
	}
	decode(t, c.get("/api/v1/blogs"), &posts)
	require.Len(t, posts.Posts, 1)
	assert.Equal(t, "care-basics", posts.Posts[0].ID)

	resp := c.get("/api/v1/blogs/care-basics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The article reader degrades to nothing when WordPress is down.
	var arts struct {
		Count int `json:"count"`
	}
	resp = c.get("/api/v1/articles?category=hair-care&perPage=3")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &arts)
	assert.Zero(t, arts.Count)

	resp = c.get("/api/v1/articles/missing-post")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
