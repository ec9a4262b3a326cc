package handlers_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emytrends/internal/domain"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < 8; i++ {
		img.Set(i, i, color.RGBA{120, 60, 20, 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// multipartBody encodes data as the "data" field and each file under its
// field name.
func multipartBody(t *testing.T, data any, files map[string][]string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, w.WriteField("data", string(raw)))
	for field, names := range files {
		for _, name := range names {
			fw, err := w.CreateFormFile(field, name)
			require.NoError(t, err)
			_, err = fw.Write(content)
			require.NoError(t, err)
		}
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestAdminProductLifecycle(t *testing.T) {
	ta := newTestApp(t)
	admin := ta.client(t)
	admin.login("admin@emytrends.test")

	input := map[string]any{
		"title":             "Body Wave Clip-In",
		"description":       "Soft waves in seven wefts.",
		"price":             "159.99",
		"category":          "Clip-Ins",
		"hairExtensionType": "Classic Weft",
		"shades":            []string{"Brown"},
		"lengths":           []string{`18"`},
		"colorSwatches":     []map[string]string{{"color": "#8B4513"}},
		"lengthOptions":     []map[string]string{{"label": `18"`}, {"label": `22"`, "price": "189.99"}},
	}
	body, ct := multipartBody(t, input, map[string][]string{"images": {"front.png", "back.png"}}, pngBytes(t))
	var resp *http.Response
	entries := captureLogs(t, func() {
		resp = admin.do(http.MethodPost, "/admin/api/products", body, ct)
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, readBody(t, resp))
	var p domain.Product
	decode(t, resp, &p)
	require.Len(t, p.Images, 2)
	assert.True(t, strings.HasPrefix(p.Images[0], "/media/products/"+p.ID+"/"), p.Images[0])
	require.Len(t, p.ColorSwatches, 1)
	assert.NotEmpty(t, p.ColorSwatches[0].Name, "swatch name resolved from the color")
	e, ok := findLog(entries, "admin.products.save")
	require.True(t, ok)
	assert.EqualValues(t, 2, e.Fields["uploads"])

	img := admin.get(p.Images[0])
	require.Equal(t, http.StatusOK, img.StatusCode)
	assert.Equal(t, "image/png", img.Header.Get("Content-Type"))

	// Keep only the second image and rename.
	input["title"] = "Body Wave Clip-In Set"
	input["images"] = []string{p.Images[1]}
	body, ct = multipartBody(t, input, nil, nil)
	resp = admin.do(http.MethodPut, "/admin/api/products/"+p.ID, body, ct)
	require.Equal(t, http.StatusOK, resp.StatusCode, readBody(t, resp))
	var updated domain.Product
	decode(t, resp, &updated)
	assert.Equal(t, "Body Wave Clip-In Set", updated.Title)
	assert.Equal(t, []string{p.Images[1]}, updated.Images)
	assert.Equal(t, http.StatusNotFound, admin.get(p.Images[0]).StatusCode, "dropped image removed")

	resp = admin.do(http.MethodDelete, "/admin/api/products/"+p.ID, nil, "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, http.StatusNotFound, admin.get("/api/v1/products/"+p.ID).StatusCode)
	assert.Equal(t, http.StatusNotFound, admin.get(p.Images[1]).StatusCode)
}

func TestAdminProductValidation(t *testing.T) {
	ta := newTestApp(t)
	admin := ta.client(t)
	admin.login("admin@emytrends.test")

	body, ct := multipartBody(t, map[string]any{"title": "", "price": "10", "category": "Hats"}, nil, nil)
	resp := admin.do(http.MethodPost, "/admin/api/products", body, ct)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var out struct {
		Fields map[string]string `json:"fields"`
	}
	decode(t, resp, &out)
	assert.Contains(t, out.Fields, "title")
	assert.Contains(t, out.Fields, "category")

	swatches := make([]map[string]string, domain.MaxColorSwatches+1)
	for i := range swatches {
		swatches[i] = map[string]string{"color": "#000000", "name": "Black"}
	}
	body, ct = multipartBody(t, map[string]any{
		"title": "X", "description": "Y", "price": "10", "category": "Clip-Ins", "colorSwatches": swatches,
	}, nil, nil)
	resp = admin.do(http.MethodPost, "/admin/api/products", body, ct)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var all productList
	decode(t, admin.get("/api/v1/products"), &all)
	assert.Equal(t, 6, all.Count, "failed saves must not create products")
}

func TestAdminBlogDraftsStayPrivate(t *testing.T) {
	ta := newTestApp(t)
	admin := ta.client(t)
	admin.login("admin@emytrends.test")

	body, ct := multipartBody(t, map[string]any{
		"title": "Summer Styles", "content": "Braids and waves.", "excerpt": "Hot looks",
		"author": "Emy", "category": "Style Guide", "tags": []string{"summer"}, "published": false,
	}, map[string][]string{"featuredImage": {"cover.png"}}, pngBytes(t))
	resp := admin.do(http.MethodPost, "/admin/api/blogs", body, ct)
	require.Equal(t, http.StatusCreated, resp.StatusCode, readBody(t, resp))
	var b domain.BlogPost
	decode(t, resp, &b)
	assert.True(t, strings.HasPrefix(b.FeaturedImage, "/media/blogs/"+b.ID+"/"), b.FeaturedImage)

	shopper := ta.client(t)
	assert.Equal(t, http.StatusNotFound, shopper.get("/api/v1/blogs/"+b.ID).StatusCode)
	assert.Equal(t, http.StatusOK, admin.get("/admin/api/blogs/"+b.ID).StatusCode)

	var list struct {
		Posts []domain.BlogPost `json:"posts"`
	}
	decode(t, admin.get("/admin/api/blogs"), &list)
	assert.Len(t, list.Posts, 2)

	resp = admin.do(http.MethodDelete, "/admin/api/blogs/"+b.ID, nil, "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, http.StatusNotFound, admin.get(b.FeaturedImage).StatusCode)
}
