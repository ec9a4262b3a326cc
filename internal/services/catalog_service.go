package services

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"emytrends/internal/catalog"
	"emytrends/internal/domain"
	"emytrends/internal/forms"
	"emytrends/internal/imaging"
	applog "emytrends/internal/log"
	"emytrends/internal/repos"
)

type CatalogService struct {
	Prods *repos.ProductRepo
	Media *MediaService
}

func NewCatalogService(prods *repos.ProductRepo, media *MediaService) *CatalogService {
	return &CatalogService{Prods: prods, Media: media}
}

// Query narrows a product listing. Zero values impose nothing.
type Query struct {
	Category string
	Featured bool
	catalog.Selection
}

// Products lists the catalog newest first. A backend failure is logged and
// reads as an empty catalog.
func (s *CatalogService) Products(ctx context.Context, q Query) []domain.Product {
	var (
		out []domain.Product
		err error
	)
	switch {
	case q.Featured:
		out, err = s.Prods.Featured(ctx)
	case q.Category != "":
		out, err = s.Prods.ByCategory(ctx, q.Category)
	default:
		out, err = s.Prods.All(ctx)
	}
	if err != nil {
		applog.L().Error("catalog.list", zap.Error(err), zap.String("category", q.Category))
		return []domain.Product{}
	}
	if q.Featured && q.Category != "" {
		kept := out[:0]
		for _, p := range out {
			if p.Category == q.Category {
				kept = append(kept, p)
			}
		}
		out = kept
	}
	return catalog.Filter(out, q.Selection)
}

func (s *CatalogService) Product(ctx context.Context, id string) (domain.Product, error) {
	return s.Prods.Get(ctx, id)
}

// Related resolves p's related ids, skipping ones that no longer exist.
func (s *CatalogService) Related(ctx context.Context, p domain.Product) []domain.Product {
	if len(p.RelatedProductIDs) == 0 {
		return []domain.Product{}
	}
	out, err := s.Prods.ByIDs(ctx, p.RelatedProductIDs)
	if err != nil {
		applog.L().Error("catalog.related", zap.Error(err), zap.String("product_id", p.ID))
		return []domain.Product{}
	}
	return out
}

type SearchResult struct {
	Products []domain.Product `json:"products"`
	Pages    []catalog.Page   `json:"pages"`
}

func (s *CatalogService) Search(ctx context.Context, q string) SearchResult {
	return SearchResult{
		Products: catalog.SearchProducts(s.Products(ctx, Query{}), q),
		Pages:    catalog.SearchPages(q),
	}
}

type Facets struct {
	Categories         []string `json:"categories"`
	HairExtensionTypes []string `json:"hairExtensionTypes"`
	Shades             []string `json:"shades"`
	Lengths            []string `json:"lengths"`
}

func (s *CatalogService) Facets() Facets {
	return Facets{
		Categories:         domain.Categories,
		HairExtensionTypes: domain.HairExtensionTypes,
		Shades:             domain.Shades,
		Lengths:            domain.Lengths,
	}
}

// Save creates (id == "") or replaces a product from an editor submission.
// New files are compressed and uploaded before the single write; images the
// operator dropped are removed from the store afterwards.
func (s *CatalogService) Save(ctx context.Context, id string, in forms.ProductInput, files []imaging.File) (domain.Product, error) {
	var form *forms.ProductForm
	if id == "" {
		form = forms.NewProductForm(nil)
		form.SetID(s.Prods.NextID())
	} else {
		cur, err := s.Prods.Get(ctx, id)
		if err != nil {
			return domain.Product{}, err
		}
		form = forms.NewProductForm(&cur)
	}
	if err := form.Apply(in); err != nil {
		return domain.Product{}, err
	}
	if err := form.Validate(); err != nil {
		return domain.Product{}, err
	}

	urls, err := s.Media.UploadAll(ctx, "products/"+form.ID(), files)
	if err != nil {
		return domain.Product{}, errors.Wrap(err, "upload product images")
	}
	form.AppendImages(urls...)
	p := form.Product()

	if id == "" {
		_, err = s.Prods.Create(ctx, p)
	} else {
		err = s.Prods.Update(ctx, id, p)
	}
	if err != nil {
		s.Media.DeleteAll(context.WithoutCancel(ctx), urls)
		return domain.Product{}, err
	}
	s.Media.DeleteAll(ctx, form.DroppedImages())
	return s.Prods.Get(ctx, p.ID)
}

// Delete removes the product and then its images.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	p, err := s.Prods.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Prods.Delete(ctx, id); err != nil {
		return err
	}
	s.Media.DeleteAll(ctx, p.Images)
	return nil
}
