package services

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"emytrends/internal/domain"
	"emytrends/internal/forms"
	"emytrends/internal/imaging"
	applog "emytrends/internal/log"
	"emytrends/internal/repos"
	"emytrends/internal/wordpress"
)

// BlogService serves the in-house blog and the external article feed.
type BlogService struct {
	Blogs *repos.BlogRepo
	Media *MediaService
	WP    *wordpress.Client
}

func NewBlogService(blogs *repos.BlogRepo, media *MediaService, wp *wordpress.Client) *BlogService {
	return &BlogService{Blogs: blogs, Media: media, WP: wp}
}

// Published lists public posts; a read failure yields none.
func (s *BlogService) Published(ctx context.Context) []domain.BlogPost {
	out, err := s.Blogs.Published(ctx)
	if err != nil {
		applog.L().Error("blog.list", zap.Error(err))
		return []domain.BlogPost{}
	}
	return out
}

func (s *BlogService) All(ctx context.Context) ([]domain.BlogPost, error) {
	return s.Blogs.All(ctx)
}

// Get hides drafts unless includeDrafts is set.
func (s *BlogService) Get(ctx context.Context, id string, includeDrafts bool) (domain.BlogPost, error) {
	b, err := s.Blogs.Get(ctx, id)
	if err != nil {
		return domain.BlogPost{}, err
	}
	if !b.Published && !includeDrafts {
		return domain.BlogPost{}, repos.ErrBlogNotFound
	}
	return b, nil
}

// Save creates (id == "") or replaces a post. featured, when set, becomes
// the featured image; files are appended to the gallery.
func (s *BlogService) Save(ctx context.Context, id string, in forms.BlogInput, featured *imaging.File, files []imaging.File) (domain.BlogPost, error) {
	var form *forms.BlogForm
	if id == "" {
		form = forms.NewBlogForm(nil)
		form.SetID(s.Blogs.NextID())
	} else {
		cur, err := s.Blogs.Get(ctx, id)
		if err != nil {
			return domain.BlogPost{}, err
		}
		form = forms.NewBlogForm(&cur)
	}
	form.Apply(in)
	if err := form.Validate(); err != nil {
		return domain.BlogPost{}, err
	}

	batch := files
	if featured != nil {
		batch = append([]imaging.File{*featured}, files...)
	}
	urls, err := s.Media.UploadAll(ctx, "blogs/"+form.ID(), batch)
	if err != nil {
		return domain.BlogPost{}, errors.Wrap(err, "upload blog images")
	}
	gallery := urls
	if featured != nil {
		form.SetFeaturedImage(urls[0])
		gallery = urls[1:]
	}
	form.AppendImages(gallery...)
	b := form.Post()

	if id == "" {
		_, err = s.Blogs.Create(ctx, b)
	} else {
		err = s.Blogs.Update(ctx, id, b)
	}
	if err != nil {
		s.Media.DeleteAll(context.WithoutCancel(ctx), urls)
		return domain.BlogPost{}, err
	}
	s.Media.DeleteAll(ctx, form.DroppedImages())
	return s.Blogs.Get(ctx, b.ID)
}

func (s *BlogService) Delete(ctx context.Context, id string) error {
	b, err := s.Blogs.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Blogs.Delete(ctx, id); err != nil {
		return err
	}
	urls := b.Images
	if b.FeaturedImage != "" {
		urls = append(urls, b.FeaturedImage)
	}
	s.Media.DeleteAll(ctx, urls)
	return nil
}

func (s *BlogService) Articles(ctx context.Context, categorySlug string, perPage int) []wordpress.Article {
	return wordpress.Articles(s.WP.Posts(ctx, categorySlug, perPage))
}

func (s *BlogService) Article(ctx context.Context, slug string) (wordpress.Article, bool) {
	p := s.WP.PostBySlug(ctx, slug)
	if p == nil {
		return wordpress.Article{}, false
	}
	return wordpress.NewArticle(*p), true
}

func (s *BlogService) ArticleCategories(ctx context.Context) []wordpress.Category {
	return s.WP.Categories(ctx)
}
