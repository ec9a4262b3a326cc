package services

import (
	"context"
	"path"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"emytrends/internal/imaging"
	applog "emytrends/internal/log"
	"emytrends/internal/storage"
)

// MediaService compresses uploads and puts them in the object store.
type MediaService struct {
	Store *storage.LocalStore
	Opts  imaging.Options
}

func NewMediaService(store *storage.LocalStore, opts imaging.Options) *MediaService {
	return &MediaService{Store: store, Opts: opts}
}

func objectName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return '-'
	}, name)
	if name == "" || name == "." || name == "/" {
		return "upload"
	}
	return name
}

// UploadAll compresses files and stores them under owner concurrently. URLs
// come back in input order. If any upload fails the ones that made it are
// removed again and no URLs are returned.
func (s *MediaService) UploadAll(ctx context.Context, owner string, files []imaging.File) ([]string, error) {
	if len(files) == 0 {
		return []string{}, nil
	}
	compressed, err := imaging.CompressAll(ctx, files, s.Opts)
	if err != nil {
		return nil, err
	}

	stampMS := strconv.FormatInt(now().UnixMilli(), 10)
	urls := make([]string, len(compressed))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range compressed {
		key := path.Join(owner, stampMS+"-"+strconv.Itoa(i)+"-"+objectName(f.Name))
		g.Go(func() error {
			u, err := s.Store.Put(gctx, key, f.Data)
			if err != nil {
				return err
			}
			urls[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var stored []string
		for _, u := range urls {
			if u != "" {
				stored = append(stored, u)
			}
		}
		s.DeleteAll(context.WithoutCancel(ctx), stored)
		return nil, err
	}
	return urls, nil
}

// DeleteAll removes urls from the store. Failures are logged, not returned.
func (s *MediaService) DeleteAll(ctx context.Context, urls []string) {
	for _, u := range urls {
		if err := s.Store.Delete(ctx, u); err != nil {
			applog.L().Warn("media.delete", zap.String("url", u), zap.Error(err))
		}
	}
}
