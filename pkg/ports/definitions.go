package ports

import (
	"context"

	"github.com/wadjakorntonsri/seo-redirects/pkg/core/domain"
)

// RedirectRepository persists the slug -> record mapping.
//
// Get returns (nil, nil) for an unknown slug. Storage failures are always
// returned as errors; callers decide whether to degrade.
type RedirectRepository interface {
	Get(ctx context.Context, slug string) (*domain.Redirect, error)
	GetAll(ctx context.Context) (map[string]domain.Redirect, error)
	Save(ctx context.Context, slug string, redirect domain.Redirect) error // Upsert
	Delete(ctx context.Context, slug string) (bool, error)
	Close() error
}

// RedirectService defines the business logic operations
type RedirectService interface {
	Save(ctx context.Context, input domain.RedirectInput) (*domain.SaveResult, error)
	Get(ctx context.Context, slug string) *domain.Redirect
	List(ctx context.Context) map[string]domain.Redirect
	Delete(ctx context.Context, slug string) error
	Search(ctx context.Context, query domain.SearchQuery) []domain.Entry

	ShortURL(slug string) string
	LongURL(redirect domain.Redirect) string
	Sitemap(ctx context.Context) []byte
}
