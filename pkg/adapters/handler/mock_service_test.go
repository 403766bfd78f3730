package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/wadjakorntonsri/seo-redirects/pkg/core/domain"
	"github.com/wadjakorntonsri/seo-redirects/pkg/ports"
)

type MockRedirectService struct {
	mock.Mock
}

var _ ports.RedirectService = (*MockRedirectService)(nil)

func (m *MockRedirectService) Save(ctx context.Context, input domain.RedirectInput) (*domain.SaveResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SaveResult), args.Error(1)
}

func (m *MockRedirectService) Get(ctx context.Context, slug string) *domain.Redirect {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.Redirect)
}

func (m *MockRedirectService) List(ctx context.Context) map[string]domain.Redirect {
	return m.Called(ctx).Get(0).(map[string]domain.Redirect)
}

func (m *MockRedirectService) Delete(ctx context.Context, slug string) error {
	return m.Called(ctx, slug).Error(0)
}

func (m *MockRedirectService) Search(ctx context.Context, query domain.SearchQuery) []domain.Entry {
	return m.Called(ctx, query).Get(0).([]domain.Entry)
}

func (m *MockRedirectService) ShortURL(slug string) string {
	return m.Called(slug).String(0)
}

func (m *MockRedirectService) LongURL(redirect domain.Redirect) string {
	return m.Called(redirect).String(0)
}

func (m *MockRedirectService) Sitemap(ctx context.Context) []byte {
	return m.Called(ctx).Get(0).([]byte)
}
