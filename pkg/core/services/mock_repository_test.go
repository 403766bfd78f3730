package services

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/wadjakorntonsri/seo-redirects/pkg/core/domain"
)

type MockRedirectRepository struct {
	mock.Mock
}

func (m *MockRedirectRepository) Get(ctx context.Context, slug string) (*domain.Redirect, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Redirect), args.Error(1)
}

func (m *MockRedirectRepository) GetAll(ctx context.Context) (map[string]domain.Redirect, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Redirect), args.Error(1)
}

func (m *MockRedirectRepository) Save(ctx context.Context, slug string, redirect domain.Redirect) error {
	args := m.Called(ctx, slug, redirect)
	return args.Error(0)
}

func (m *MockRedirectRepository) Delete(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockRedirectRepository) Close() error {
	return m.Called().Error(0)
}

// memoryRepository is a map-backed repository for scenario tests.
type memoryRepository struct {
	mu   sync.Mutex
	data map[string]domain.Redirect
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{data: map[string]domain.Redirect{}}
}

func (r *memoryRepository) Get(_ context.Context, slug string) (*domain.Redirect, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	redirect, ok := r.data[slug]
	if !ok {
		return nil, nil
	}
	return &redirect, nil
}

func (r *memoryRepository) GetAll(context.Context) (map[string]domain.Redirect, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]domain.Redirect, len(r.data))
	for k, v := range r.data {
		out[k] = v
	}
	return out, nil
}

func (r *memoryRepository) Save(_ context.Context, slug string, redirect domain.Redirect) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[slug] = redirect
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, slug string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[slug]; !ok {
		return false, nil
	}
	delete(r.data, slug)
	return true, nil
}

func (r *memoryRepository) Close() error { return nil }
