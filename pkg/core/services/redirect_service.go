package services

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/wadjakorntonsri/seo-redirects/pkg/core/domain"
	"github.com/wadjakorntonsri/seo-redirects/pkg/markdown"
	"github.com/wadjakorntonsri/seo-redirects/pkg/ports"
)

const (
	requiredFieldsMessage = "Title, description, and URL are required"
	slugRequiredMessage   = "Valid slug is required as query parameter"
	notPersistedWarning   = "Redirect created but not persisted"
)

type RedirectService struct {
	repo     ports.RedirectRepository
	baseURL  string
	log      *zap.Logger
	now      func() time.Time
	validate *validator.Validate
}

type Option func(*RedirectService)

// WithClock overrides the time source used for timestamps and slug suffixes.
func WithClock(now func() time.Time) Option {
	return func(s *RedirectService) { s.now = now }
}

func WithLogger(log *zap.Logger) Option {
	return func(s *RedirectService) { s.log = log }
}

func NewRedirectService(repo ports.RedirectRepository, baseURL string, opts ...Option) *RedirectService {
	s := &RedirectService{
		repo:     repo,
		baseURL:  strings.TrimRight(baseURL, "/"),
		log:      zap.NewNop(),
		now:      time.Now,
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save creates a new redirect or, when input.Slug names an existing record,
// replaces it while keeping its created_at.
//
// A storage failure on the final write still returns the computed result
// together with an error wrapping domain.ErrNotPersisted.
func (s *RedirectService) Save(ctx context.Context, input domain.RedirectInput) (*domain.SaveResult, error) {
	input = normalizeInput(input)
	if err := s.validate.Struct(input); err != nil {
		return nil, &domain.ValidationError{Message: requiredFieldsMessage}
	}

	now := s.now().UTC().Truncate(time.Millisecond)
	slug := AllocateSlug(input.Slug, input.Title, now)

	existing, err := s.repo.Get(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("load redirect %q: %w", slug, err)
	}

	isUpdate := input.Slug != "" && existing != nil
	if !isUpdate && (existing != nil || IsReservedSlug(slug)) {
		slug = collisionSlug(slug, now)
	}

	record := domain.Redirect{
		Title:     input.Title,
		Desc:      input.Desc,
		URL:       input.URL,
		Image:     input.Image,
		Video:     input.Video,
		Keywords:  input.Keywords,
		SiteName:  input.SiteName,
		Type:      input.Type,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if isUpdate && !existing.CreatedAt.IsZero() {
		record.CreatedAt = existing.CreatedAt
	}

	result := &domain.SaveResult{
		Slug:     slug,
		Short:    s.ShortURL(slug),
		Long:     s.LongURL(record),
		IsUpdate: isUpdate,
		Data:     record,
	}

	if err := s.repo.Save(ctx, slug, record); err != nil {
		s.log.Error("failed to persist redirect", zap.String("slug", slug), zap.Error(err))
		result.Warning = notPersistedWarning
		return result, fmt.Errorf("%w: %w", domain.ErrNotPersisted, err)
	}

	s.log.Info("redirect saved", zap.String("slug", slug), zap.Bool("update", isUpdate))
	return result, nil
}

// Get returns nil for unknown slugs and for unreadable storage.
func (s *RedirectService) Get(ctx context.Context, slug string) *domain.Redirect {
	redirect, err := s.repo.Get(ctx, slug)
	if err != nil {
		s.log.Warn("failed to read redirect", zap.String("slug", slug), zap.Error(err))
		return nil
	}
	return redirect
}

// List returns every stored redirect, or an empty map when storage is unreadable.
func (s *RedirectService) List(ctx context.Context) map[string]domain.Redirect {
	redirects, err := s.repo.GetAll(ctx)
	if err != nil {
		s.log.Warn("failed to list redirects", zap.Error(err))
		return map[string]domain.Redirect{}
	}
	if redirects == nil {
		return map[string]domain.Redirect{}
	}
	return redirects
}

func (s *RedirectService) Delete(ctx context.Context, slug string) error {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return &domain.ValidationError{Message: slugRequiredMessage}
	}

	existing, err := s.repo.Get(ctx, slug)
	if err != nil {
		return fmt.Errorf("load redirect %q: %w", slug, err)
	}
	if existing == nil {
		return fmt.Errorf("%w: %q", domain.ErrNotFound, slug)
	}

	deleted, err := s.repo.Delete(ctx, slug)
	if err != nil {
		return fmt.Errorf("delete redirect %q: %w", slug, err)
	}
	if !deleted {
		return fmt.Errorf("%w: %q", domain.ErrNotFound, slug)
	}

	s.log.Info("redirect deleted", zap.String("slug", slug))
	return nil
}

// Search filters the full listing by a case-insensitive term and an optional
// content type, then orders it.
func (s *RedirectService) Search(ctx context.Context, query domain.SearchQuery) []domain.Entry {
	term := strings.ToLower(strings.TrimSpace(query.Term))
	typeFilter := strings.TrimSpace(query.Type)
	if typeFilter == "all" {
		typeFilter = ""
	}

	entries := make([]domain.Entry, 0)
	for slug, redirect := range s.List(ctx) {
		if typeFilter != "" && redirect.Type != typeFilter {
			continue
		}
		if term != "" && !matchesTerm(slug, redirect, term) {
			continue
		}
		entries = append(entries, domain.Entry{Slug: slug, Redirect: redirect})
	}

	sortEntries(entries, query.Sort)
	return entries
}

func (s *RedirectService) ShortURL(slug string) string {
	return s.baseURL + "/" + slug
}

// LongURL encodes the record into the self-describing /u query form. Optional
// fields are left out when empty.
func (s *RedirectService) LongURL(redirect domain.Redirect) string {
	params := []struct {
		key, value string
		optional   bool
	}{
		{"title", redirect.Title, false},
		{"desc", redirect.Desc, false},
		{"url", redirect.URL, false},
		{"image", redirect.Image, true},
		{"video", redirect.Video, true},
		{"keywords", redirect.Keywords, true},
		{"site_name", redirect.SiteName, true},
		{"type", redirect.Type, false},
	}

	var b strings.Builder
	b.WriteString(s.baseURL)
	b.WriteString("/u?")
	for i, p := range params {
		if p.optional && p.value == "" {
			continue
		}
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String()
}

func normalizeInput(in domain.RedirectInput) domain.RedirectInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Desc = strings.TrimSpace(in.Desc)
	in.URL = strings.TrimSpace(in.URL)
	in.Image = strings.TrimSpace(in.Image)
	in.Video = strings.TrimSpace(in.Video)
	in.Keywords = strings.TrimSpace(in.Keywords)
	in.SiteName = strings.TrimSpace(in.SiteName)
	in.Type = strings.TrimSpace(in.Type)
	if in.Type == "" {
		in.Type = domain.DefaultType
	}
	return in
}

func matchesTerm(slug string, r domain.Redirect, term string) bool {
	fields := []string{slug, r.Title, markdown.PlainText(r.Desc), r.Keywords, r.SiteName}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func sortEntries(entries []domain.Entry, order string) {
	switch order {
	case domain.SortTitle, domain.SortType:
		// Collator keeps internal buffers and is not safe to share.
		c := collate.New(language.Und)
		key := func(e domain.Entry) string {
			if order == domain.SortTitle {
				return e.Title
			}
			return e.Type
		}
		sort.SliceStable(entries, func(i, j int) bool {
			if cmp := c.CompareString(key(entries[i]), key(entries[j])); cmp != 0 {
				return cmp < 0
			}
			return entries[i].Slug < entries[j].Slug
		})
	default:
		sort.SliceStable(entries, func(i, j int) bool {
			ri, rj := entries[i].Recency(), entries[j].Recency()
			if !ri.Equal(rj) {
				return ri.After(rj)
			}
			return entries[i].Slug < entries[j].Slug
		})
	}
}
