package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/wadjakorntonsri/seo-redirects/pkg/core/domain"
)

func TestSitemap(t *testing.T) {
	clock := newClock()
	repo := newMemoryRepository()
	repo.data = map[string]domain.Redirect{
		"zeta":      {Title: "Z"},
		"my promo":  {Title: "P"},
		"alpha(1)!": {Title: "A"},
	}
	svc := NewRedirectService(repo, testBaseURL, WithClock(clock.Now))

	xml := string(svc.Sitemap(context.Background()))

	assert.True(t, strings.HasPrefix(xml, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, xml, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	assert.Contains(t, xml, "<loc>"+testBaseURL+"</loc>")
	assert.Contains(t, xml, "<loc>"+testBaseURL+"/admin</loc>")
	assert.Contains(t, xml, "<lastmod>2024-03-01</lastmod>")
	assert.Contains(t, xml, "<loc>"+testBaseURL+"/my%20promo</loc>")
	assert.Contains(t, xml, "<loc>"+testBaseURL+"/alpha(1)!</loc>")
	assert.Equal(t, 5, strings.Count(xml, "<url>"))
	assert.Equal(t, 3, strings.Count(xml, "<priority>0.9</priority>"))
	assert.Less(t, strings.Index(xml, "/alpha(1)!"), strings.Index(xml, "/zeta"))
}

func TestSitemap_StorageFailure(t *testing.T) {
	repo := new(MockRedirectRepository)
	repo.On("GetAll", mock.Anything).Return(nil, errors.New("unreachable"))
	svc := NewRedirectService(repo, testBaseURL)

	xml := string(svc.Sitemap(context.Background()))

	assert.Equal(t, 2, strings.Count(xml, "<url>"))
	assert.Contains(t, xml, "<priority>1.0</priority>")
	assert.Contains(t, xml, "<priority>0.5</priority>")
}

func TestEscapePathComponent(t *testing.T) {
	assert.Equal(t, "a%20b", escapePathComponent("a b"))
	assert.Equal(t, "caf%C3%A9", escapePathComponent("café"))
	assert.Equal(t, "x*y'z", escapePathComponent("x*y'z"))
	assert.Equal(t, "a%2Fb", escapePathComponent("a/b"))
}
