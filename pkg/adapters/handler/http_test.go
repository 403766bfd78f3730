package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wadjakorntonsri/seo-redirects/pkg/config"
	"github.com/wadjakorntonsri/seo-redirects/pkg/core/domain"
)

func testConfig() *config.Config {
	return &config.Config{BaseURL: "https://go.example.com", SiteName: "SEO Redirects Pro"}
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestCreate_Success(t *testing.T) {
	svc := new(MockRedirectService)
	router := NewRouter(testConfig(), svc, nil)

	svc.On("Save", mock.Anything, mock.MatchedBy(func(in domain.RedirectInput) bool {
		return in.Title == "Hello World" && in.SiteName == "Acme"
	})).Return(&domain.SaveResult{
		Slug:  "hello-world",
		Short: "https://go.example.com/hello-world",
		Long:  "https://go.example.com/u?title=Hello+World",
		Data:  domain.Redirect{Title: "Hello World", Type: "website"},
	}, nil).Once()

	body := `{"title":"Hello World","desc":"Test **bold**","url":"https://example.com","site_name":"Acme"}`
	req := httptest.NewRequest(http.MethodPost, "/api/create-redirect", strings.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decodeBody(t, rr)
	assert.Equal(t, "hello-world", resp["slug"])
	assert.Equal(t, "https://go.example.com/hello-world", resp["short"])
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, false, resp["isUpdate"])
	assert.NotContains(t, resp, "warning")
	assert.Equal(t, "website", resp["data"].(map[string]any)["type"])
	svc.AssertExpectations(t)
}

func TestCreate_InvalidJSON(t *testing.T) {
	svc := new(MockRedirectService)
	router := NewRouter(testConfig(), svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/create-redirect", strings.NewReader(`{invalid`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid JSON data provided", decodeBody(t, rr)["error"])
	svc.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreate_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		result     *domain.SaveResult
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "validation",
			err:        &domain.ValidationError{Message: "Title, description, and URL are required"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Title, description, and URL are required",
		},
		{
			name:       "storage",
			err:        errors.New("load redirect: corrupt"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to create redirect. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockRedirectService)
			router := NewRouter(testConfig(), svc, nil)
			svc.On("Save", mock.Anything, mock.Anything).Return(tt.result, tt.err)

			req := httptest.NewRequest(http.MethodPost, "/api/create-redirect", strings.NewReader(`{}`))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantError, decodeBody(t, rr)["error"])
		})
	}
}

func TestCreate_NotPersistedWarning(t *testing.T) {
	svc := new(MockRedirectService)
	router := NewRouter(testConfig(), svc, nil)

	svc.On("Save", mock.Anything, mock.Anything).Return(&domain.SaveResult{
		Slug:    "hello-world",
		Short:   "https://go.example.com/hello-world",
		Long:    "https://go.example.com/u?title=x",
		Warning: "Redirect created but not persisted",
	}, fmt.Errorf("%w: disk full", domain.ErrNotPersisted))

	req := httptest.NewRequest(http.MethodPost, "/api/create-redirect", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decodeBody(t, rr)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Redirect created but not persisted", resp["warning"])
	assert.Equal(t, "https://go.example.com/u?title=x", resp["long"])
}

func TestListAndGet(t *testing.T) {
	svc := new(MockRedirectService)
	router := NewRouter(testConfig(), svc, nil)

	svc.On("List", mock.Anything).Return(map[string]domain.Redirect{"a": {Title: "A"}})
	svc.On("Get", mock.Anything, "a").Return(&domain.Redirect{Title: "A"})
	svc.On("Get", mock.Anything, "missing").Return(nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/get-redirects", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "A", decodeBody(t, rr)["a"].(map[string]any)["title"])

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/get-redirect?slug=a", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "A", decodeBody(t, rr)["title"])

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/get-redirect?slug=missing", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, `Redirect "missing" not found`, decodeBody(t, rr)["error"])

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/get-redirect", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		slug       string
		err        error
		wantStatus int
		wantKey    string
		wantValue  string
	}{
		{name: "success", query: "?slug=%20promo%20", slug: "promo", wantStatus: http.StatusOK, wantKey: "message", wantValue: `Redirect "promo" deleted successfully`},
		{name: "missing slug", query: "", slug: "", err: &domain.ValidationError{Message: "Valid slug is required as query parameter"}, wantStatus: http.StatusBadRequest, wantKey: "error", wantValue: "Valid slug is required as query parameter"},
		{name: "not found", query: "?slug=ghost", slug: "ghost", err: fmt.Errorf("%w: %q", domain.ErrNotFound, "ghost"), wantStatus: http.StatusNotFound, wantKey: "error", wantValue: `Redirect "ghost" not found`},
		{name: "storage", query: "?slug=x", slug: "x", err: errors.New("read-only"), wantStatus: http.StatusInternalServerError, wantKey: "details", wantValue: "read-only"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockRedirectService)
			router := NewRouter(testConfig(), svc, nil)
			svc.On("Delete", mock.Anything, tt.slug).Return(tt.err).Once()

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/delete-redirect"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantValue, decodeBody(t, rr)[tt.wantKey])
			svc.AssertExpectations(t)
		})
	}
}

func TestSitemapHeaders(t *testing.T) {
	svc := new(MockRedirectService)
	router := NewRouter(testConfig(), svc, nil)
	svc.On("Sitemap", mock.Anything).Return([]byte(`<?xml version="1.0" encoding="UTF-8"?><urlset></urlset>`))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/xml; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=3600, s-maxage=3600", rr.Header().Get("Cache-Control"))
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rr.Body.String(), "<urlset>")
}

func TestHealthz(t *testing.T) {
	router := NewRouter(testConfig(), new(MockRedirectService), nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"ok"}`, rr.Body.String())
}
