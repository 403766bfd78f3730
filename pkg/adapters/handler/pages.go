package handler

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/seo-redirects/pkg/config"
	"github.com/wadjakorntonsri/seo-redirects/pkg/core/domain"
	"github.com/wadjakorntonsri/seo-redirects/pkg/markdown"
	"github.com/wadjakorntonsri/seo-redirects/pkg/ports"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	robotsIndex   = "index, follow, max-image-preview:large, max-snippet:-1, max-video-preview:-1"
	maxOtherLinks = 6
)

var templateFuncs = template.FuncMap{
	"plain": func(s string) string { return markdown.Truncate(markdown.PlainText(s), 200) },
}

// Meta holds the head tags of a rendered page.
type Meta struct {
	Title       string
	Description string
	Keywords    string
	Robots      string
	Canonical   string

	OpenGraph bool
	OGTitle   string
	OGType    string
	SiteName  string
	Image     string
	Video     string
}

type basePage struct {
	Meta     Meta
	SiteName string
	Year     int
}

type redirectPage struct {
	basePage
	Redirect domain.Redirect
	Body     template.HTML
	Others   []domain.Entry
}

type adminPage struct {
	basePage
	Query        domain.SearchQuery
	Entries      []domain.Entry
	Total        int
	ContentTypes []string
	Editing      bool
	Form         domain.RedirectInput
}

type PageHandler struct {
	service  ports.RedirectService
	siteName string
	baseURL  string
	log      *zap.Logger
	pages    map[string]*template.Template
}

func NewPageHandler(cfg *config.Config, service ports.RedirectService, log *zap.Logger) *PageHandler {
	pages := make(map[string]*template.Template)
	for _, name := range []string{"home", "redirect", "admin", "notfound"} {
		pages[name] = template.Must(template.New(name).Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html"))
	}
	return &PageHandler{
		service:  service,
		siteName: cfg.SiteName,
		baseURL:  cfg.BaseURL,
		log:      log,
		pages:    pages,
	}
}

// Home serves GET /.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	page := redirectPage{
		basePage: h.base(Meta{
			Title:     h.siteName,
			Robots:    robotsIndex,
			Canonical: h.baseURL,
		}),
		Others: h.service.Search(r.Context(), domain.SearchQuery{Sort: domain.SortRecent}),
	}
	h.render(w, r, http.StatusOK, "home", page)
}

// Redirect serves GET /{slug}.
func (h *PageHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	redirect := h.service.Get(r.Context(), slug)
	if redirect == nil {
		h.NotFound(w, r)
		return
	}

	page := h.buildRedirectPage(*redirect, h.baseURL+"/"+slug)
	page.Others = h.others(r, slug)
	h.render(w, r, http.StatusOK, "redirect", page)
}

// LongURL serves GET /u, rendering a record carried entirely in the query string.
func (h *PageHandler) LongURL(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	redirect := domain.Redirect{
		Title:    q.Get("title"),
		Desc:     q.Get("desc"),
		URL:      q.Get("url"),
		Image:    q.Get("image"),
		Video:    q.Get("video"),
		Keywords: q.Get("keywords"),
		SiteName: q.Get("site_name"),
		Type:     q.Get("type"),
	}
	if redirect.Title == "" || redirect.URL == "" {
		h.NotFound(w, r)
		return
	}
	if redirect.Type == "" {
		redirect.Type = domain.DefaultType
	}

	h.render(w, r, http.StatusOK, "redirect", h.buildRedirectPage(redirect, h.service.LongURL(redirect)))
}

// Admin serves GET /admin with optional q, type, sort and edit parameters.
func (h *PageHandler) Admin(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := domain.SearchQuery{
		Term: q.Get("q"),
		Type: q.Get("type"),
		Sort: q.Get("sort"),
	}
	if query.Sort == "" {
		query.Sort = domain.SortRecent
	}

	page := adminPage{
		basePage:     h.base(Meta{Title: "Admin | " + h.siteName, Robots: "noindex, nofollow"}),
		Query:        query,
		Entries:      h.service.Search(r.Context(), query),
		Total:        len(h.service.List(r.Context())),
		ContentTypes: domain.ContentTypes,
		Form:         domain.RedirectInput{Type: domain.DefaultType},
	}

	if slug := strings.TrimSpace(q.Get("edit")); slug != "" {
		if existing := h.service.Get(r.Context(), slug); existing != nil {
			page.Editing = true
			page.Form = domain.RedirectInput{
				Title:    existing.Title,
				Desc:     existing.Desc,
				URL:      existing.URL,
				Image:    existing.Image,
				Video:    existing.Video,
				Keywords: existing.Keywords,
				SiteName: existing.SiteName,
				Type:     existing.Type,
				Slug:     slug,
			}
		}
	}

	h.render(w, r, http.StatusOK, "admin", page)
}

// NotFound renders the 404 page.
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	page := redirectPage{
		basePage: h.base(Meta{
			Title:       "Page Not Found | " + h.siteName,
			Description: "The requested page could not be found.",
			Robots:      "noindex",
		}),
	}
	h.render(w, r, http.StatusNotFound, "notfound", page)
}

func (h *PageHandler) buildRedirectPage(redirect domain.Redirect, canonical string) redirectPage {
	return redirectPage{
		basePage: h.base(Meta{
			Title:       redirect.Title + " | " + h.siteName,
			Description: markdown.MetaDescription(redirect.Desc),
			Keywords:    redirect.Keywords,
			Robots:      robotsIndex,
			Canonical:   canonical,
			OpenGraph:   true,
			OGTitle:     redirect.Title,
			OGType:      redirect.Type,
			SiteName:    redirect.SiteName,
			Image:       redirect.Image,
			Video:       redirect.Video,
		}),
		Redirect: redirect,
		Body:     markdown.ToHTML(redirect.Desc),
	}
}

func (h *PageHandler) others(r *http.Request, current string) []domain.Entry {
	entries := h.service.Search(r.Context(), domain.SearchQuery{Sort: domain.SortRecent})
	others := make([]domain.Entry, 0, maxOtherLinks)
	for _, e := range entries {
		if e.Slug == current {
			continue
		}
		others = append(others, e)
		if len(others) == maxOtherLinks {
			break
		}
	}
	return others
}

func (h *PageHandler) base(meta Meta) basePage {
	return basePage{Meta: meta, SiteName: h.siteName, Year: time.Now().Year()}
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.pages[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		h.log.Error("render page",
			zap.String("page", name),
			zap.String("request_id", RequestIDFromContext(r.Context())),
			zap.Error(err),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
