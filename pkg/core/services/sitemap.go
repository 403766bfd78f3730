package services

import (
	"context"
	"encoding/xml"
	"net/url"
	"sort"
	"strings"

	"go.uber.org/zap"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap renders the XML sitemap: the home and admin pages followed by one
// entry per slug. Storage failures yield just the two base entries.
func (s *RedirectService) Sitemap(ctx context.Context) []byte {
	today := s.now().UTC().Format("2006-01-02")

	urls := []sitemapURL{
		{Loc: s.baseURL, LastMod: today, ChangeFreq: "daily", Priority: "1.0"},
		{Loc: s.baseURL + "/admin", LastMod: today, ChangeFreq: "weekly", Priority: "0.5"},
	}

	redirects, err := s.repo.GetAll(ctx)
	if err != nil {
		s.log.Warn("sitemap falling back to base entries", zap.Error(err))
	} else {
		slugs := make([]string, 0, len(redirects))
		for slug := range redirects {
			slugs = append(slugs, slug)
		}
		sort.Strings(slugs)
		for _, slug := range slugs {
			urls = append(urls, sitemapURL{
				Loc:        s.baseURL + "/" + escapePathComponent(slug),
				LastMod:    today,
				ChangeFreq: "weekly",
				Priority:   "0.9",
			})
		}
	}

	return renderXML(urlSet{Xmlns: sitemapNamespace, URLs: urls})
}

func renderXML(set urlSet) []byte {
	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		// Only strings are marshalled; this cannot fail in practice.
		return []byte(xml.Header)
	}
	return append([]byte(xml.Header), body...)
}

var componentUnescaper = strings.NewReplacer("%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*")

// escapePathComponent matches the browser encodeURIComponent rules.
func escapePathComponent(s string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
	return componentUnescaper.Replace(escaped)
}
