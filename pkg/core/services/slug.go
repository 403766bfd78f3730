package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	maxSlugLength  = 100
	fallbackPrefix = "redirect-"
)

// reservedSlugs are single-segment paths the router serves ahead of /{slug}.
var reservedSlugs = map[string]bool{
	"admin":       true,
	"u":           true,
	"healthz":     true,
	"sitemap.xml": true,
}

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugWhitespace   = regexp.MustCompile(`\s+`)
	slugHyphens      = regexp.MustCompile(`-+`)
)

// Slugify derives a URL-safe slug from a title: lowercase, drop everything
// outside [a-z0-9], whitespace and '-', turn whitespace runs into single
// hyphens, then trim edge hyphens and cap the length.
func Slugify(title string) string {
	slug := strings.ToLower(strings.Map(normalizeSpace, title))
	slug = slugInvalidChars.ReplaceAllString(slug, "")
	slug = strings.TrimSpace(slug)
	slug = slugWhitespace.ReplaceAllString(slug, "-")
	slug = slugHyphens.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(slug[:maxSlugLength], "-")
	}
	return slug
}

// normalizeSpace folds Unicode whitespace (NBSP, em space, ideographic space,
// vertical tab, BOM) into ASCII space so regexp \s sees it.
func normalizeSpace(r rune) rune {
	if unicode.IsSpace(r) || r == '\uFEFF' {
		return ' '
	}
	return r
}

// AllocateSlug returns the candidate unchanged when present, otherwise a slug
// derived from the title, falling back to a timestamped one when the title has
// no usable characters. Collisions are resolved by the caller.
func AllocateSlug(candidate, title string, now time.Time) string {
	if candidate != "" {
		return candidate
	}
	if slug := Slugify(title); slug != "" {
		return slug
	}
	return fallbackPrefix + strconv.FormatInt(now.UnixMilli(), 10)
}

// IsReservedSlug reports whether a record stored under slug could never be
// rendered because a fixed route shadows it.
func IsReservedSlug(slug string) bool {
	return reservedSlugs[slug]
}

func collisionSlug(slug string, now time.Time) string {
	return slug + "-" + strconv.FormatInt(now.UnixMilli(), 10)
}
