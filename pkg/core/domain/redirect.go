package domain

import "time"

// DefaultType is used when a create request leaves the content type empty.
const DefaultType = "website"

// ContentTypes lists the Open Graph types offered by the admin form. The set is
// not enforced on write.
var ContentTypes = []string{"article", "website", "product", "video", "book", "profile"}

// Redirect is the metadata stored for one slug. The slug itself is the map key
// and is not part of the record.
type Redirect struct {
	Title     string    `json:"title" yaml:"title"`
	Desc      string    `json:"desc" yaml:"desc"` // markdown source
	URL       string    `json:"url" yaml:"url"`
	Image     string    `json:"image" yaml:"image"`
	Video     string    `json:"video" yaml:"video"`
	Keywords  string    `json:"keywords" yaml:"keywords"` // comma separated
	SiteName  string    `json:"site_name" yaml:"site_name"`
	Type      string    `json:"type" yaml:"type"`
	CreatedAt time.Time `json:"created_at,omitzero" yaml:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitzero" yaml:"updated_at,omitempty"`
}

// Recency is the timestamp used by the "recent" sort: created_at, then
// updated_at, then the Unix epoch.
func (r Redirect) Recency() time.Time {
	if !r.CreatedAt.IsZero() {
		return r.CreatedAt
	}
	if !r.UpdatedAt.IsZero() {
		return r.UpdatedAt
	}
	return time.Unix(0, 0).UTC()
}

// Entry pairs a record with its slug for ordered listings.
type Entry struct {
	Slug string `json:"slug"`
	Redirect
}

// RedirectInput is the create-or-update payload. An empty Slug asks the
// service to derive one from the title.
type RedirectInput struct {
	Title    string `json:"title" validate:"required"`
	Desc     string `json:"desc" validate:"required"`
	URL      string `json:"url" validate:"required"`
	Image    string `json:"image"`
	Video    string `json:"video"`
	Keywords string `json:"keywords"`
	SiteName string `json:"site_name"`
	Type     string `json:"type"`
	Slug     string `json:"slug"`
}

// SaveResult describes a completed create or update.
type SaveResult struct {
	Slug     string
	Short    string
	Long     string
	IsUpdate bool
	Data     Redirect
	Warning  string
}

// Sort orders accepted by the admin listing.
const (
	SortRecent = "recent"
	SortTitle  = "title"
	SortType   = "type"
)

// SearchQuery filters and orders the admin listing. An empty Type or "all"
// disables the type filter.
type SearchQuery struct {
	Term string
	Type string
	Sort string
}
