package model

import "fmt"

// Video represents a catalog entry as served by the upstream backend.
// The viewer never mutates videos; admin changes go through the catalog
// write accessors.
type Video struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	EmbedURL    string `json:"embedUrl"`
	Thumbnail   string `json:"thumbnail"`
	Category    string `json:"category"`
	Episode     string `json:"episode,omitempty"`
	Views       int64  `json:"views"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// Category is a display grouping. Videos reference categories by name,
// not by id, so renaming a category orphans its videos upstream.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Page is a static content page (about-us, disclaimer, privacy, terms).
type Page struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// VideoInput contains the fields the admin panel submits when creating a video.
type VideoInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	EmbedURL    string `json:"embedUrl"`
	Thumbnail   string `json:"thumbnail"`
	Category    string `json:"category"`
	Episode     string `json:"episode,omitempty"`
}

// VideoUpdate contains optional fields for a partial video update.
// Nil fields are left unchanged upstream.
type VideoUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	EmbedURL    *string `json:"embedUrl,omitempty"`
	Thumbnail   *string `json:"thumbnail,omitempty"`
	Category    *string `json:"category,omitempty"`
	Episode     *string `json:"episode,omitempty"`
}

// CategoryInput contains the fields for creating or renaming a category.
type CategoryInput struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// PageUpdate contains optional fields for a partial page update.
type PageUpdate struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

/// FormatViews renders a view count the way the catalog UI displays it:
// 1.2M, 3.4K, or the plain number below a thousand.
func FormatViews(views int64) string {
	switch {
	case views >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(views)/1_000_000)
	case views >= 1_000:
		return fmt.Sprintf("%.1fK", float64(views)/1_000)
	default:
		return fmt.Sprintf("%d", views)
	}
}
