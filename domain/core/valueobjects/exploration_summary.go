package valueobjects

// ExplorationStatus is the publication status of an exploration
type ExplorationStatus string

const (
	ExplorationStatusPrivate ExplorationStatus = "private"
	ExplorationStatusPublic  ExplorationStatus = "public"
)

// ExplorationSummary is the read-only summary the backend attaches to each
// collection node. Collections never edit it, they only carry it around.
type ExplorationSummary struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	Objective        string            `json:"objective"`
	Category         string            `json:"category"`
	LanguageCode     string            `json:"language_code"`
	Status           ExplorationStatus `json:"status"`
	Tags             []string          `json:"tags"`
	ThumbnailIconURL string            `json:"thumbnail_icon_url"`
	ThumbnailBgColor string            `json:"thumbnail_bg_color"`
	NumViews         int               `json:"num_views"`
}

// Clone returns a deep copy, nil-safe
func (s *ExplorationSummary) Clone() *ExplorationSummary {
	if s == nil {
		return nil
	}
	out := *s
	if s.Tags != nil {
		out.Tags = make([]string, len(s.Tags))
		copy(out.Tags, s.Tags)
	}
	return &out
}

// IsPrivate reports whether the exploration is unpublished
func (s *ExplorationSummary) IsPrivate() bool {
	return s != nil && s.Status == ExplorationStatusPrivate
}
