package valueobjects

import (
	"encoding/json"
	"strings"

	pkgerrors "editor-backend/pkg/errors"
	"editor-backend/pkg/utils"
)

// SubtitledHTML is a piece of rich text content tagged with the content id
// that translations and voiceovers are keyed by.
type SubtitledHTML struct {
	html      string
	contentID string
}

// subtitledHTMLDict is the backend wire shape
type subtitledHTMLDict struct {
	HTML      string `json:"html"`
	ContentID string `json:"content_id"`
}

// NewSubtitledHTML creates subtitled html content
func NewSubtitledHTML(html, contentID string) (SubtitledHTML, error) {
	if strings.TrimSpace(contentID) == "" {
		return SubtitledHTML{}, pkgerrors.NewValidationError("content id cannot be empty")
	}
	return SubtitledHTML{html: html, contentID: contentID}, nil
}

// MustSubtitledHTML is NewSubtitledHTML for literals known to be valid
func MustSubtitledHTML(html, contentID string) SubtitledHTML {
	s, err := NewSubtitledHTML(html, contentID)
	if err != nil {
		panic(err)
	}
	return s
}

// HTML returns the html body
func (s SubtitledHTML) HTML() string {
	return s.html
}

// ContentID returns the content id
func (s SubtitledHTML) ContentID() string {
	return s.contentID
}

// WithHTML returns a copy with the html replaced and the content id kept
func (s SubtitledHTML) WithHTML(html string) SubtitledHTML {
	return SubtitledHTML{html: html, contentID: s.contentID}
}

// IsEmpty reports whether there is no html
func (s SubtitledHTML) IsEmpty() bool {
	return s.html == ""
}

// MarshalJSON implements json.Marshaler
func (s SubtitledHTML) MarshalJSON() ([]byte, error) {
	return utils.MarshalJSON(subtitledHTMLDict{HTML: s.html, ContentID: s.contentID})
}

// UnmarshalJSON implements json.Unmarshaler
func (s *SubtitledHTML) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var dict subtitledHTMLDict
	if err := json.Unmarshal(data, &dict); err != nil {
		return err
	}
	parsed, err := NewSubtitledHTML(dict.HTML, dict.ContentID)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
