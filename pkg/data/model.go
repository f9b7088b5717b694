package data

import "time"

// PageDraft is a page as returned by the content service: text plus the
// prompt used to illustrate it, before any media has been resolved.
type PageDraft struct {
	Text        string `json:"text"`
	ImagePrompt string `json:"imagePrompt"`
}

// Page is an assembled page. ImageURL is always populated after assembly
// (a placeholder when generation failed). AudioData holds raw narration
// bytes and may be nil; a page without audio is still a valid page.
type Page struct {
	Text        string `json:"text"`
	ImagePrompt string `json:"imagePrompt"`
	ImageURL    string `json:"imageUrl"`
	AudioData   []byte `json:"audioData,omitempty"`
}

// HasAudio reports whether narration was resolved for this page.
func (p Page) HasAudio() bool {
	return len(p.AudioData) > 0
}

type CastMember struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Story is the unit of persistence. Pages order defines reading order and
// never changes once the story has been saved.
type Story struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	Genre      string       `json:"genre"`
	Mood       string       `json:"mood"`
	Style      string       `json:"style"`
	Plot       string       `json:"plot"`
	Cast       []CastMember `json:"cast"`
	Pages      []Page       `json:"pages"`
	CreatedAt  time.Time    `json:"createdAt"`
	IsFavorite bool         `json:"isFavorite"`
}
