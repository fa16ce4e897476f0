// Package metadata resolves series titles to canonical AniList metadata.
package metadata

import (
	"github.com/vmunix/strmsync/pkg/anilist"
	"github.com/vmunix/strmsync/pkg/release"
)

// Series is a snapshot of provider metadata for one show.
// It is fetched fresh on every lookup and never cached.
type Series struct {
	ProviderID    int
	TitleEnglish  string
	TitleRomaji   string
	TitleNative   string
	Description   string // plain text
	CoverImageURL string
	Genres        []string
	Studio        string
	AverageScore  int    // 0-100, 0 when unknown
	AirStartDate  string // YYYY-MM-DD, YYYY-MM or YYYY
	Year          int
	Status        string
	Season        string
	SeasonYear    int
	Episodes      int

	// Query is the title that was searched; Match grades how well the
	// returned titles fit it.
	Query string
	Match release.MatchResult
}

// Title returns the preferred title: English, else Romaji, else native.
// Returns "" when the provider gave none.
func (s *Series) Title() string {
	for _, t := range []string{s.TitleEnglish, s.TitleRomaji, s.TitleNative} {
		if t != "" {
			return t
		}
	}
	return ""
}

// Titles returns every non-empty title variant in preference order.
func (s *Series) Titles() []string {
	var titles []string
	for _, t := range []string{s.TitleEnglish, s.TitleRomaji, s.TitleNative} {
		if t != "" {
			titles = append(titles, t)
		}
	}
	return titles
}

// FromMedia converts an AniList media record.
func FromMedia(m *anilist.Media) *Series {
	s := &Series{
		ProviderID:    m.ID,
		TitleEnglish:  m.Title.English,
		TitleRomaji:   m.Title.Romaji,
		TitleNative:   m.Title.Native,
		Description:   PlainText(m.Description),
		CoverImageURL: m.CoverImage.Large,
		Studio:        m.MainStudio(),
		AverageScore:  m.AverageScore,
		AirStartDate:  m.StartDate.String(),
		Year:          m.StartDate.Year,
		Status:        m.Status,
		Season:        m.Season,
		SeasonYear:    m.SeasonYear,
		Episodes:      m.Episodes,
	}
	if s.Year == 0 {
		s.Year = m.SeasonYear
	}

	seen := make(map[string]bool, len(m.Genres))
	for _, g := range m.Genres {
		if g == "" || seen[g] {
			continue
		}
		seen[g] = true
		s.Genres = append(s.Genres, g)
	}
	return s
}
