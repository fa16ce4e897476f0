// Package anilist provides a client for the AniList GraphQL API.
package anilist

import "fmt"

// Media is an anime entry returned by the Media query.
type Media struct {
	ID           int        `json:"id"`
	Title        Title      `json:"title"`
	Description  string     `json:"description"` // may contain HTML
	CoverImage   CoverImage `json:"coverImage"`
	Season       string     `json:"season"` // WINTER, SPRING, SUMMER, FALL
	SeasonYear   int        `json:"seasonYear"`
	Episodes     int        `json:"episodes"`
	Status       string     `json:"status"` // FINISHED, RELEASING, NOT_YET_RELEASED, CANCELLED, HIATUS
	Genres       []string   `json:"genres"`
	AverageScore int        `json:"averageScore"` // 0-100
	Studios      Studios    `json:"studios"`
	StartDate    FuzzyDate  `json:"startDate"`
}

// Title holds the title variants of a Media entry. Any of them may be empty.
type Title struct {
	Romaji  string `json:"romaji"`
	English string `json:"english"`
	Native  string `json:"native"`
}

// CoverImage holds cover art URLs.
type CoverImage struct {
	Large string `json:"large"`
}

// Studios is the studios connection, filtered to main studios by the query.
type Studios struct {
	Nodes []Studio `json:"nodes"`
}

// Studio is an animation studio.
type Studio struct {
	Name string `json:"name"`
}

// MainStudio returns the first main studio name, or "".
func (m *Media) MainStudio() string {
	if len(m.Studios.Nodes) == 0 {
		return ""
	}
	return m.Studios.Nodes[0].Name
}

// FuzzyDate is AniList's partial date. Unknown parts are zero.
type FuzzyDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// String formats the date as YYYY-MM-DD, YYYY-MM or YYYY depending on
// which parts are known. Returns "" when the year is unknown.
func (d FuzzyDate) String() string {
	switch {
	case d.Year == 0:
		return ""
	case d.Month == 0:
		return fmt.Sprintf("%04d", d.Year)
	case d.Day == 0:
		return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
	default:
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	}
}

// IsComplete reports whether year, month and day are all known.
func (d FuzzyDate) IsComplete() bool {
	return d.Year != 0 && d.Month != 0 && d.Day != 0
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type searchResponse struct {
	Data struct {
		Media *Media `json:"Media"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}
