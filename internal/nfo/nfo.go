// Package nfo renders Kodi-style NFO sidecar documents.
package nfo

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vmunix/strmsync/internal/metadata"
)

// ProviderType is the uniqueid type written for AniList ids.
const ProviderType = "anilist"

type uniqueID struct {
	Type    string `xml:"type,attr"`
	Default bool   `xml:"default,attr"`
	Value   string `xml:",chardata"`
}

type thumb struct {
	Aspect string `xml:"aspect,attr,omitempty"`
	URL    string `xml:",chardata"`
}

type tvShow struct {
	XMLName       xml.Name  `xml:"tvshow"`
	Title         string    `xml:"title"`
	OriginalTitle string    `xml:"originaltitle,omitempty"`
	SortTitle     string    `xml:"sorttitle,omitempty"`
	Plot          string    `xml:"plot,omitempty"`
	Genres        []string  `xml:"genre"`
	Studio        string    `xml:"studio,omitempty"`
	Rating        string    `xml:"rating,omitempty"`
	Premiered     string    `xml:"premiered,omitempty"`
	Year          int       `xml:"year,omitempty"`
	Status        string    `xml:"status,omitempty"`
	UniqueID      *uniqueID `xml:"uniqueid,omitempty"`
	Thumbs        []thumb   `xml:"thumb"`
}

type episodeDetails struct {
	XMLName   xml.Name  `xml:"episodedetails"`
	Title     string    `xml:"title"`
	ShowTitle string    `xml:"showtitle"`
	Season    int       `xml:"season"`
	Episode   int       `xml:"episode"`
	UniqueID  *uniqueID `xml:"uniqueid,omitempty"`
}

// Episode is the input for an episode NFO.
type Episode struct {
	ShowTitle  string
	Title      string
	Season     int
	Episode    int
	ProviderID int // series id; 0 omits the uniqueid element
}

// RenderSeries renders tvshow.nfo for s.
func RenderSeries(s *metadata.Series) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("render series: no metadata")
	}

	doc := tvShow{
		Title:     s.Title(),
		Plot:      s.Description,
		Genres:    s.Genres,
		Studio:    s.Studio,
		Year:      s.Year,
		Status:    s.Status,
		Premiered: premiered(s.AirStartDate),
	}
	doc.SortTitle = doc.Title
	if s.TitleNative != "" && s.TitleNative != doc.Title {
		doc.OriginalTitle = s.TitleNative
	} else if s.TitleRomaji != doc.Title {
		doc.OriginalTitle = s.TitleRomaji
	}
	if s.AverageScore > 0 {
		doc.Rating = strconv.FormatFloat(float64(s.AverageScore)/10, 'f', 1, 64)
	}
	if s.ProviderID != 0 {
		doc.UniqueID = &uniqueID{Type: ProviderType, Default: true, Value: strconv.Itoa(s.ProviderID)}
	}
	if s.CoverImageURL != "" {
		doc.Thumbs = append(doc.Thumbs, thumb{Aspect: "poster", URL: s.CoverImageURL})
	}

	return render(doc)
}

// RenderEpisode renders an episodedetails NFO.
func RenderEpisode(e Episode) ([]byte, error) {
	doc := episodeDetails{
		Title:     e.Title,
		ShowTitle: e.ShowTitle,
		Season:    e.Season,
		Episode:   e.Episode,
	}
	if doc.Title == "" {
		doc.Title = fmt.Sprintf("%s S%02dE%02d", e.ShowTitle, e.Season, e.Episode)
	}
	if e.ProviderID != 0 {
		doc.UniqueID = &uniqueID{Type: ProviderType, Default: true, Value: strconv.Itoa(e.ProviderID)}
	}
	return render(doc)
}

// WriteFile writes data to path through a temp file in the same directory,
// so readers never see a half-written document.
func WriteFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".nfo-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

func render(v any) ([]byte, error) {
	body, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal nfo: %w", err)
	}
	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)
	out = append(out, '\n')
	return out, nil
}

// premiered keeps only full dates; Kodi rejects partial ones.
func premiered(date string) string {
	if len(date) == len("2006-01-02") {
		return date
	}
	return ""
}
