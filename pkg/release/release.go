// Package release tokenizes anime release filenames into title, season and episode parts.
package release

// Info contains the tokens extracted from a release filename.
//
// Seasons and Episodes are lists because a single name can carry more than
// one marker (S01E01-E02, "Season 2 - 05"). Consumers that need a single
// value take the first element.
type Info struct {
	Title      string
	Seasons    []string
	Episodes   []string
	Group      string // leading [Group] tag
	Resolution string // 1080p, 720p, 1920x1080
	Checksum   string // CRC32 tag, upper-cased
	Version    int    // v2, v3 revisions; 0 when absent
	Extension  string // without the dot, lower-cased

	// Normalized title for matching
	CleanTitle string
}

// Season returns the first season token, or "" when none was found.
func (i *Info) Season() string {
	if len(i.Seasons) == 0 {
		return ""
	}
	return i.Seasons[0]
}

// Episode returns the first episode token, or "" when none was found.
func (i *Info) Episode() string {
	if len(i.Episodes) == 0 {
		return ""
	}
	return i.Episodes[0]
}
