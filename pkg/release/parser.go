package release

import (
	"regexp"
	"strconv"
	"strings"
)

// mediaExtensions are stripped from the end of a name before tokenizing.
var mediaExtensions = map[string]bool{
	"mkv": true, "mp4": true, "avi": true, "mov": true, "m4v": true, "wmv": true,
	"webm": true, "flv": true, "ts": true, "m2ts": true,
	"ass": true, "srt": true, "sub": true, "vtt": true,
}

var (
	leadingGroupRegex = regexp.MustCompile(`^\s*\[([^\]]+)\]`)
	bracketRegex      = regexp.MustCompile(`[\[({]([^\[\](){}]*)[\])}]`)
	resolutionRegex   = regexp.MustCompile(`(?i)\b(\d{3,4}[pi]|\d{3,4}x\d{3,4}|4k)\b`)
	checksumRegex     = regexp.MustCompile(`^[0-9A-Fa-f]{8}$`)

	seasonEpisodeRegex   = regexp.MustCompile(`(?i)\bS(\d{1,2})\s?E(\d{1,4})(?:v(\d))?(?:\s?-\s?E?(\d{1,4}))?\b`)
	crossRegex           = regexp.MustCompile(`(?i)\b(\d{1,2})x(\d{1,3})\b`)
	seasonWordRegex      = regexp.MustCompile(`(?i)\bseason\s?(\d{1,2})\b`)
	ordinalSeasonRegex   = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)\s+season\b`)
	shortSeasonRegex     = regexp.MustCompile(`(?i)\bS(\d{1,2})\b`)
	episodeWordRegex     = regexp.MustCompile(`(?i)\b(?:episode\s?|ep\.?\s?|e)(\d{1,4})(?:v(\d))?\b`)
	dashEpisodeRegex     = regexp.MustCompile(`\s-\s(\d{1,4})(?:v(\d))?(?:\s|$)`)
	trailingEpisodeRegex = regexp.MustCompile(`\s(\d{1,3})(?:v(\d))?$`)

	// noiseRegex matches quality and encoding tokens. Outside brackets they end the title.
	noiseRegex = regexp.MustCompile(`(?i)\b(?:\d{3,4}[pi]|4k|x26[45]|h\.?26[45]|hevc|avc|10-?bit|8-?bit|web-?dl|web-?rip|blu-?ray|bdrip|hdtv|dvdrip|aac|flac|opus|ac3|dual[ .-]audio|multi-?subs?|uncensored|batch)\b`)

	multiSpaceRegex = regexp.MustCompile(`\s+`)
)

// Parse extracts title, season and episode tokens from an anime release name.
//
// Recognized shapes include "[Group] Title - 05 (1080p) [CRC32].mkv",
// "Title.S01E05.1080p.WEB-DL.mkv", "Title 2x05", "Title Season 2 - 05",
// "Title 2nd Season - 05", "Title Episode 5" and "Title 05". Parse never
// fails; unrecognized input yields an Info with only Title set, and Title
// may be empty when the name starts with an episode marker.
func Parse(name string) *Info {
	info := &Info{}
	s := strings.TrimSpace(name)

	if dot := strings.LastIndex(s, "."); dot > 0 {
		if ext := strings.ToLower(s[dot+1:]); mediaExtensions[ext] {
			info.Extension = ext
			s = s[:dot]
		}
	}

	if m := leadingGroupRegex.FindStringSubmatch(s); m != nil {
		info.Group = strings.TrimSpace(m[1])
		s = s[len(m[0]):]
	}

	// Remaining bracketed tags never belong to the title
	var tags []string
	s = bracketRegex.ReplaceAllStringFunc(s, func(tag string) string {
		tags = append(tags, strings.TrimSpace(tag[1:len(tag)-1]))
		return " "
	})

	// Dot- and underscore-delimited names
	if !strings.Contains(strings.TrimSpace(s), " ") {
		s = strings.NewReplacer(".", " ", "_", " ").Replace(s)
	} else {
		s = strings.ReplaceAll(s, "_", " ")
	}
	s = multiSpaceRegex.ReplaceAllString(s, " ")

	cut := len(s)
	mark := func(idx int) {
		if idx >= 0 && idx < cut {
			cut = idx
		}
	}

	head := s
	if loc := noiseRegex.FindStringIndex(s); loc != nil {
		mark(loc[0])
		head = s[:loc[0]]
	}

	if m := seasonEpisodeRegex.FindStringSubmatchIndex(s); m != nil {
		info.Seasons = append(info.Seasons, s[m[2]:m[3]])
		info.Episodes = append(info.Episodes, s[m[4]:m[5]])
		info.setVersion(s, m[6], m[7])
		if m[8] >= 0 {
			info.Episodes = append(info.Episodes, s[m[8]:m[9]])
		}
		mark(m[0])
	} else if m := crossRegex.FindStringSubmatchIndex(s); m != nil {
		info.Seasons = append(info.Seasons, s[m[2]:m[3]])
		info.Episodes = append(info.Episodes, s[m[4]:m[5]])
		mark(m[0])
	}

	if len(info.Seasons) == 0 {
		for _, re := range []*regexp.Regexp{seasonWordRegex, ordinalSeasonRegex, shortSeasonRegex} {
			if m := re.FindStringSubmatchIndex(s); m != nil {
				info.Seasons = append(info.Seasons, s[m[2]:m[3]])
				mark(m[0])
				break
			}
		}
	}

	if len(info.Episodes) == 0 {
		if m := episodeWordRegex.FindStringSubmatchIndex(s); m != nil {
			info.Episodes = append(info.Episodes, s[m[2]:m[3]])
			info.setVersion(s, m[4], m[5])
			mark(m[0])
		} else if m := dashEpisodeRegex.FindStringSubmatchIndex(s); m != nil {
			info.Episodes = append(info.Episodes, s[m[2]:m[3]])
			info.setVersion(s, m[4], m[5])
			mark(m[0])
		} else {
			trimmed := strings.TrimRight(head, " -_.~")
			if m := trailingEpisodeRegex.FindStringSubmatchIndex(trimmed); m != nil && m[0] > 0 {
				info.Episodes = append(info.Episodes, trimmed[m[2]:m[3]])
				info.setVersion(trimmed, m[4], m[5])
				mark(m[0])
			}
		}
	}

	// Tags only fill in what the name itself did not say
	for _, tag := range tags {
		info.readTag(tag)
	}
	if info.Resolution == "" {
		info.Resolution = resolutionRegex.FindString(s)
	}

	title := strings.Trim(s[:cut], " -_.~")
	info.Title = strings.TrimSpace(multiSpaceRegex.ReplaceAllString(title, " "))
	info.CleanTitle = CleanTitle(info.Title)

	return info
}

// readTag records what a bracketed tag says about the release.
func (i *Info) readTag(tag string) {
	if tag == "" {
		return
	}
	if checksumRegex.MatchString(tag) {
		i.Checksum = strings.ToUpper(tag)
		return
	}
	if i.Resolution == "" {
		if res := resolutionRegex.FindString(tag); res != "" {
			i.Resolution = res
		}
	}
	if len(i.Seasons) == 0 {
		for _, re := range []*regexp.Regexp{seasonWordRegex, ordinalSeasonRegex} {
			if m := re.FindStringSubmatch(tag); m != nil {
				i.Seasons = append(i.Seasons, m[1])
				return
			}
		}
	}
}

func (i *Info) setVersion(s string, start, end int) {
	if start < 0 {
		return
	}
	if v, err := strconv.Atoi(s[start:end]); err == nil {
		i.Version = v
	}
}
