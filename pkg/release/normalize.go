package release

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// romanNumeralRegex matches Roman numerals II-IX after a space.
// A bare "I" or "X" is left alone ("SPY x FAMILY", "Log Horizon I").
var romanNumeralRegex = regexp.MustCompile(`(?i) (ii|iii|iv|v|vi|vii|viii|ix)\b`)

var romanToArabic = map[string]string{
	"II": "2", "III": "3", "IV": "4", "V": "5",
	"VI": "6", "VII": "7", "VIII": "8", "IX": "9",
}

var (
	ordinalSeasonSuffix = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th) season\b`)
	seasonSuffix        = regexp.MustCompile(`(?i)\bseason (\d{1,2})\b`)
)

// NormalizeRomanNumerals converts Roman numerals II-IX to Arabic numbers.
func NormalizeRomanNumerals(s string) string {
	return romanNumeralRegex.ReplaceAllStringFunc(s, func(match string) string {
		roman := strings.TrimSpace(match)
		if arabic, ok := romanToArabic[strings.ToUpper(roman)]; ok {
			return " " + arabic
		}
		return match
	})
}

// CleanTitle folds a title into a comparable form.
// Lower-cases, drops accents and macrons (Yōkoso -> yokoso), turns season
// suffixes ("2nd Season", "Season 2") and Roman numerals into bare numbers,
// strips leading articles and punctuation, and collapses whitespace.
func CleanTitle(title string) string {
	s := strings.ToLower(title)

	s = NormalizeRomanNumerals(s)
	s = ordinalSeasonSuffix.ReplaceAllString(s, "$1")
	s = seasonSuffix.ReplaceAllString(s, "$1")

	s = removeAccents(s)

	s = strings.NewReplacer(
		"&", " and ",
		"×", " x ",
		"-", " ",
		"/", " ",
		".", " ",
		"'", "",
		"’", "",
	).Replace(s)

	// "Re:Zero", "Kaguya-sama: Love Is War"
	parts := strings.Split(s, ":")
	for i, part := range parts {
		parts[i] = stripLeadingArticle(part)
	}
	s = strings.Join(parts, " ")

	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

func stripLeadingArticle(s string) string {
	s = strings.TrimSpace(s)
	for _, art := range []string{"the ", "a ", "an "} {
		if strings.HasPrefix(s, art) {
			return strings.TrimPrefix(s, art)
		}
	}
	return s
}
