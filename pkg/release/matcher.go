package release

import (
	"regexp"

	"github.com/hbollon/go-edlib"
)

var numberRegex = regexp.MustCompile(`\b(\d+)\b`)

// MatchConfidence grades a fuzzy title match.
type MatchConfidence int

const (
	ConfidenceNone   MatchConfidence = iota // score < 0.70
	ConfidenceLow                           // score >= 0.70
	ConfidenceMedium                        // score >= 0.85
	ConfidenceHigh                          // score >= 0.95
)

func (c MatchConfidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

// MatchResult is the best candidate for a query.
type MatchResult struct {
	Title      string  // winning candidate, empty when Confidence is none
	Score      float64 // adjusted Jaro-Winkler similarity, 0.0-1.0
	Confidence MatchConfidence
}

// MatchTitle scores query against every candidate and returns the best one.
//
// Candidates are usually the title variants of one provider record
// (English, Romaji, native). Empty candidates are ignored. Both sides go
// through CleanTitle first, so "Shingeki no Kyojin Season 2" and
// "Shingeki no Kyojin 2" compare equal. When the query carries a number
// (a sequel or season), candidates with the same number win a small bonus
// and candidates without it are penalized.
func MatchTitle(query string, candidates []string) MatchResult {
	best := MatchResult{Confidence: ConfidenceNone}

	cleanQuery := CleanTitle(query)
	queryNumbers := numberRegex.FindAllString(cleanQuery, -1)

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		cleanCandidate := CleanTitle(candidate)

		score := float64(edlib.JaroWinklerSimilarity(cleanQuery, cleanCandidate))
		score = adjustForNumbers(score, queryNumbers, numberRegex.FindAllString(cleanCandidate, -1))

		if score > best.Score {
			best.Title = candidate
			best.Score = score
		}
	}

	switch {
	case best.Score >= 0.95:
		best.Confidence = ConfidenceHigh
	case best.Score >= 0.85:
		best.Confidence = ConfidenceMedium
	case best.Score >= 0.70:
		best.Confidence = ConfidenceLow
	default:
		best.Confidence = ConfidenceNone
		best.Title = ""
	}

	return best
}

func adjustForNumbers(score float64, queryNums, candidateNums []string) float64 {
	if len(queryNums) == 0 {
		return score
	}
	if len(candidateNums) == 0 {
		return score * 0.85
	}

	have := make(map[string]bool, len(candidateNums))
	for _, n := range candidateNums {
		have[n] = true
	}
	for _, n := range queryNums {
		if have[n] {
			return min(score*1.05, 1.0)
		}
	}
	return score * 0.90
}
