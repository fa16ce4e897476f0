// Package mapping persists the association between a source video and the
// library artifacts published for it.
package mapping

import "time"

// Status is the outcome of the metadata lookup for a mapping.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusSuccess || s == StatusFailed
}

// Record is one row of the mappings table. Nil pointer fields are unset.
type Record struct {
	SourcePath     string
	StrmPath       string
	RemoteShareURL *string
	MetadataStatus *Status
	MetadataInfo   *string // JSON
	LastUpdated    time.Time
}

// Pair is the reduced row yielded by Store.IterateAll.
type Pair struct {
	SourcePath string
	StrmPath   string
}

// Filter specifies criteria for listing mappings.
type Filter struct {
	Status *Status
	Limit  int // 0 = no limit
	Offset int
}

// Merge combines an update with the stored record. StrmPath and LastUpdated
// are always taken from the update; every other field keeps its existing
// value when the update leaves it unset. existing may be nil.
func Merge(existing *Record, update Record) Record {
	if existing == nil {
		return update
	}

	merged := update
	if merged.StrmPath == "" {
		merged.StrmPath = existing.StrmPath
	}
	if merged.RemoteShareURL == nil {
		merged.RemoteShareURL = existing.RemoteShareURL
	}
	if merged.MetadataStatus == nil {
		merged.MetadataStatus = existing.MetadataStatus
	}
	if merged.MetadataInfo == nil {
		merged.MetadataInfo = existing.MetadataInfo
	}
	return merged
}
