package importer

import "errors"

// Failure classes for a single source file. None of them stop a run.
var (
	// ErrConfiguration indicates a required path setting is missing.
	ErrConfiguration = errors.New("configuration error")

	// ErrContainment indicates the source is not under the local root.
	ErrContainment = errors.New("source outside local root")

	// ErrTransfer indicates the upload failed.
	ErrTransfer = errors.New("transfer failed")

	// ErrLink indicates no share link could be obtained.
	ErrLink = errors.New("share link unavailable")

	// ErrWrite indicates a local filesystem or mapping write failed.
	ErrWrite = errors.New("write failed")
)

// failureClass names the class of err for run summaries.
func failureClass(err error) string {
	switch {
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrContainment):
		return "containment"
	case errors.Is(err, ErrTransfer):
		return "transfer"
	case errors.Is(err, ErrLink):
		return "link"
	case errors.Is(err, ErrWrite):
		return "write"
	default:
		return "unexpected"
	}
}
