package importer

//go:generate mockgen -source=interfaces.go -destination=mocks/interfaces.go -package=mocks

import (
	"context"
	"time"

	"github.com/vmunix/strmsync/internal/mapping"
	"github.com/vmunix/strmsync/internal/metadata"
)

// Resolver maps a series title to metadata.
type Resolver interface {
	Resolve(ctx context.Context, title string) (*metadata.Series, bool)
}

// Uploader transfers a local file into a remote directory. Uploading a
// file that is already present must succeed without side effects.
type Uploader interface {
	Upload(ctx context.Context, localFile, remoteDir string) error
}

// LinkProvider returns a share link for a remote path, creating it when
// needed.
type LinkProvider interface {
	GetShareLink(ctx context.Context, remotePath string) (string, error)
}

// Thumbnailer extracts a still frame from a video.
type Thumbnailer interface {
	ExtractFrame(ctx context.Context, video, out string, offset time.Duration) error
}

// MappingWriter records published files.
type MappingWriter interface {
	Upsert(ctx context.Context, rec mapping.Record) (mapping.Record, error)
}
