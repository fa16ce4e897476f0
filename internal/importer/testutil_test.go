package importer

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/strmsync/internal/importer/mocks"
	"github.com/vmunix/strmsync/internal/library"
	libmocks "github.com/vmunix/strmsync/internal/library/mocks"
	"github.com/vmunix/strmsync/internal/mapping"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// harness wires an Importer to mocks, a real in-memory mapping store and
// temp directories for the local and library roots.
type harness struct {
	uploader *mocks.MockUploader
	links    *mocks.MockLinkProvider
	thumbs   *mocks.MockThumbnailer
	resolver *mocks.MockResolver
	artwork  *libmocks.MockArtworkFetcher
	store    *mapping.Store
	root     string
	lib      string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	db, err := mapping.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &harness{
		uploader: mocks.NewMockUploader(ctrl),
		links:    mocks.NewMockLinkProvider(ctrl),
		thumbs:   mocks.NewMockThumbnailer(ctrl),
		resolver: mocks.NewMockResolver(ctrl),
		artwork:  libmocks.NewMockArtworkFetcher(ctrl),
		store:    mapping.NewStore(db),
		root:     t.TempDir(),
		lib:      t.TempDir(),
	}
}

func (h *harness) config() Config {
	return Config{
		LocalRoot:   h.root,
		LibraryRoot: h.lib,
		RemoteRoot:  "Videos",
	}
}

func (h *harness) importer(cfg Config) *Importer {
	return New(cfg, Deps{
		Resolver:    h.resolver,
		Uploader:    h.uploader,
		Links:       h.links,
		Thumbnailer: h.thumbs,
		Sidecars:    library.NewSidecars(h.artwork, testLogger()),
		Mappings:    h.store,
	}, testLogger())
}

func (h *harness) publisher(opts PublisherOptions) *Publisher {
	return NewPublisher(h.uploader, h.links, h.thumbs, library.NewSidecars(h.artwork, testLogger()), h.store, opts, testLogger())
}

func fakeDownload(_ context.Context, _ string, dest string) error {
	return os.WriteFile(dest, []byte("jpeg"), 0644)
}
