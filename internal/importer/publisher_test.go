package importer

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/strmsync/internal/mapping"
	"github.com/vmunix/strmsync/internal/metadata"
	"github.com/vmunix/strmsync/internal/tools"
	"github.com/vmunix/strmsync/pkg/release"
)

const shareURL = "https://sf.example/f/abc123/"

func frieren() *metadata.Series {
	return &metadata.Series{
		ProviderID:    154587,
		TitleEnglish:  "Frieren: Beyond Journey's End",
		TitleRomaji:   "Sousou no Frieren",
		CoverImageURL: "https://img.example/154587.jpg",
		SeasonYear:    2023,
		Episodes:      28,
		Match:         release.MatchResult{Title: "Sousou no Frieren", Score: 1, Confidence: release.ConfidenceHigh},
	}
}

func TestPublisher_Publish(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	src := filepath.Join(h.root, "Frieren", "Sousou no Frieren - 05.mkv")
	writeFile(t, src, "video")
	writeFile(t, filepath.Join(h.root, "Frieren", "Sousou no Frieren - 05.ass"), "subs")
	writeFile(t, filepath.Join(h.root, "Frieren", "Sousou no Frieren - 06.ass"), "other episode")

	id := Canonicalize(src)
	meta := frieren()
	plan, err := NewPlanner(h.root, h.lib, "Videos", "").Plan(src, "Frieren_ Beyond Journey's End", id.Season)
	require.NoError(t, err)

	h.artwork.EXPECT().Download(gomock.Any(), meta.CoverImageURL, gomock.Any()).DoAndReturn(fakeDownload)
	h.uploader.EXPECT().Upload(gomock.Any(), src, "/Videos/Frieren").Return(nil)
	h.links.EXPECT().GetShareLink(gomock.Any(), "/Videos/Frieren/Sousou no Frieren - 05.mkv").Return(shareURL, nil)
	h.thumbs.EXPECT().ExtractFrame(gomock.Any(), src, gomock.Any(), 10*time.Second).
		DoAndReturn(func(_ context.Context, _, out string, _ time.Duration) error {
			return os.WriteFile(out, []byte("jpeg"), 0644)
		})

	out := h.publisher(PublisherOptions{Thumbnails: true}).Publish(ctx, src, id, meta, plan)
	require.True(t, out.OK(), "publish failed: %v", out.Err)
	assert.True(t, out.Mapped)
	assert.Equal(t, 1, out.Subtitles)

	season := plan.DestinationDir
	strm := filepath.Join(season, "Sousou no Frieren - S01E05.strm")
	assert.Equal(t, strm, out.StrmPath)

	body, err := os.ReadFile(strm)
	require.NoError(t, err)
	assert.Equal(t, shareURL+"?dl=1#Sousou%20no%20Frieren%20-%20S01E05.mkv", string(body))

	assert.FileExists(t, filepath.Join(season, "Sousou no Frieren - S01E05.jpg"))
	assert.FileExists(t, filepath.Join(season, "Sousou no Frieren - S01E05.nfo"))
	assert.FileExists(t, filepath.Join(season, "Sousou no Frieren - S01E05.ass"))
	assert.NoFileExists(t, filepath.Join(season, "Sousou no Frieren - S01E06.ass"))
	assert.FileExists(t, filepath.Join(filepath.Dir(season), "tvshow.nfo"))
	assert.FileExists(t, filepath.Join(filepath.Dir(season), "poster.jpg"))
	assert.FileExists(t, filepath.Join(filepath.Dir(season), "folder.jpg"))
	assert.FileExists(t, src, "source kept without delete_after_upload")

	rec, err := h.store.Get(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, strm, rec.StrmPath)
	assert.Equal(t, shareURL, *rec.RemoteShareURL)
	assert.Equal(t, mapping.StatusSuccess, *rec.MetadataStatus)

	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(*rec.MetadataInfo), &info))
	assert.EqualValues(t, 154587, info["provider_id"])
	assert.Equal(t, "Frieren: Beyond Journey's End", info["title"])
	assert.Equal(t, "high", info["match"].(map[string]any)["confidence"])
}

func TestPublisher_UploadFailureWritesNothing(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	src := filepath.Join(h.root, "Show - 01.mkv")
	writeFile(t, src, "video")
	id := Canonicalize(src)
	plan, err := NewPlanner(h.root, h.lib, "Videos", "").Plan(src, "Show", id.Season)
	require.NoError(t, err)

	h.uploader.EXPECT().Upload(gomock.Any(), src, gomock.Any()).Return(errors.New("rclone exit 1"))

	out := h.publisher(PublisherOptions{DeleteAfterUpload: true}).Publish(ctx, src, id, nil, plan)
	assert.ErrorIs(t, out.Err, ErrTransfer)
	assert.Equal(t, StepUpload, out.Step)

	entries, _ := os.ReadDir(plan.DestinationDir)
	assert.Empty(t, entries, "no artifacts after a failed upload")

	_, err = h.store.Get(ctx, src)
	assert.ErrorIs(t, err, mapping.ErrNotFound)
	assert.FileExists(t, src)
}

func TestPublisher_LinkFailureWritesNoStrm(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	src := filepath.Join(h.root, "Show - 01.mkv")
	writeFile(t, src, "video")
	id := Canonicalize(src)
	plan, err := NewPlanner(h.root, h.lib, "Videos", "").Plan(src, "Show", id.Season)
	require.NoError(t, err)

	h.uploader.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	h.links.EXPECT().GetShareLink(gomock.Any(), gomock.Any()).Return("", errors.New("403 Forbidden"))

	out := h.publisher(PublisherOptions{}).Publish(ctx, src, id, nil, plan)
	assert.ErrorIs(t, out.Err, ErrLink)
	assert.NoFileExists(t, filepath.Join(plan.DestinationDir, "Show - S01E01.strm"))

	_, err = h.store.Get(ctx, src)
	assert.ErrorIs(t, err, mapping.ErrNotFound)
}

func TestPublisher_NoMetadataRecordsFailure(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	src := filepath.Join(h.root, "Show", "Show - 01.mkv")
	writeFile(t, src, "video")
	id := Canonicalize(src)
	plan, err := NewPlanner(h.root, h.lib, "Videos", "").Plan(src, "Show", id.Season)
	require.NoError(t, err)

	h.uploader.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	h.links.EXPECT().GetShareLink(gomock.Any(), gomock.Any()).Return(shareURL, nil)

	out := h.publisher(PublisherOptions{DeleteAfterUpload: true}).Publish(ctx, src, id, nil, plan)
	require.True(t, out.OK())
	assert.True(t, out.Deleted)
	assert.NoFileExists(t, src)

	assert.Equal(t, filepath.Join(h.lib, "Anime", "Show", "Season 01", "Show - S01E01.strm"), out.StrmPath)
	assert.NoFileExists(t, filepath.Join(h.lib, "Anime", "Show", "tvshow.nfo"))
	assert.NoFileExists(t, filepath.Join(plan.DestinationDir, "Show - S01E01.nfo"))

	rec, err := h.store.Get(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, mapping.StatusFailed, *rec.MetadataStatus)
	assert.JSONEq(t, `{"error":"Not found","query":"Show"}`, *rec.MetadataInfo)
}

func TestPublisher_ThumbnailToolMissingIsQuiet(t *testing.T) {
	h := newHarness(t)

	src := filepath.Join(h.root, "Show - 01.mkv")
	writeFile(t, src, "video")
	id := Canonicalize(src)
	plan, err := NewPlanner(h.root, h.lib, "Videos", "").Plan(src, "Show", id.Season)
	require.NoError(t, err)

	h.uploader.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	h.links.EXPECT().GetShareLink(gomock.Any(), gomock.Any()).Return(shareURL, nil)
	h.thumbs.EXPECT().ExtractFrame(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(tools.ErrToolMissing)

	out := h.publisher(PublisherOptions{Thumbnails: true}).Publish(context.Background(), src, id, nil, plan)
	assert.True(t, out.OK())
}

func TestPublisher_ExistingThumbnailKept(t *testing.T) {
	h := newHarness(t)

	src := filepath.Join(h.root, "Show - 01.mkv")
	writeFile(t, src, "video")
	id := Canonicalize(src)
	plan, err := NewPlanner(h.root, h.lib, "Videos", "").Plan(src, "Show", id.Season)
	require.NoError(t, err)
	writeFile(t, filepath.Join(plan.DestinationDir, "Show - S01E01.jpg"), "old thumb")

	h.uploader.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	h.links.EXPECT().GetShareLink(gomock.Any(), gomock.Any()).Return(shareURL, nil)

	out := h.publisher(PublisherOptions{Thumbnails: true}).Publish(context.Background(), src, id, nil, plan)
	assert.True(t, out.OK())
}

func TestStrmContent(t *testing.T) {
	assert.Equal(t, "https://sf.example/f/x/?dl=1#Show%20-%20S01E01.mkv",
		strmContent("https://sf.example/f/x/", "Show - S01E01.mkv"))
	assert.Equal(t, "https://sf.example/f/x/?dl=1&p=2#a.mkv",
		strmContent("https://sf.example/f/x/?p=2", "a.mkv"))
}

func TestFindSubtitles(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "ep.mkv")
	writeFile(t, src, "v")
	writeFile(t, filepath.Join(dir, "ep.ass"), "")
	writeFile(t, filepath.Join(dir, "ep.SRT"), "")
	writeFile(t, filepath.Join(dir, "ep.txt"), "")
	writeFile(t, filepath.Join(dir, "ep2.ass"), "")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "ep.vtt"), 0755))

	subs, err := findSubtitles(src)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{filepath.Join(dir, "ep.ass"), filepath.Join(dir, "ep.SRT")}, subs)
}
