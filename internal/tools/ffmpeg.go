package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"
)

// ErrEmptyOutput is returned when ffmpeg exits cleanly without writing a frame.
var ErrEmptyOutput = errors.New("empty output file")

// FFmpeg extracts still frames from videos.
type FFmpeg struct {
	binary string
	log    *slog.Logger
}

// NewFFmpeg creates a frame extractor. An empty binary means "ffmpeg".
func NewFFmpeg(binary string, log *slog.Logger) *FFmpeg {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &FFmpeg{binary: binary, log: log.With("component", "ffmpeg")}
}

// ExtractFrame writes the frame at offset in video to out as an image.
// Returns ErrToolMissing when ffmpeg is not installed.
func (f *FFmpeg) ExtractFrame(ctx context.Context, video, out string, offset time.Duration) error {
	bin, err := lookup(f.binary)
	if err != nil {
		return err
	}

	var lines []string
	err = runCommand(ctx, func(line string) {
		lines = append(lines, line)
	}, bin, "-i", video, "-ss", timestamp(offset), "-vframes", "1", out, "-y")
	if err != nil {
		for _, l := range lines {
			f.log.Debug(l)
		}
		_ = os.Remove(out)
		return fmt.Errorf("ffmpeg %s: %w", video, err)
	}

	info, err := os.Stat(out)
	if err != nil {
		return fmt.Errorf("ffmpeg %s: %w", video, err)
	}
	if info.Size() == 0 {
		_ = os.Remove(out)
		return fmt.Errorf("ffmpeg %s: %w", video, ErrEmptyOutput)
	}
	return nil
}

// timestamp formats d as HH:MM:SS.
func timestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	s := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, s/60%60, s%60)
}
