// Package tools wraps the external command-line programs the pipeline
// drives: rclone for transfers and ffmpeg for thumbnails.
package tools

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
)

// ErrToolMissing is returned when the executable cannot be found.
var ErrToolMissing = errors.New("executable not found")

// lookup resolves name through PATH. Names containing a separator are
// checked as given.
func lookup(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrToolMissing, name)
	}
	return path, nil
}

// runCommand runs a command and streams stdout/stderr line-by-line to onLine.
// The last stderr line is folded into the error on a non-zero exit.
func runCommand(ctx context.Context, onLine func(string), name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return err
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		lastLine string
	)
	consume := func(r io.Reader, keep bool) {
		defer wg.Done()
		s := bufio.NewScanner(r)
		buf := make([]byte, 0, 64*1024)
		s.Buffer(buf, 1024*1024)
		for s.Scan() {
			line := s.Text()
			mu.Lock()
			if keep && line != "" {
				lastLine = line
			}
			onLine(line)
			mu.Unlock()
		}
	}

	wg.Add(2)
	go consume(stdout, false)
	go consume(stderr, true)
	wg.Wait()

	if err := cmd.Wait(); err != nil {
		if lastLine != "" {
			return fmt.Errorf("%w: %s", err, lastLine)
		}
		return err
	}
	return nil
}
