package importer

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/vmunix/strmsync/internal/library"
)

// Plan holds the locations derived for one source file.
type Plan struct {
	// RemoteUploadPath is the file's path as the uploader addresses it,
	// including the upload prefix.
	RemoteUploadPath string
	// RemoteShareLookupPath is the same file as the link provider
	// addresses it, relative to the library.
	RemoteShareLookupPath string
	// DestinationDir is the local season folder for the pointer file.
	DestinationDir string
}

// RemoteUploadDir is the parent of RemoteUploadPath.
func (p *Plan) RemoteUploadDir() string {
	return path.Dir(p.RemoteUploadPath)
}

// Planner maps source files onto remote and library paths.
type Planner struct {
	localRoot    string
	libraryRoot  string
	remoteRoot   string
	uploadPrefix string
}

// NewPlanner creates a planner.
func NewPlanner(localRoot, libraryRoot, remoteRoot, uploadPrefix string) *Planner {
	return &Planner{
		localRoot:    localRoot,
		libraryRoot:  libraryRoot,
		remoteRoot:   remoteRoot,
		uploadPrefix: uploadPrefix,
	}
}

// Relative returns source relative to the local root, with forward slashes.
// It fails with ErrContainment when source is not below the root.
func (p *Planner) Relative(source string) (string, error) {
	if p.localRoot == "" {
		return "", fmt.Errorf("%w: local root not set", ErrConfiguration)
	}

	root, err := resolvePath(p.localRoot)
	if err != nil {
		return "", fmt.Errorf("%w: local root: %v", ErrConfiguration, err)
	}
	src, err := resolvePath(source)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrContainment, source, err)
	}

	rel, err := filepath.Rel(root, src)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s not under %s", ErrContainment, source, p.localRoot)
	}
	return filepath.ToSlash(rel), nil
}

// Plan computes the paths for source, filed under seriesDir and season.
// seriesDir must already be sanitized.
func (p *Planner) Plan(source, seriesDir, season string) (*Plan, error) {
	if p.libraryRoot == "" {
		return nil, fmt.Errorf("%w: library root not set", ErrConfiguration)
	}
	if seriesDir == "" {
		return nil, fmt.Errorf("%w: empty series folder for %s", ErrConfiguration, source)
	}

	rel, err := p.Relative(source)
	if err != nil {
		return nil, err
	}

	return &Plan{
		RemoteUploadPath:      remotePath(p.uploadPrefix, p.remoteRoot, rel),
		RemoteShareLookupPath: remotePath(p.remoteRoot, rel),
		DestinationDir:        filepath.Join(p.libraryRoot, library.AnimeDir, seriesDir, library.SeasonDir(season)),
	}, nil
}

// remotePath joins segments with forward slashes into a rooted, clean path.
func remotePath(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s = strings.ReplaceAll(s, `\`, "/"); s != "" {
			parts = append(parts, s)
		}
	}
	return path.Clean("/" + strings.Join(parts, "/"))
}

// resolvePath makes p absolute and resolves symlinks in its longest
// existing prefix.
func resolvePath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	rest := ""
	for dir := abs; ; {
		if real, err := filepath.EvalSymlinks(dir); err == nil {
			return filepath.Join(real, rest), nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs, nil
		}
		rest = filepath.Join(filepath.Base(dir), rest)
		dir = parent
	}
}
