package mapping

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"path/filepath"
	"time"
)

// pageSize bounds how many rows IterateAll holds at once.
const pageSize = 100

// querier abstracts *sql.DB and *sql.Tx for shared query logic.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Store provides access to the mappings table.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore creates a mapping store over an opened and migrated database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Upsert inserts or merges rec into the store and returns the stored row.
// Paths are made absolute. See Merge for the field rules.
func (s *Store) Upsert(ctx context.Context, rec Record) (Record, error) {
	if rec.SourcePath == "" {
		return Record{}, fmt.Errorf("upsert mapping: empty source path")
	}
	if rec.MetadataStatus != nil && !rec.MetadataStatus.Valid() {
		return Record{}, fmt.Errorf("upsert mapping: %w: status %q", ErrConstraint, *rec.MetadataStatus)
	}

	var err error
	if rec.SourcePath, err = filepath.Abs(rec.SourcePath); err != nil {
		return Record{}, fmt.Errorf("resolve source path: %w", err)
	}
	if rec.StrmPath != "" {
		if rec.StrmPath, err = filepath.Abs(rec.StrmPath); err != nil {
			return Record{}, fmt.Errorf("resolve strm path: %w", err)
		}
	}
	if rec.LastUpdated.IsZero() {
		rec.LastUpdated = s.now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Record{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := getRecord(ctx, tx, rec.SourcePath)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Record{}, err
	}

	merged := Merge(existing, rec)
	if merged.StrmPath == "" {
		return Record{}, fmt.Errorf("upsert mapping %s: %w: strm path required", rec.SourcePath, ErrConstraint)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO mappings (source_path, strm_path, seafile_url, last_updated, metadata_status, metadata_info)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(source_path) DO UPDATE SET
			strm_path = excluded.strm_path,
			seafile_url = excluded.seafile_url,
			last_updated = excluded.last_updated,
			metadata_status = excluded.metadata_status,
			metadata_info = excluded.metadata_info`,
		merged.SourcePath, merged.StrmPath, merged.RemoteShareURL, merged.LastUpdated.UTC(),
		statusArg(merged.MetadataStatus), merged.MetadataInfo,
	)
	if err != nil {
		return Record{}, fmt.Errorf("upsert mapping: %w", mapSQLiteError(err))
	}

	if err := tx.Commit(); err != nil {
		return Record{}, fmt.Errorf("commit mapping: %w", err)
	}
	return merged, nil
}

// Get returns the mapping for sourcePath, or ErrNotFound.
func (s *Store) Get(ctx context.Context, sourcePath string) (*Record, error) {
	abs, err := filepath.Abs(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("resolve source path: %w", err)
	}
	return getRecord(ctx, s.db, abs)
}

// FindByStrm returns the mapping whose pointer file is strmPath.
func (s *Store) FindByStrm(ctx context.Context, strmPath string) (*Record, error) {
	abs, err := filepath.Abs(strmPath)
	if err != nil {
		return nil, fmt.Errorf("resolve strm path: %w", err)
	}
	row := s.db.QueryRowContext(ctx, `
		SELECT source_path, strm_path, seafile_url, last_updated, metadata_status, metadata_info
		FROM mappings WHERE strm_path = ? ORDER BY source_path LIMIT 1`, abs)
	rec, err := scanRecord(row)
	if err != nil {
		return nil, fmt.Errorf("find mapping by strm %s: %w", abs, err)
	}
	return rec, nil
}

// Delete removes the mapping for sourcePath. Deleting a missing row is not
// an error. The path is used verbatim, as yielded by IterateAll.
func (s *Store) Delete(ctx context.Context, sourcePath string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM mappings WHERE source_path = ?", sourcePath); err != nil {
		return fmt.Errorf("delete mapping %s: %w", sourcePath, mapSQLiteError(err))
	}
	return nil
}

// IterateAll yields every (source, strm) pair ordered by source path. Rows
// are fetched a page at a time and no query is held open while the caller
// runs, so the loop body may use the store. Each call starts over.
func (s *Store) IterateAll(ctx context.Context) iter.Seq2[Pair, error] {
	return func(yield func(Pair, error) bool) {
		after := ""
		for {
			page, err := s.page(ctx, after)
			if err != nil {
				yield(Pair{}, err)
				return
			}
			for _, p := range page {
				if !yield(p, nil) {
					return
				}
			}
			if len(page) < pageSize {
				return
			}
			after = page[len(page)-1].SourcePath
		}
	}
}

func (s *Store) page(ctx context.Context, after string) ([]Pair, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT source_path, strm_path FROM mappings
		WHERE source_path > ? ORDER BY source_path LIMIT ?`, after, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list mappings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	page := make([]Pair, 0, pageSize)
	for rows.Next() {
		var p Pair
		if err := rows.Scan(&p.SourcePath, &p.StrmPath); err != nil {
			return nil, fmt.Errorf("scan mapping: %w", err)
		}
		page = append(page, p)
	}
	return page, rows.Err()
}

// List returns mappings matching f and the total count before paging.
func (s *Store) List(ctx context.Context, f Filter) ([]*Record, int, error) {
	where := ""
	var args []any
	if f.Status != nil {
		where = "WHERE metadata_status = ?"
		args = append(args, string(*f.Status))
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM mappings "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count mappings: %w", err)
	}

	query := `SELECT source_path, strm_path, seafile_url, last_updated, metadata_status, metadata_info
		FROM mappings ` + where + ` ORDER BY last_updated DESC, source_path`
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list mappings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate mappings: %w", err)
	}
	return out, total, nil
}

func getRecord(ctx context.Context, q querier, sourcePath string) (*Record, error) {
	row := q.QueryRowContext(ctx, `
		SELECT source_path, strm_path, seafile_url, last_updated, metadata_status, metadata_info
		FROM mappings WHERE source_path = ?`, sourcePath)
	rec, err := scanRecord(row)
	if err != nil {
		return nil, fmt.Errorf("get mapping %s: %w", sourcePath, err)
	}
	return rec, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (*Record, error) {
	var (
		rec     Record
		url     sql.NullString
		updated sql.NullTime
		status  sql.NullString
		info    sql.NullString
	)
	if err := sc.Scan(&rec.SourcePath, &rec.StrmPath, &url, &updated, &status, &info); err != nil {
		return nil, mapSQLiteError(err)
	}
	if url.Valid {
		rec.RemoteShareURL = &url.String
	}
	if updated.Valid {
		rec.LastUpdated = updated.Time
	}
	if status.Valid {
		st := Status(status.String)
		rec.MetadataStatus = &st
	}
	if info.Valid {
		rec.MetadataInfo = &info.String
	}
	return &rec, nil
}

func statusArg(s *Status) any {
	if s == nil {
		return nil
	}
	return string(*s)
}
