// Package state persists ingested transcription data in a local SQLite
// database so repeated decode invocations do not re-read the source
// file. It is an ingestion cache only: decode results are never
// persisted, and the engine stays stateless across runs.
package state

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/leapstack-labs/glyphdec/internal/ingest"
	"github.com/leapstack-labs/glyphdec/pkg/token"
)

// Store is the SQLite-backed corpus store.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the corpus store at path and runs any
// pending migrations. Use ":memory:" for an in-memory store.
func Open(path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
		dsn = fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", path)
	} else {
		dsn = ":memory:?_pragma=foreign_keys(1)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus store: %w", err)
	}
	if path == ":memory:" {
		// Every pooled connection to :memory: would get its own database.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping corpus store: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the store.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the store's database path.
func (s *Store) Path() string {
	return s.path
}

// IngestInfo summarizes one recorded ingestion run.
type IngestInfo struct {
	ID         string
	SourcePath string
	IngestedAt time.Time
	FolioCount int
	TokenCount int
	Skipped    int
}

// RecordIngest stores an ingestion result, replacing any folio already
// present with the same id. Re-ingesting the same file is therefore
// idempotent with respect to folio contents.
func (s *Store) RecordIngest(res *ingest.Result, sourcePath string) (*IngestInfo, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin ingest transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	info := &IngestInfo{
		ID:         uuid.New().String(),
		SourcePath: sourcePath,
		IngestedAt: time.Now().UTC(),
		FolioCount: len(res.Folios),
		Skipped:    res.Skipped,
	}
	for _, f := range res.Folios {
		info.TokenCount += f.TokenCount()
	}

	if _, err := tx.Exec(
		`INSERT INTO ingests (id, source_path, ingested_at, folio_count, token_count, skipped)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		info.ID, info.SourcePath, info.IngestedAt, info.FolioCount, info.TokenCount, info.Skipped,
	); err != nil {
		return nil, fmt.Errorf("failed to record ingest: %w", err)
	}

	for seq, f := range res.Folios {
		if _, err := tx.Exec(`DELETE FROM tokens WHERE folio_id = ?`, f.ID); err != nil {
			return nil, fmt.Errorf("failed to clear folio %s: %w", f.ID, err)
		}
		if _, err := tx.Exec(`DELETE FROM folios WHERE id = ?`, f.ID); err != nil {
			return nil, fmt.Errorf("failed to clear folio %s: %w", f.ID, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO folios (id, ingest_id, seq) VALUES (?, ?, ?)`,
			f.ID, info.ID, seq,
		); err != nil {
			return nil, fmt.Errorf("failed to insert folio %s: %w", f.ID, err)
		}
		for _, line := range f.Lines {
			for _, tok := range line.Tokens {
				if _, err := tx.Exec(
					`INSERT INTO tokens (folio_id, line, position, system, spelling)
					 VALUES (?, ?, ?, ?, ?)`,
					f.ID, tok.Pos.Line, tok.Pos.Index, tok.System.String(), tok.Spelling,
				); err != nil {
					return nil, fmt.Errorf("failed to insert token %s: %w", tok.Pos, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit ingest: %w", err)
	}
	return info, nil
}

// FolioInfo summarizes one stored folio.
type FolioInfo struct {
	ID     string
	Lines  int
	Tokens int
}

// Folios lists stored folios in ingestion order.
func (s *Store) Folios() ([]FolioInfo, error) {
	rows, err := s.db.Query(
		`SELECT f.id,
		        COUNT(DISTINCT t.line),
		        COUNT(t.spelling)
		 FROM folios f LEFT JOIN tokens t ON t.folio_id = f.id
		 GROUP BY f.id ORDER BY f.seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to list folios: %w", err)
	}
	defer rows.Close()

	var infos []FolioInfo
	for rows.Next() {
		var fi FolioInfo
		if err := rows.Scan(&fi.ID, &fi.Lines, &fi.Tokens); err != nil {
			return nil, fmt.Errorf("failed to scan folio row: %w", err)
		}
		infos = append(infos, fi)
	}
	return infos, rows.Err()
}

// LoadFolio reads one folio's tokens back in (line, position) order.
// The second return is false when the folio is not in the store.
func (s *Store) LoadFolio(id string) (*ingest.RawFolio, bool, error) {
	var exists int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM folios WHERE id = ?`, id).Scan(&exists)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check folio %s: %w", id, err)
	}
	if exists == 0 {
		return nil, false, nil
	}

	rows, err := s.db.Query(
		`SELECT line, position, system, spelling
		 FROM tokens WHERE folio_id = ?
		 ORDER BY line, position`, id)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load folio %s: %w", id, err)
	}
	defer rows.Close()

	folio := &ingest.RawFolio{ID: id}
	for rows.Next() {
		var line, position int
		var system, spelling string
		if err := rows.Scan(&line, &position, &system, &spelling); err != nil {
			return nil, false, fmt.Errorf("failed to scan token row: %w", err)
		}
		sys, _ := token.ParseSourceSystem(system)
		tok := token.New(spelling, id, line, position, sys)
		if n := len(folio.Lines); n > 0 && folio.Lines[n-1].Number == line {
			folio.Lines[n-1].Tokens = append(folio.Lines[n-1].Tokens, tok)
		} else {
			folio.Lines = append(folio.Lines, ingest.RawLine{Number: line, Tokens: []token.Token{tok}})
		}
	}
	return folio, true, rows.Err()
}

// LoadAll reads every stored folio in ingestion order.
func (s *Store) LoadAll() ([]*ingest.RawFolio, error) {
	infos, err := s.Folios()
	if err != nil {
		return nil, err
	}
	folios := make([]*ingest.RawFolio, 0, len(infos))
	for _, fi := range infos {
		f, ok, err := s.LoadFolio(fi.ID)
		if err != nil {
			return nil, err
		}
		if ok {
			folios = append(folios, f)
		}
	}
	return folios, nil
}
