package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/serenity-hq/screener/internal/matching"
)

// Records are stored as JSON documents with indexed columns extracted for
// the queries the service layer runs. Schema changes append columns; the
// documents carry the full shape.
const schema = `
CREATE TABLE IF NOT EXISTS candidates (
	id         TEXT PRIMARY KEY,
	doc        TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS sessions (
	id           TEXT PRIMARY KEY,
	candidate_id TEXT NOT NULL,
	doc          TEXT NOT NULL,
	created_at   DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_candidate ON sessions(candidate_id);
CREATE TABLE IF NOT EXISTS programs (
	id     TEXT PRIMARY KEY,
	status TEXT NOT NULL,
	doc    TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS applications (
	id           TEXT PRIMARY KEY,
	candidate_id TEXT NOT NULL,
	program_id   TEXT NOT NULL,
	match_score  INTEGER NOT NULL,
	doc          TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_applications_candidate ON applications(candidate_id);
CREATE INDEX IF NOT EXISTS idx_applications_program ON applications(program_id);
CREATE TABLE IF NOT EXISTS feedback (
	id         TEXT PRIMARY KEY,
	doc        TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
`

// SQLite is the Store implementation backed by a single SQLite database.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

// Open opens (or creates) the database in dataDir. Pass ":memory:" as
// dataDir for an in-memory database (used by tests).
func Open(dataDir string) (*SQLite, error) {
	var dsn string
	if dataDir == ":memory:" {
		dsn = ":memory:"
	} else {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		dsn = filepath.Join(dataDir, "screener.db")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	// Single connection avoids "database is locked" errors.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting journal mode: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) Candidates() Candidates     { return candidateTable{s.db} }
func (s *SQLite) Sessions() Sessions         { return sessionTable{s.db} }
func (s *SQLite) Programs() Programs         { return programTable{s.db} }
func (s *SQLite) Applications() Applications { return applicationTable{s.db} }
func (s *SQLite) Feedback() Feedback         { return feedbackTable{s.db} }

type candidateTable struct{ db *sql.DB }

func (t candidateTable) Put(ctx context.Context, c *Candidate) error {
	doc, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding candidate: %w", err)
	}
	_, err = t.db.ExecContext(ctx,
		`INSERT INTO candidates (id, doc, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET doc = excluded.doc`,
		c.ID, string(doc), c.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving candidate %s: %w", c.ID, err)
	}
	return nil
}

func (t candidateTable) Get(ctx context.Context, id string) (*Candidate, error) {
	var c Candidate
	if err := scanDoc(t.db.QueryRowContext(ctx,
		"SELECT doc FROM candidates WHERE id = ?", id), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (t candidateTable) List(ctx context.Context) ([]*Candidate, error) {
	return queryDocs[Candidate](ctx, t.db,
		"SELECT doc FROM candidates ORDER BY created_at")
}

type sessionTable struct{ db *sql.DB }

func (t sessionTable) Put(ctx context.Context, sess *Session) error {
	doc, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	_, err = t.db.ExecContext(ctx,
		`INSERT INTO sessions (id, candidate_id, doc, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET doc = excluded.doc`,
		sess.ID, sess.CandidateID, string(doc), sess.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving session %s: %w", sess.ID, err)
	}
	return nil
}

func (t sessionTable) Get(ctx context.Context, id string) (*Session, error) {
	var sess Session
	if err := scanDoc(t.db.QueryRowContext(ctx,
		"SELECT doc FROM sessions WHERE id = ?", id), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (t sessionTable) ListByCandidate(ctx context.Context, candidateID string) ([]*Session, error) {
	return queryDocs[Session](ctx, t.db,
		"SELECT doc FROM sessions WHERE candidate_id = ? ORDER BY created_at", candidateID)
}

type programTable struct{ db *sql.DB }

func (t programTable) Put(ctx context.Context, p *matching.Program) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding program: %w", err)
	}
	_, err = t.db.ExecContext(ctx,
		`INSERT INTO programs (id, status, doc) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET status = excluded.status, doc = excluded.doc`,
		p.ID, string(p.Status), string(doc))
	if err != nil {
		return fmt.Errorf("saving program %s: %w", p.ID, err)
	}
	return nil
}

func (t programTable) Get(ctx context.Context, id string) (*matching.Program, error) {
	var p matching.Program
	if err := scanDoc(t.db.QueryRowContext(ctx,
		"SELECT doc FROM programs WHERE id = ?", id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (t programTable) List(ctx context.Context) ([]*matching.Program, error) {
	return queryDocs[matching.Program](ctx, t.db,
		"SELECT doc FROM programs ORDER BY id")
}

func (t programTable) ListLive(ctx context.Context) ([]*matching.Program, error) {
	return queryDocs[matching.Program](ctx, t.db,
		"SELECT doc FROM programs WHERE status = ? ORDER BY id", string(matching.ProgramLive))
}

type applicationTable struct{ db *sql.DB }

func (t applicationTable) Put(ctx context.Context, a *matching.Application) error {
	doc, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encoding application: %w", err)
	}
	_, err = t.db.ExecContext(ctx,
		`INSERT INTO applications (id, candidate_id, program_id, match_score, doc)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET match_score = excluded.match_score, doc = excluded.doc`,
		a.ID, a.CandidateID, a.ProgramID, a.MatchScore, string(doc))
	if err != nil {
		return fmt.Errorf("saving application %s: %w", a.ID, err)
	}
	return nil
}

func (t applicationTable) Get(ctx context.Context, id string) (*matching.Application, error) {
	var a matching.Application
	if err := scanDoc(t.db.QueryRowContext(ctx,
		"SELECT doc FROM applications WHERE id = ?", id), &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (t applicationTable) ListByCandidate(ctx context.Context, candidateID string) ([]*matching.Application, error) {
	return queryDocs[matching.Application](ctx, t.db,
		"SELECT doc FROM applications WHERE candidate_id = ? ORDER BY match_score DESC, program_id",
		candidateID)
}

func (t applicationTable) ListByProgram(ctx context.Context, programID string) ([]*matching.Application, error) {
	return queryDocs[matching.Application](ctx, t.db,
		"SELECT doc FROM applications WHERE program_id = ? ORDER BY match_score DESC, candidate_id",
		programID)
}

type feedbackTable struct{ db *sql.DB }

func (t feedbackTable) Add(ctx context.Context, f *InterviewFeedback) error {
	doc, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encoding feedback: %w", err)
	}
	_, err = t.db.ExecContext(ctx,
		"INSERT INTO feedback (id, doc, created_at) VALUES (?, ?, ?)",
		f.ID, string(doc), f.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving feedback %s: %w", f.ID, err)
	}
	return nil
}

func (t feedbackTable) List(ctx context.Context) ([]*InterviewFeedback, error) {
	return queryDocs[InterviewFeedback](ctx, t.db,
		"SELECT doc FROM feedback ORDER BY created_at")
}

func scanDoc(row *sql.Row, dst any) error {
	var doc string
	if err := row.Scan(&doc); err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}
	if err := json.Unmarshal([]byte(doc), dst); err != nil {
		return fmt.Errorf("decoding record: %w", err)
	}
	return nil
}

func queryDocs[T any](ctx context.Context, db *sql.DB, query string, args ...any) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*T
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		v := new(T)
		if err := json.Unmarshal([]byte(doc), v); err != nil {
			return nil, fmt.Errorf("decoding record: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
