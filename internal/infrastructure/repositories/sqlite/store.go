package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/packman/internal/domain/entities"
)

const dirMode = 0o755

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// store keeps every document in one table, keyed by (scheme, key).
type store struct {
	db *sql.DB
}

func openStore(path string) (*store, error) {
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if pingErr := db.Ping(); pingErr != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open %q: %w", path, pingErr)
	}

	s := &store{db: db}
	if schemaErr := s.initSchema(); schemaErr != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", schemaErr)
	}

	logger.Debugf("Opened document store %s", path)
	return s, nil
}

func (s *store) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scheme TEXT NOT NULL,
			key TEXT NOT NULL,
			body JSON NOT NULL,
			UNIQUE (scheme, key)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_documents_scheme ON documents(scheme);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

func (s *store) Close() error {
	return s.db.Close()
}

// put inserts the document, replacing the body of an existing one.
func (s *store) put(ctx context.Context, db execer, doc entities.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s document: %w", doc.Scheme(), err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO documents (scheme, key, body) VALUES (?, ?, ?)
		ON CONFLICT(scheme, key) DO UPDATE SET body=excluded.body
	`, string(doc.Scheme()), doc.Key(), body)
	return err
}

// list returns the documents of a scheme in insertion order.
func (s *store) list(ctx context.Context, scheme entities.Scheme) ([]entities.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT body FROM documents WHERE scheme = ? ORDER BY id`, string(scheme))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []entities.Document
	for rows.Next() {
		var body []byte
		if scanErr := rows.Scan(&body); scanErr != nil {
			return nil, scanErr
		}
		doc, decodeErr := entities.DecodeDocument(scheme, body)
		if decodeErr != nil {
			return nil, decodeErr
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (s *store) deleteScheme(ctx context.Context, db execer, scheme entities.Scheme) error {
	_, err := db.ExecContext(ctx, `DELETE FROM documents WHERE scheme = ?`, string(scheme))
	return err
}

// replace swaps every document of a scheme in one transaction.
func (s *store) replace(ctx context.Context, scheme entities.Scheme, docs []entities.Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if deleteErr := s.deleteScheme(ctx, tx, scheme); deleteErr != nil {
		return deleteErr
	}
	for _, doc := range docs {
		if putErr := s.put(ctx, tx, doc); putErr != nil {
			return putErr
		}
	}
	return tx.Commit()
}
