package queue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"scribe/internal/config"
)

// Store manages recording persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the outcome database and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.WorkspaceDir, "scribe.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

const itemColumns = `id, source_path, stem, status, speaker_count, speaker_source,
    metadata_json, output_dir, transcript_path, conversation_path, text_path,
    failed_stage, error_message, created_at, updated_at`

// NewRecording inserts a pending record for a discovered recording. If the
// source path is already known, the existing record is returned unchanged.
func (s *Store) NewRecording(ctx context.Context, sourcePath, stem string) (*Item, error) {
	if existing, err := s.GetBySourcePath(ctx, sourcePath); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO recordings (source_path, stem, status, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?)`,
		sourcePath,
		stem,
		StatusPending,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert recording: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID fetches a recording record by identifier.
func (s *Store) GetByID(ctx context.Context, id int64) (*Item, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM recordings WHERE id = ?`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get recording: %w", err)
	}
	return item, nil
}

// GetBySourcePath fetches a recording record by source path.
func (s *Store) GetBySourcePath(ctx context.Context, sourcePath string) (*Item, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM recordings WHERE source_path = ?`, sourcePath)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find recording: %w", err)
	}
	return item, nil
}

// Update persists changes to an existing recording record.
func (s *Store) Update(ctx context.Context, item *Item) error {
	if item == nil {
		return errors.New("item is nil")
	}
	item.UpdatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE recordings
         SET source_path = ?, stem = ?, status = ?, speaker_count = ?, speaker_source = ?,
             metadata_json = ?, output_dir = ?, transcript_path = ?, conversation_path = ?,
             text_path = ?, failed_stage = ?, error_message = ?, updated_at = ?
         WHERE id = ?`,
		item.SourcePath,
		item.Stem,
		item.Status,
		item.SpeakerCount,
		nullableString(item.SpeakerSource),
		nullableString(item.MetadataJSON),
		nullableString(item.OutputDir),
		nullableString(item.TranscriptPath),
		nullableString(item.ConversationPath),
		nullableString(item.TextPath),
		nullableString(item.FailedStage),
		nullableString(item.ErrorMessage),
		item.UpdatedAt.Format(time.RFC3339Nano),
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("update recording: %w", err)
	}
	return nil
}

// List returns all recording records ordered by creation.
func (s *Store) List(ctx context.Context) ([]*Item, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+itemColumns+` FROM recordings ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list recordings: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recording: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Clear removes all recording records.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM recordings`)
	if err != nil {
		return 0, fmt.Errorf("clear recordings: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return affected, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*Item, error) {
	var (
		item             Item
		speakerSource    sql.NullString
		metadataJSON     sql.NullString
		outputDir        sql.NullString
		transcriptPath   sql.NullString
		conversationPath sql.NullString
		textPath         sql.NullString
		failedStage      sql.NullString
		errorMessage     sql.NullString
		createdAt        string
		updatedAt        string
	)

	if err := row.Scan(
		&item.ID,
		&item.SourcePath,
		&item.Stem,
		&item.Status,
		&item.SpeakerCount,
		&speakerSource,
		&metadataJSON,
		&outputDir,
		&transcriptPath,
		&conversationPath,
		&textPath,
		&failedStage,
		&errorMessage,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	item.SpeakerSource = speakerSource.String
	item.MetadataJSON = metadataJSON.String
	item.OutputDir = outputDir.String
	item.TranscriptPath = transcriptPath.String
	item.ConversationPath = conversationPath.String
	item.TextPath = textPath.String
	item.FailedStage = failedStage.String
	item.ErrorMessage = errorMessage.String
	item.CreatedAt = parseTimestamp(createdAt)
	item.UpdatedAt = parseTimestamp(updatedAt)
	return &item, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimestamp(value string) time.Time {
	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts
	}
	return time.Time{}
}
