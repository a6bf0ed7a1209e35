package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/louisbranch/vttbridge/internal/platform/errors"
	sqlitemigrate "github.com/louisbranch/vttbridge/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/vttbridge/internal/services/bridge/core/filter"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/character"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/native"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/systems"
	"github.com/louisbranch/vttbridge/internal/services/bridge/host"
	"github.com/louisbranch/vttbridge/internal/services/bridge/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists actor documents in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

func formatTime(value time.Time) string {
	return value.UTC().Format(time.RFC3339Nano)
}

// Open opens a SQLite host store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// Put inserts or replaces a whole actor document.
func (s *Store) Put(ctx context.Context, record *native.Record) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("record is required")
	}
	id, err := host.NormalizeIdentifier(record.ID())
	if err != nil {
		return err
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO actors (id, name, actor_type, game_system, document, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   actor_type = excluded.actor_type,
		   game_system = excluded.game_system,
		   document = excluded.document,
		   updated_at = excluded.updated_at`,
		id,
		strings.TrimSpace(record.Name()),
		record.Type(),
		string(systems.Detect(record)),
		record.String(),
		formatTime(s.now()),
	)
	if err != nil {
		return fmt.Errorf("put actor: %w", err)
	}
	return nil
}

// Get returns an actor by id, falling back to a case-insensitive name match.
func (s *Store) Get(ctx context.Context, identifier string) (*native.Record, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	identifier, err := host.NormalizeIdentifier(identifier)
	if err != nil {
		return nil, err
	}

	var document string
	err = s.sqlDB.QueryRowContext(
		ctx,
		`SELECT document
		   FROM actors
		  WHERE id = ? OR name = ? COLLATE NOCASE
		  ORDER BY CASE WHEN id = ? THEN 0 ELSE 1 END, id
		  LIMIT 1`,
		identifier,
		identifier,
		identifier,
	).Scan(&document)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, host.NotFound(identifier)
		}
		return nil, fmt.Errorf("get actor: %w", err)
	}
	return decodeDocument(document)
}

// List returns actors ordered by name, narrowed by filter and type.
func (s *Store) List(ctx context.Context, opts host.ListOptions) ([]*native.Record, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	cond, err := filter.Actors.Parse(opts.Filter)
	if err != nil {
		return nil, invalidFilter(opts.Filter, err)
	}
	var clauses []string
	var params []any
	if !cond.IsEmpty() {
		clauses = append(clauses, cond.Clause)
		params = append(params, cond.Params...)
	}
	if actorType := strings.TrimSpace(opts.Type); actorType != "" {
		clauses = append(clauses, "actor_type = ?")
		params = append(params, actorType)
	}

	query := "SELECT document FROM actors"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY name COLLATE NOCASE, id LIMIT ?"
	params = append(params, host.PageSize(opts.PageSize))

	rows, err := s.sqlDB.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("list actors: %w", err)
	}
	defer rows.Close()

	var records []*native.Record
	for rows.Next() {
		var document string
		if err := rows.Scan(&document); err != nil {
			return nil, fmt.Errorf("list actors: %w", err)
		}
		record, err := decodeDocument(document)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list actors: %w", err)
	}
	return records, nil
}

// Save writes an exported document back. The whole record is stored, so the
// patch is not consulted.
func (s *Store) Save(ctx context.Context, record *native.Record, _ character.Patch) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("record is required")
	}
	id, err := host.NormalizeIdentifier(record.ID())
	if err != nil {
		return err
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE actors
		    SET name = ?, document = ?, updated_at = ?
		  WHERE id = ?`,
		strings.TrimSpace(record.Name()),
		record.String(),
		formatTime(s.now()),
		id,
	)
	if err != nil {
		return host.Failure(apperrors.CodeCharacterUpdateFailed, "save actor", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("save actor: %w", err)
	}
	if affected == 0 {
		return host.NotFound(id)
	}
	return nil
}

func decodeDocument(document string) (*native.Record, error) {
	record, err := native.Parse([]byte(document))
	if err != nil {
		return nil, host.Failure(apperrors.CodeCharacterInvalidRecord, "decode actor document", err)
	}
	return record, nil
}

func invalidFilter(expr string, cause error) error {
	return apperrors.WrapWithMetadata(
		apperrors.CodeInvalidFilter,
		"parse filter",
		map[string]string{"Filter": expr},
		cause,
	)
}

var _ host.Store = (*Store)(nil)
