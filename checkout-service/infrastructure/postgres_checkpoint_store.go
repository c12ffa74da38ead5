package infrastructure

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/draftea/checkout-system/checkout-service/domain"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// RunMigrations applies the checkpoint schema
func RunMigrations(db *sql.DB) error {
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return errors.Wrap(err, "failed to open migrations")
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{
		MigrationsTable: "checkout_schema_migrations",
	})
	if err != nil {
		return errors.Wrap(err, "failed to create migration driver")
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return errors.Wrap(err, "failed to create migrate instance")
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "failed to run migrations")
	}
	return nil
}

// PostgresCheckpointStore implements CheckpointStore and CheckpointJournal
// using PostgreSQL. The latest checkpoint of a session lives in
// checkout_checkpoints; every write is also appended to checkpoint_journal,
// which outlives Clear. A version 1 write starts a new run of the session key.
type PostgresCheckpointStore struct {
	db *sqlx.DB
}

// NewPostgresCheckpointStore creates a new PostgresCheckpointStore
func NewPostgresCheckpointStore(db *sqlx.DB) *PostgresCheckpointStore {
	return &PostgresCheckpointStore{db: db}
}

// postgresCheckpoint represents a checkpoint row
type postgresCheckpoint struct {
	SessionKey string    `db:"session_key"`
	Channel    string    `db:"channel"`
	Stage      string    `db:"stage"`
	Data       []byte    `db:"data"`
	SavedAt    time.Time `db:"saved_at"`
	Version    int       `db:"version"`
}

// Save writes the checkpoint and appends it to the journal. A checkpoint older
// than the stored one is refused with ErrCheckpointConflict.
func (s *PostgresCheckpointStore) Save(ctx context.Context, checkpoint *domain.Checkpoint) error {
	row, err := s.toPostgres(checkpoint)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	query := `
		INSERT INTO checkout_checkpoints (
			session_key, channel, stage, data, saved_at, version, updated_at
		) VALUES (
			:session_key, :channel, :stage, :data, :saved_at, :version, NOW()
		)
		ON CONFLICT (session_key) DO UPDATE SET
			channel = EXCLUDED.channel,
			stage = EXCLUDED.stage,
			data = EXCLUDED.data,
			saved_at = EXCLUDED.saved_at,
			version = EXCLUDED.version,
			updated_at = NOW()
		WHERE checkout_checkpoints.version < EXCLUDED.version`

	res, err := tx.NamedExecContext(ctx, query, row)
	if err != nil {
		return errors.Wrap(err, "failed to upsert checkpoint")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return errors.Wrapf(domain.ErrCheckpointConflict, "session %s version %d", checkpoint.SessionKey, checkpoint.Version)
	}

	journal := `
		INSERT INTO checkpoint_journal (
			session_key, stage, data, saved_at, stream_version
		) VALUES (
			:session_key, :stage, :data, :saved_at, :version
		)`

	if _, err := tx.NamedExecContext(ctx, journal, row); err != nil {
		return errors.Wrap(err, "failed to append checkpoint journal")
	}

	return tx.Commit()
}

// Load returns the latest checkpoint of the session
func (s *PostgresCheckpointStore) Load(ctx context.Context, sessionKey string) (*domain.Checkpoint, error) {
	query := `
		SELECT session_key, channel, stage, data, saved_at, version
		FROM checkout_checkpoints
		WHERE session_key = $1`

	var row postgresCheckpoint
	err := s.db.GetContext(ctx, &row, query, sessionKey)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Checkpoint not found
		}
		return nil, errors.Wrap(err, "failed to load checkpoint")
	}

	return s.toDomain(&row)
}

// Clear removes the latest checkpoint; the journal is kept
func (s *PostgresCheckpointStore) Clear(ctx context.Context, sessionKey string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM checkout_checkpoints WHERE session_key = $1", sessionKey)
	if err != nil {
		return errors.Wrap(err, "failed to clear checkpoint")
	}
	return nil
}

// History returns the journal of the latest run of the session, oldest first.
// Runs that reused the key earlier are kept in the table but not returned. A
// positive limit keeps only the most recent entries.
func (s *PostgresCheckpointStore) History(ctx context.Context, sessionKey string, limit int) ([]*domain.Checkpoint, error) {
	query := `
		SELECT session_key, stage, data, saved_at, stream_version AS version
		FROM checkpoint_journal
		WHERE session_key = $1
		  AND id >= COALESCE((
			SELECT MAX(id) FROM checkpoint_journal
			WHERE session_key = $1 AND stream_version = 1
		  ), 0)
		ORDER BY id DESC`
	args := []interface{}{sessionKey}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	var rows []postgresCheckpoint
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "failed to read checkpoint journal")
	}

	checkpoints := make([]*domain.Checkpoint, len(rows))
	for i, row := range rows {
		cp, err := s.toDomain(&row)
		if err != nil {
			return nil, err
		}
		checkpoints[len(rows)-1-i] = cp
	}
	return checkpoints, nil
}

// toPostgres converts a checkpoint to its row
func (s *PostgresCheckpointStore) toPostgres(checkpoint *domain.Checkpoint) (*postgresCheckpoint, error) {
	data, err := json.Marshal(checkpoint)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal checkpoint")
	}

	return &postgresCheckpoint{
		SessionKey: checkpoint.SessionKey,
		Channel:    checkpoint.Channel.String(),
		Stage:      checkpoint.RetryState.Stage.String(),
		Data:       data,
		SavedAt:    checkpoint.SavedAt,
		Version:    checkpoint.Version,
	}, nil
}

// toDomain converts a row to a checkpoint
func (s *PostgresCheckpointStore) toDomain(row *postgresCheckpoint) (*domain.Checkpoint, error) {
	var checkpoint domain.Checkpoint
	if err := json.Unmarshal(row.Data, &checkpoint); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal checkpoint")
	}
	if err := checkpoint.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid stored checkpoint")
	}
	return &checkpoint, nil
}
