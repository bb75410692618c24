// Package storage persists compressed envelopes in PostgreSQL.
package storage

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/dhruvd-1/semtok/pkg/codec"
	"github.com/dhruvd-1/semtok/pkg/config"
	"github.com/dhruvd-1/semtok/pkg/errors"
	jsonx "github.com/dhruvd-1/semtok/pkg/json"
	"github.com/dhruvd-1/semtok/pkg/logger"
	stringpool "github.com/dhruvd-1/semtok/pkg/strings"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS envelopes (
    id          UUID PRIMARY KEY,
    class_name  TEXT NOT NULL,
    record_count INTEGER NOT NULL,
    envelope    JSONB NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS envelopes_class_idx ON envelopes (class_name, created_at DESC);
`

// EnvelopeRecord is one stored envelope with its metadata.
type EnvelopeRecord struct {
	ID          uuid.UUID       `json:"id"`
	ClassName   string          `json:"class_name"`
	RecordCount int             `json:"record_count"`
	Envelope    *codec.Envelope `json:"envelope,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Store is a Postgres-backed envelope store. Safe for concurrent use.
type Store struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

// ConfigFromEnv builds a storage config from DB_* environment variables,
// falling back to the given defaults for unset variables.
func ConfigFromEnv(defaults config.StorageConfig) config.StorageConfig {
	cfg := defaults
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Password = v
	}
	return cfg
}

// DSN renders the config as a pgx connection string.
func DSN(cfg config.StorageConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return stringpool.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, sslMode)
}

// Open connects to Postgres and ensures the schema exists.
func Open(ctx context.Context, cfg config.StorageConfig) (*Store, error) {
	pool, err := pgxpool.New(ctx, DSN(cfg))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "cannot create connection pool").
			WithDetail("host", cfg.Host).
			WithDetail("database", cfg.Database)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "cannot reach database").
			WithDetail("host", cfg.Host).
			WithDetail("database", cfg.Database)
	}

	s := &Store{
		pool: pool,
		log:  logger.With(zap.String("component", "storage")),
	}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) ensureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaDDL); err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "cannot create envelope schema")
	}
	return nil
}

// SaveEnvelope stores an envelope and returns its assigned id.
func (s *Store) SaveEnvelope(ctx context.Context, className string, env *codec.Envelope) (uuid.UUID, error) {
	if env == nil {
		return uuid.Nil, errors.New(errors.ErrorTypeValidation, "envelope must not be nil")
	}

	payload, err := jsonx.Marshal(env)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, errors.ErrorTypeData, "cannot serialize envelope")
	}

	id := uuid.New()
	_, err = s.pool.Exec(ctx,
		`INSERT INTO envelopes (id, class_name, record_count, envelope) VALUES ($1, $2, $3, $4)`,
		id, className, len(env.Rows), payload)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, errors.ErrorTypeConnection, "cannot store envelope").
			WithDetail("class", className)
	}

	s.log.Debug("envelope stored",
		zap.String("id", id.String()),
		zap.String("class", className),
		zap.Int("records", len(env.Rows)))
	return id, nil
}

// LoadEnvelope fetches one stored envelope by id.
func (s *Store) LoadEnvelope(ctx context.Context, id uuid.UUID) (*EnvelopeRecord, error) {
	var (
		rec     EnvelopeRecord
		payload []byte
	)
	row := s.pool.QueryRow(ctx,
		`SELECT id, class_name, record_count, envelope, created_at FROM envelopes WHERE id = $1`, id)
	if err := row.Scan(&rec.ID, &rec.ClassName, &rec.RecordCount, &payload, &rec.CreatedAt); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeNotFound, "envelope not found").
			WithDetail("id", id.String())
	}

	env := new(codec.Envelope)
	if err := jsonx.Unmarshal(payload, env); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "cannot parse stored envelope").
			WithDetail("id", id.String())
	}
	rec.Envelope = env
	return &rec, nil
}

// ListEnvelopes returns stored envelope metadata, newest first, without the
// envelope payloads. An empty className lists all classes.
func (s *Store) ListEnvelopes(ctx context.Context, className string, limit int) ([]EnvelopeRecord, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `SELECT id, class_name, record_count, created_at FROM envelopes
              WHERE ($1 = '' OR class_name = $1)
              ORDER BY created_at DESC LIMIT $2`
	rows, err := s.pool.Query(ctx, query, className, limit)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "cannot list envelopes")
	}
	defer rows.Close()

	var out []EnvelopeRecord
	for rows.Next() {
		var rec EnvelopeRecord
		if err := rows.Scan(&rec.ID, &rec.ClassName, &rec.RecordCount, &rec.CreatedAt); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "cannot scan envelope row")
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "envelope listing failed")
	}
	return out, nil
}

// DeleteEnvelope removes one stored envelope.
func (s *Store) DeleteEnvelope(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM envelopes WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeConnection, "cannot delete envelope").
			WithDetail("id", id.String())
	}
	if tag.RowsAffected() == 0 {
		return errors.New(errors.ErrorTypeNotFound, "envelope not found").
			WithDetail("id", id.String())
	}
	return nil
}
