package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/nutriflow/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// CreateProfileStoreTableSQL creates the key/value table the PsqlStore writes to.
const CreateProfileStoreTableSQL = `
CREATE TABLE IF NOT EXISTS profile_store (
	key        TEXT PRIMARY KEY,
	data       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// pgxQuerier is satisfied by *pgxpool.Pool and pgx.Tx.
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PsqlStore struct {
	db  pgxQuerier
	key string
}

func NewPsqlStore(db pgxQuerier) *PsqlStore {
	return &PsqlStore{
		db:  db,
		key: StoreKey,
	}
}

func (s *PsqlStore) Load(ctx context.Context) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.psql.profile.load")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	var profileBytes []byte
	if err := s.db.QueryRow(
		ctx,
		`SELECT data FROM profile_store WHERE key = $1`,
		s.key,
	).Scan(&profileBytes); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetAttributes(attribute.Bool("profile.found", false))
			return nil, nil
		}
		return nil, fmt.Errorf("select profile: %w", err)
	}
	span.SetAttributes(attribute.Bool("profile.found", true))

	return unmarshal(profileBytes)
}

func (s *PsqlStore) Save(ctx context.Context, p Profile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.psql.profile.save")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	profileBytes, err := marshal(p)
	if err != nil {
		return err
	}

	if _, err := s.db.Exec(
		ctx,
		`INSERT INTO profile_store (key, data, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		s.key, profileBytes,
	); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func (s *PsqlStore) Clear(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.psql.profile.clear")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if _, err := s.db.Exec(ctx, `DELETE FROM profile_store WHERE key = $1`, s.key); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}
