package profile

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testQuerier keeps a single key/value table in memory.
type testQuerier struct {
	rows    map[string][]byte
	err     error
	lastSQL string
}

type testRow struct {
	data []byte
	err  error
}

func (r testRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*[]byte)) = r.data
	return nil
}

func (q *testQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.lastSQL = sql
	if q.err != nil {
		return pgconn.CommandTag{}, q.err
	}
	key := args[0].(string)
	if len(args) == 2 {
		q.rows[key] = args[1].([]byte)
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	}
	delete(q.rows, key)
	return pgconn.NewCommandTag("DELETE 1"), nil
}

func (q *testQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.lastSQL = sql
	if q.err != nil {
		return testRow{err: q.err}
	}
	data, ok := q.rows[args[0].(string)]
	if !ok {
		return testRow{err: pgx.ErrNoRows}
	}
	return testRow{data: data}
}

func TestPsqlStore_RoundTrip(t *testing.T) {
	q := &testQuerier{rows: map[string][]byte{}}
	store := NewPsqlStore(q)
	ctx := context.Background()

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	p := randomProfile()
	require.NoError(t, store.Save(ctx, p))
	assert.Contains(t, q.lastSQL, "ON CONFLICT (key)")

	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, p, *loaded)

	require.NoError(t, store.Clear(ctx))
	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestPsqlStore_LoadMalformed(t *testing.T) {
	for _, raw := range []string{
		`["not", "a", "profile"]`,
		`null`,
		`{}`,
		`{"name":"A","age":30,"height":165,"weight":60}`,
		`{"name":"Ana","age":30,"height":165,"weight":0}`,
	} {
		q := &testQuerier{rows: map[string][]byte{StoreKey: []byte(raw)}}
		store := NewPsqlStore(q)

		loaded, err := store.Load(context.Background())
		assert.ErrorIs(t, err, ErrMalformedProfile, raw)
		assert.Nil(t, loaded, raw)
	}
}

func TestPsqlStore_Errors(t *testing.T) {
	dbErr := errors.New("connection reset")
	q := &testQuerier{rows: map[string][]byte{}, err: dbErr}
	store := NewPsqlStore(q)
	ctx := context.Background()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, dbErr)
	assert.ErrorIs(t, store.Save(ctx, randomProfile()), dbErr)
	assert.ErrorIs(t, store.Clear(ctx), dbErr)
}

func TestPsqlStore_SavesJSON(t *testing.T) {
	q := &testQuerier{rows: map[string][]byte{}}
	store := NewPsqlStore(q)

	p := randomProfile()
	require.NoError(t, store.Save(context.Background(), p))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(q.rows[StoreKey], &decoded))
	assert.Equal(t, p.Name, decoded["name"])
	assert.Contains(t, decoded, "bmi")
}
