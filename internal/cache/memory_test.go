package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryReadMissingKey(t *testing.T) {
	store := NewMemory()

	data, err := store.Read(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestMemoryWriteReadRoundtrip(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, Write(ctx, store, "k", payload{Name: "a", Count: 3}))

	got, err := Read[payload](ctx, store, "k")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a", got.Name)
	assert.Equal(t, 3, got.Count)
}

func TestMemoryWriteReplacesPreviousValue(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, Write(ctx, store, "k", payload{Count: 1}))
	require.NoError(t, Write(ctx, store, "k", payload{Count: 2}))

	got, err := Read[payload](ctx, store, "k")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Count)
}

func TestMemoryDeleteAbsentKeySucceeds(t *testing.T) {
	store := NewMemory()

	assert.NoError(t, store.Delete(context.Background(), "absent"))
}

func TestMemoryDeleteRemovesKey(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, Write(ctx, store, "k", payload{Count: 1}))
	require.NoError(t, store.Delete(ctx, "k"))

	got, err := Read[payload](ctx, store, "k")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReadUndecodableBytesFails(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "k", []byte("not json")))

	got, err := Read[payload](ctx, store, "k")
	assert.Nil(t, got)

	var cacheErr *Error
	require.True(t, errors.As(err, &cacheErr))
	assert.Equal(t, ReasonReadFailed, cacheErr.Reason)
}

func TestReadMissingKeyIsNotAnError(t *testing.T) {
	store := NewMemory()

	got, err := Read[payload](context.Background(), store, "absent")
	require.NoError(t, err)
	assert.Nil(t, got)
}
