package session

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csemotors/internal/auth"
	"csemotors/internal/model"
)

func setupStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewStore(client), mr
}

func testIdentity() *auth.Identity {
	return &auth.Identity{
		AccountID: 42,
		FirstName: "Jo",
		LastName:  "Lee",
		Email:     "jo@example.com",
		Role:      model.RoleClient,
	}
}

func TestStore_GetMissing(t *testing.T) {
	store, _ := setupStore(t)

	rec, err := store.Get(context.Background(), "no-such-session")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestStore_SetIdentityRoundTrip(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetIdentity(ctx, "sid-1", testIdentity()))

	rec, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.NotNil(t, rec.Identity)
	assert.Equal(t, uint(42), rec.Identity.AccountID)
	assert.Equal(t, model.RoleClient, rec.Identity.Role)
}

func TestStore_Destroy(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetIdentity(ctx, "sid-1", testIdentity()))
	require.NoError(t, store.Destroy(ctx, "sid-1"))

	rec, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Nil(t, rec)

	// Destroying an absent session is not an error: logout is idempotent.
	require.NoError(t, store.Destroy(ctx, "sid-1"))
}

func TestStore_DestroyFailurePropagates(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetIdentity(ctx, "sid-1", testIdentity()))
	mr.Close()

	assert.Error(t, store.Destroy(ctx, "sid-1"))
}

func TestStore_FlashesReadOnce(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.PushFlash(ctx, "sid-1", FlashNotice, "Please log in."))
	require.NoError(t, store.PushFlash(ctx, "sid-1", FlashSuccess, "Saved."))

	flashes, err := store.PopFlashes(ctx, "sid-1")
	require.NoError(t, err)
	require.Len(t, flashes, 2)
	assert.Equal(t, Flash{Category: FlashNotice, Message: "Please log in."}, flashes[0])
	assert.Equal(t, Flash{Category: FlashSuccess, Message: "Saved."}, flashes[1])

	// Second drain must come back empty.
	flashes, err = store.PopFlashes(ctx, "sid-1")
	require.NoError(t, err)
	assert.Empty(t, flashes)
}

func TestStore_PopFlashesKeepsIdentity(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetIdentity(ctx, "sid-1", testIdentity()))
	require.NoError(t, store.PushFlash(ctx, "sid-1", FlashNotice, "hello"))

	_, err := store.PopFlashes(ctx, "sid-1")
	require.NoError(t, err)

	rec, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.NotNil(t, rec.Identity)
	assert.Empty(t, rec.Flashes)
}
