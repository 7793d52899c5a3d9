package mongodb

import (
	"context"
	"fmt"
	"os"
	"testing"

	"usermgmt/internal/domain"
	"usermgmt/internal/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// newLiveRepo connects to MONGODB_URL with a throwaway database. The test is
// skipped when the variable is unset or the server cannot be reached.
func newLiveRepo(t *testing.T) domain.UserRepository {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	uri := os.Getenv("MONGODB_URL")
	if uri == "" {
		t.Skip("MONGODB_URL not set")
	}

	ctx := context.Background()
	dbName := "usermgmt_test_" + uuid.NewString()[:8]

	client, db, err := Connect(ctx, uri, dbName, logger.NewNop())
	if err != nil {
		t.Skipf("mongodb unreachable: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	return NewUserRepository(db)
}

func TestLive_CreateGetAndUniqueEmail(t *testing.T) {
	repo := newLiveRepo(t)
	ctx := context.Background()

	u := &domain.User{Name: "John Doe", Email: "john@example.com"}
	require.NoError(t, repo.CreateUser(ctx, u))
	_, err := primitive.ObjectIDFromHex(u.ID)
	require.NoError(t, err)

	got, err := repo.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u, got)

	got, err = repo.GetUserByEmail(ctx, "john@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	err = repo.CreateUser(ctx, &domain.User{Name: "Other", Email: "john@example.com"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = repo.GetUserByID(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLive_GetUsersPagesInInsertionOrder(t *testing.T) {
	repo := newLiveRepo(t)
	ctx := context.Background()

	var ids []string
	for i := range 5 {
		u := &domain.User{Name: fmt.Sprint("U", i), Email: fmt.Sprintf("u%d@example.com", i)}
		require.NoError(t, repo.CreateUser(ctx, u))
		ids = append(ids, u.ID)
	}

	page, total, err := repo.GetUsers(ctx, domain.ListOptions{Skip: 0, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, ids[0], page[0].ID)
	assert.Equal(t, ids[1], page[1].ID)

	page, _, err = repo.GetUsers(ctx, domain.ListOptions{Skip: 4, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, ids[4], page[0].ID)

	page, total, err = repo.GetUsers(ctx, domain.ListOptions{Skip: 20, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.NotNil(t, page)
	assert.Empty(t, page)
}

func TestLive_UpdateAndDelete(t *testing.T) {
	repo := newLiveRepo(t)
	ctx := context.Background()

	a := &domain.User{Name: "A", Email: "a@example.com"}
	require.NoError(t, repo.CreateUser(ctx, a))
	require.NoError(t, repo.CreateUser(ctx, &domain.User{Name: "B", Email: "b@example.com"}))

	got, err := repo.UpdateUser(ctx, a.ID, domain.UserUpdate{Name: ptr("Jane")})
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.Name)
	assert.Equal(t, "a@example.com", got.Email)

	_, err = repo.UpdateUser(ctx, a.ID, domain.UserUpdate{Email: ptr("b@example.com")})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = repo.UpdateUser(ctx, primitive.NewObjectID().Hex(), domain.UserUpdate{Name: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	require.NoError(t, repo.DeleteUser(ctx, a.ID))
	assert.ErrorIs(t, repo.DeleteUser(ctx, a.ID), domain.ErrUserNotFound)
}
