package mongodb

import (
	"context"
	"testing"

	"usermgmt/internal/domain"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ptr[T any](v T) *T { return &v }

func TestUserDocument_ToDomain(t *testing.T) {
	oid := primitive.NewObjectID()
	doc := userDocument{ID: oid, Name: "John Doe", Email: "john@example.com"}

	assert.Equal(t, &domain.User{ID: oid.Hex(), Name: "John Doe", Email: "john@example.com"}, doc.toDomain())
}

func TestUserDocument_BSONShape(t *testing.T) {
	raw, err := bson.Marshal(userDocument{Name: "A", Email: "a@example.com"})
	assert.NoError(t, err)

	var m bson.M
	assert.NoError(t, bson.Unmarshal(raw, &m))
	assert.NotContains(t, m, "_id", "zero id is left for the server to assign")
	assert.Equal(t, "A", m["name"])
	assert.Equal(t, "a@example.com", m["email"])
}

func TestUpdateSet(t *testing.T) {
	assert.Empty(t, updateSet(domain.UserUpdate{}))
	assert.Equal(t, bson.D{{Key: "name", Value: "Jane"}}, updateSet(domain.UserUpdate{Name: ptr("Jane")}))
	assert.Equal(t,
		bson.D{{Key: "name", Value: "Jane"}, {Key: "email", Value: "j@example.com"}},
		updateSet(domain.UserUpdate{Name: ptr("Jane"), Email: ptr("j@example.com")}),
	)
}

func TestMalformedIDIsNotFound(t *testing.T) {
	repo := &UserRepository{}
	ctx := context.Background()

	_, err := repo.GetUserByID(ctx, "not-an-object-id")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = repo.UpdateUser(ctx, "1", domain.UserUpdate{Name: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	assert.ErrorIs(t, repo.DeleteUser(ctx, "zzz"), domain.ErrUserNotFound)
}
