package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tenderdesk/business-api/internal/core/domain"
)

const UsersCollection = "users"

// UserRepository backs both the users resource and the login flow.
type UserRepository struct {
	*Collection[domain.User]
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{Collection: NewCollection[domain.User](db, UsersCollection)}
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

// Create inserts a registered user; an existing username maps to
// domain.ErrUserExists.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.Insert(ctx, user)
	if errors.Is(err, domain.ErrConflict) {
		return domain.ErrUserExists
	}
	return err
}

// EnsureIndexes adds the unique username index.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	return r.Collection.EnsureIndexes(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
}
