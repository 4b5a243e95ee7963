package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"cityfix-be/models"
)

// UserRepository wraps the users collection.
type UserRepository struct {
	col *mongo.Collection
}

// NewUserRepository returns a repository over the users collection.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

// FindByEmail returns the user with the given email, or nil when no such
// user exists.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindAll returns every registered user.
func (r *UserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FindByRole returns all users holding the given role.
func (r *UserRepository) FindByRole(ctx context.Context, role models.UserRole) ([]models.User, error) {
	cursor, err := r.col.Find(ctx, bson.M{"role": role})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Insert stores a new user and returns its generated id.
func (r *UserRepository) Insert(ctx context.Context, user models.User) (primitive.ObjectID, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, user); err != nil {
		return primitive.NilObjectID, err
	}
	return user.ID, nil
}

// UpdateProfile overwrites the user's name and photo.
func (r *UserRepository) UpdateProfile(ctx context.Context, email, name, photo string) (int64, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"name": name, "photo": photo}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// UpdateAdminFields applies role and block-status changes by user id.
// Nil fields are left untouched.
func (r *UserRepository) UpdateAdminFields(ctx context.Context, id primitive.ObjectID, role *models.UserRole, isBlocked *bool) (int64, error) {
	set := bson.M{}
	if role != nil {
		set["role"] = *role
	}
	if isBlocked != nil {
		set["isBlocked"] = *isBlocked
	}
	if len(set) == 0 {
		return 0, nil
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// SetVerified marks the user with the given email as verified.
func (r *UserRepository) SetVerified(ctx context.Context, email string) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"isVerified": true}},
	)
	return err
}

// EstimatedCount returns the approximate number of users.
func (r *UserRepository) EstimatedCount(ctx context.Context) (int64, error) {
	return r.col.EstimatedDocumentCount(ctx)
}
