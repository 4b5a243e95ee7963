package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cityfix-be/models"
)

// PaymentRepository wraps the payments collection. Records are only ever
// inserted and read; the ledger is never mutated.
type PaymentRepository struct {
	col *mongo.Collection
}

// NewPaymentRepository returns a repository over the payments collection.
func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{col: db.Collection("payments")}
}

// Insert stores a new payment record and returns its generated id.
func (r *PaymentRepository) Insert(ctx context.Context, payment *models.Payment) (primitive.ObjectID, error) {
	if payment.ID.IsZero() {
		payment.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, payment); err != nil {
		return primitive.NilObjectID, err
	}
	return payment.ID, nil
}

// FindAll returns every payment, newest first.
func (r *PaymentRepository) FindAll(ctx context.Context) ([]models.Payment, error) {
	return r.findMany(ctx, bson.M{})
}

// FindByUser returns all payments made by the given email, newest first.
func (r *PaymentRepository) FindByUser(ctx context.Context, email string) ([]models.Payment, error) {
	return r.findMany(ctx, bson.M{"userEmail": email})
}

func (r *PaymentRepository) findMany(ctx context.Context, query bson.M) ([]models.Payment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.col.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	payments := []models.Payment{}
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// SumAmounts returns the exact sum of all payment amounts, computed at
// query time.
func (r *PaymentRepository) SumAmounts(ctx context.Context) (float64, error) {
	pipeline := []bson.M{
		{
			"$group": bson.M{
				"_id":   nil,
				"total": bson.M{"$sum": "$amount"},
			},
		},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}
