package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cityfix-be/models"
)

// IssueFilter holds the optional, AND-combined list filters.
type IssueFilter struct {
	Search   string
	Status   string
	Category string
	Priority string
}

// UpdateResult reports how many documents a mutation matched and changed,
// mirroring the driver's update result on the wire.
type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// IssueRepository wraps the issues collection.
type IssueRepository struct {
	col *mongo.Collection
}

// NewIssueRepository returns a repository over the issues collection.
func NewIssueRepository(db *mongo.Database) *IssueRepository {
	return &IssueRepository{col: db.Collection("issues")}
}

// Insert stores a new issue and returns its generated id.
func (r *IssueRepository) Insert(ctx context.Context, issue *models.Issue) (primitive.ObjectID, error) {
	if issue.ID.IsZero() {
		issue.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, issue); err != nil {
		return primitive.NilObjectID, err
	}
	return issue.ID, nil
}

// FindByID returns the issue with the given id, or nil when no such issue
// exists.
func (r *IssueRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Issue, error) {
	var issue models.Issue
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&issue)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

// List returns the first limit issues matching the filter, sorted by
// priority label ascending then creation date descending, along with the
// total number of matches regardless of limit.
//
// The priority sort is a plain string sort, so "High" orders before
// "Low" and "Normal". That matches the dashboard's long-standing display
// order and is kept deliberately.
func (r *IssueRepository) List(ctx context.Context, filter IssueFilter, limit int64) ([]models.Issue, int64, error) {
	query := bson.M{}
	if filter.Search != "" {
		query["title"] = bson.M{"$regex": filter.Search, "$options": "i"}
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Priority != "" {
		query["priority"] = filter.Priority
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "priority", Value: 1}, {Key: "date", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.col.Find(ctx, query, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	issues := []models.Issue{}
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, 0, err
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	return issues, total, nil
}

// CountByReporter returns how many issues the given email has reported.
func (r *IssueRepository) CountByReporter(ctx context.Context, email string) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"reporterEmail": email})
}

// FindByReporter returns all issues reported by the given email.
func (r *IssueRepository) FindByReporter(ctx context.Context, email string) ([]models.Issue, error) {
	return r.findMany(ctx, bson.M{"reporterEmail": email})
}

// FindByAssignedStaff returns all issues assigned to the given staff email.
func (r *IssueRepository) FindByAssignedStaff(ctx context.Context, email string) ([]models.Issue, error) {
	return r.findMany(ctx, bson.M{"assignedStaff.email": email})
}

func (r *IssueRepository) findMany(ctx context.Context, query bson.M) ([]models.Issue, error) {
	cursor, err := r.col.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	issues := []models.Issue{}
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// Upvote increments the vote count and records the voter in one conditional
// update. The filter excludes issues that already contain the voter, so
// concurrent duplicate attempts from the same email can never double-count:
// at most one of them matches.
func (r *IssueRepository) Upvote(ctx context.Context, id primitive.ObjectID, email string) (UpdateResult, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "upvotedBy": bson.M{"$ne": email}},
		bson.M{
			"$inc":  bson.M{"upvotes": 1},
			"$push": bson.M{"upvotedBy": email},
		},
	)
	if err != nil {
		return UpdateResult{}, err
	}
	return UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

// UpdateContent overwrites the editable content fields. No timeline entry
// is recorded for plain content edits.
func (r *IssueRepository) UpdateContent(ctx context.Context, id primitive.ObjectID, title, category, location, description string) (UpdateResult, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"title":       title,
			"category":    category,
			"location":    location,
			"description": description,
		}},
	)
	if err != nil {
		return UpdateResult{}, err
	}
	return UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

// Boost raises the issue's priority to High and appends the given timeline
// event in a single update.
func (r *IssueRepository) Boost(ctx context.Context, id primitive.ObjectID, event models.TimelineEvent) (UpdateResult, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$set":  bson.M{"priority": models.PriorityHigh},
			"$push": bson.M{"timeline": event},
		},
	)
	if err != nil {
		return UpdateResult{}, err
	}
	return UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

// Assign sets the responsible staff member and appends the given timeline
// event.
func (r *IssueRepository) Assign(ctx context.Context, id primitive.ObjectID, staff models.AssignedStaff, event models.TimelineEvent) (UpdateResult, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$set":  bson.M{"assignedStaff": staff},
			"$push": bson.M{"timeline": event},
		},
	)
	if err != nil {
		return UpdateResult{}, err
	}
	return UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

// SetStatus moves the issue to the given status and appends the given
// timeline event.
func (r *IssueRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status models.IssueStatus, event models.TimelineEvent) (UpdateResult, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$set":  bson.M{"status": status},
			"$push": bson.M{"timeline": event},
		},
	)
	if err != nil {
		return UpdateResult{}, err
	}
	return UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

// Delete permanently removes the issue.
func (r *IssueRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// EstimatedCount returns the approximate number of issues.
func (r *IssueRepository) EstimatedCount(ctx context.Context) (int64, error) {
	return r.col.EstimatedDocumentCount(ctx)
}
