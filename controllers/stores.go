package controllers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cityfix-be/models"
	"cityfix-be/repositories"
)

// UserStore is the identity and role store the handlers depend on.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	FindByRole(ctx context.Context, role models.UserRole) ([]models.User, error)
	Insert(ctx context.Context, user models.User) (primitive.ObjectID, error)
	UpdateProfile(ctx context.Context, email, name, photo string) (int64, error)
	UpdateAdminFields(ctx context.Context, id primitive.ObjectID, role *models.UserRole, isBlocked *bool) (int64, error)
	SetVerified(ctx context.Context, email string) error
	EstimatedCount(ctx context.Context) (int64, error)
}

// IssueStore exposes issue queries and lifecycle mutations.
type IssueStore interface {
	Insert(ctx context.Context, issue *models.Issue) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Issue, error)
	List(ctx context.Context, filter repositories.IssueFilter, limit int64) ([]models.Issue, int64, error)
	CountByReporter(ctx context.Context, email string) (int64, error)
	FindByReporter(ctx context.Context, email string) ([]models.Issue, error)
	FindByAssignedStaff(ctx context.Context, email string) ([]models.Issue, error)
	Upvote(ctx context.Context, id primitive.ObjectID, email string) (repositories.UpdateResult, error)
	UpdateContent(ctx context.Context, id primitive.ObjectID, title, category, location, description string) (repositories.UpdateResult, error)
	Boost(ctx context.Context, id primitive.ObjectID, event models.TimelineEvent) (repositories.UpdateResult, error)
	Assign(ctx context.Context, id primitive.ObjectID, staff models.AssignedStaff, event models.TimelineEvent) (repositories.UpdateResult, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.IssueStatus, event models.TimelineEvent) (repositories.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	EstimatedCount(ctx context.Context) (int64, error)
}

// PaymentStore is the append-only payment ledger.
type PaymentStore interface {
	Insert(ctx context.Context, payment *models.Payment) (primitive.ObjectID, error)
	FindAll(ctx context.Context) ([]models.Payment, error)
	FindByUser(ctx context.Context, email string) ([]models.Payment, error)
	SumAmounts(ctx context.Context) (float64, error)
}
