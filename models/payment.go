package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentType enum
type PaymentType string

const (
	PaymentSubscription PaymentType = "subscription"
	PaymentBoost        PaymentType = "boost"
)

// Payment is an immutable ledger record of a confirmed gateway payment.
// It references the user and issue by value, so it stays valid even if
// either is later modified or deleted.
type Payment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Type      PaymentType        `bson:"type" json:"type"`
	UserEmail string             `bson:"userEmail" json:"userEmail"`
	Amount    float64            `bson:"amount" json:"amount"`
	IssueID   string             `bson:"issueId,omitempty" json:"issueId,omitempty"`
	Date      time.Time          `bson:"date" json:"date"`
}
