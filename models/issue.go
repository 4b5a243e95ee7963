package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssuePriority enum
type IssuePriority string

const (
	PriorityNormal IssuePriority = "Normal"
	PriorityHigh   IssuePriority = "High"
	PriorityLow    IssuePriority = "Low"
)

// IsKnownPriority reports whether p is a recognized priority label.
func IsKnownPriority(p string) bool {
	switch IssuePriority(p) {
	case PriorityNormal, PriorityHigh, PriorityLow:
		return true
	}
	return false
}

// IssueStatus is a constrained lifecycle label. New issues always start in
// StatusPending; staff and admins move them through the rest of the set.
// Stored and sorted as a plain string.
type IssueStatus string

const (
	StatusPending    IssueStatus = "pending"
	StatusInProgress IssueStatus = "in-progress"
	StatusWorking    IssueStatus = "working"
	StatusResolved   IssueStatus = "resolved"
	StatusClosed     IssueStatus = "closed"
	StatusRejected   IssueStatus = "rejected"
)

// IsKnownStatus reports whether s is a recognized lifecycle status label.
func IsKnownStatus(s string) bool {
	switch IssueStatus(s) {
	case StatusPending, StatusInProgress, StatusWorking, StatusResolved, StatusClosed, StatusRejected:
		return true
	}
	return false
}

// TimelineEvent is one immutable entry in an issue's audit log.
type TimelineEvent struct {
	Status string    `bson:"status" json:"status"`
	Text   string    `bson:"text" json:"text"`
	User   string    `bson:"user" json:"user"`
	Date   time.Time `bson:"date" json:"date"`
}

// AssignedStaff identifies the staff member responsible for an issue.
type AssignedStaff struct {
	Email string `bson:"email" json:"email"`
	Name  string `bson:"name" json:"name"`
}

// Issue represents a civic issue reported by a citizen.
//
// Invariants: Upvotes always equals len(UpvotedBy); Timeline is append-only
// and its first entry records creation.
type Issue struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title         string             `bson:"title" json:"title"`
	Category      string             `bson:"category" json:"category"`
	Location      string             `bson:"location" json:"location"`
	Description   string             `bson:"description" json:"description"`
	ReporterEmail string             `bson:"reporterEmail" json:"reporterEmail"`
	Status        IssueStatus        `bson:"status" json:"status"`
	Priority      IssuePriority      `bson:"priority" json:"priority"`
	Upvotes       int                `bson:"upvotes" json:"upvotes"`
	UpvotedBy     []string           `bson:"upvotedBy" json:"upvotedBy"`
	Date          time.Time          `bson:"date" json:"date"`
	AssignedStaff *AssignedStaff     `bson:"assignedStaff" json:"assignedStaff"`
	Timeline      []TimelineEvent    `bson:"timeline" json:"timeline"`
}
