package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRole enum
type UserRole string

const (
	RoleCitizen UserRole = "citizen"
	RoleStaff   UserRole = "staff"
	RoleAdmin   UserRole = "admin"
)

// IsKnownRole reports whether role is one of the recognized tiers.
func IsKnownRole(role string) bool {
	switch UserRole(role) {
	case RoleCitizen, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// User represents a registered citizen, staff member or admin, keyed by email.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	Photo      string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Role       UserRole           `bson:"role" json:"role"`
	IsBlocked  bool               `bson:"isBlocked" json:"isBlocked"`
	IsVerified bool               `bson:"isVerified" json:"isVerified"`
}
