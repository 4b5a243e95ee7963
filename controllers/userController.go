package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"cityfix-be/models"
)

// UserController serves the identity and role management endpoints.
type UserController struct {
	Users  UserStore
	Logger *zap.Logger
}

func NewUserController(users UserStore, logger *zap.Logger) *UserController {
	return &UserController{Users: users, Logger: logger}
}

// UpsertUser handles POST /users. Registration is idempotent by email:
// re-registering an existing user is a no-op that reports a null insertedId.
func (uc *UserController) UpsertUser(c *gin.Context) {
	var input struct {
		Name  string `json:"name"`
		Email string `json:"email" binding:"required,email"`
		Photo string `json:"photo"`
		Role  string `json:"role"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	existing, err := uc.Users.FindByEmail(ctx, input.Email)
	if err != nil {
		uc.Logger.Error("checking existing user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusOK, gin.H{"message": "user already exists", "insertedId": nil})
		return
	}

	role := models.RoleCitizen
	if input.Role != "" && models.IsKnownRole(input.Role) {
		role = models.UserRole(input.Role)
	}

	user := models.User{
		Name:  input.Name,
		Email: input.Email,
		Photo: input.Photo,
		Role:  role,
	}

	insertedID, err := uc.Users.Insert(ctx, user)
	if err != nil {
		uc.Logger.Error("inserting user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"insertedId": insertedID})
}

// UpdateProfile handles PATCH /users/:email, overwriting name and photo.
func (uc *UserController) UpdateProfile(c *gin.Context) {
	email := c.Param("email")

	var input struct {
		Name  string `json:"name"`
		Photo string `json:"photo"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	modified, err := uc.Users.UpdateProfile(ctx, email, input.Name, input.Photo)
	if err != nil {
		uc.Logger.Error("updating profile", zap.String("email", email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"modifiedCount": modified})
}

// GetAllUsers handles GET /users (admin only).
func (uc *UserController) GetAllUsers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users, err := uc.Users.FindAll(ctx)
	if err != nil {
		uc.Logger.Error("listing users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetStaff handles GET /users/staff (admin only).
func (uc *UserController) GetStaff(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	staff, err := uc.Users.FindByRole(ctx, models.RoleStaff)
	if err != nil {
		uc.Logger.Error("listing staff", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, staff)
}

// GetUser handles GET /users/:email. A missing user renders as null.
func (uc *UserController) GetUser(c *gin.Context) {
	email := c.Param("email")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := uc.Users.FindByEmail(ctx, email)
	if err != nil {
		uc.Logger.Error("fetching user", zap.String("email", email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetUserRole handles GET /users/:email/role. Intentionally public: the
// client shell needs the tier before login completes.
func (uc *UserController) GetUserRole(c *gin.Context) {
	email := c.Param("email")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := uc.Users.FindByEmail(ctx, email)
	if err != nil {
		uc.Logger.Error("fetching user role", zap.String("email", email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	var role interface{}
	if user != nil {
		role = user.Role
	}
	c.JSON(http.StatusOK, gin.H{"role": role})
}

// UpdateUserAdmin handles PATCH /users/admin/:id (admin only), changing a
// user's role and/or block status.
func (uc *UserController) UpdateUserAdmin(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var input struct {
		Role      *string `json:"role,omitempty"`
		IsBlocked *bool   `json:"isBlocked,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var role *models.UserRole
	if input.Role != nil {
		if !models.IsKnownRole(*input.Role) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
			return
		}
		r := models.UserRole(*input.Role)
		role = &r
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	modified, err := uc.Users.UpdateAdminFields(ctx, id, role, input.IsBlocked)
	if err != nil {
		uc.Logger.Error("updating user admin fields", zap.String("id", id.Hex()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"modifiedCount": modified})
}
