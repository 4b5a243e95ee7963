package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"cityfix-be/models"
	"cityfix-be/repositories"
)

// IssueController serves the issue lifecycle endpoints. Transition rules:
// anyone authenticated may create, edit, upvote, boost and delete; staff
// change status; admins assign staff. Every transition except a plain
// content edit appends exactly one timeline entry attributed to the caller.
type IssueController struct {
	Issues IssueStore
	Logger *zap.Logger
}

func NewIssueController(issues IssueStore, logger *zap.Logger) *IssueController {
	return &IssueController{Issues: issues, Logger: logger}
}

// CreateIssue handles POST /issues. The server owns the lifecycle fields:
// new issues always start pending, Normal priority, zero votes, with a
// single seed timeline entry attributed to the reporter.
func (ic *IssueController) CreateIssue(c *gin.Context) {
	var input struct {
		Title         string `json:"title" binding:"required,max=200"`
		Category      string `json:"category" binding:"required"`
		Location      string `json:"location" binding:"required,max=200"`
		Description   string `json:"description" binding:"required,max=1000"`
		ReporterEmail string `json:"reporterEmail"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reporter := input.ReporterEmail
	if reporter == "" {
		reporter = c.GetString("email")
	}

	now := time.Now()
	issue := models.Issue{
		Title:         input.Title,
		Category:      input.Category,
		Location:      input.Location,
		Description:   input.Description,
		ReporterEmail: reporter,
		Status:        models.StatusPending,
		Priority:      models.PriorityNormal,
		Upvotes:       0,
		UpvotedBy:     []string{},
		Date:          now,
		AssignedStaff: nil,
		Timeline: []models.TimelineEvent{
			{
				Status: string(models.StatusPending),
				Text:   "Issue reported by citizen",
				User:   reporter,
				Date:   now,
			},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	insertedID, err := ic.Issues.Insert(ctx, &issue)
	if err != nil {
		ic.Logger.Error("inserting issue", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create issue"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"insertedId": insertedID})
}

// GetAllIssues handles GET /issues with conjunctive filters and limit-N
// pagination: the response carries the first limit issues after sorting,
// while total counts every match.
func (ic *IssueController) GetAllIssues(c *gin.Context) {
	filter := repositories.IssueFilter{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Priority: c.Query("priority"),
	}

	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "6"), 10, 64)
	if err != nil || limit < 1 {
		limit = 6
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issues, total, err := ic.Issues.List(ctx, filter, limit)
	if err != nil {
		ic.Logger.Error("listing issues", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"issues": issues, "total": total})
}

// GetIssue handles GET /issues/:id. A missing issue renders as null.
func (ic *IssueController) GetIssue(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issue, err := ic.Issues.FindByID(ctx, id)
	if err != nil {
		ic.Logger.Error("fetching issue", zap.String("id", id.Hex()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		return
	}

	c.JSON(http.StatusOK, issue)
}

// CountByReporter handles GET /issues/count/:email.
func (ic *IssueController) CountByReporter(c *gin.Context) {
	email := c.Param("email")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := ic.Issues.CountByReporter(ctx, email)
	if err != nil {
		ic.Logger.Error("counting issues", zap.String("email", email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count issues"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// GetMyIssues handles GET /issues/my-issues/:email.
func (ic *IssueController) GetMyIssues(c *gin.Context) {
	email := c.Param("email")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issues, err := ic.Issues.FindByReporter(ctx, email)
	if err != nil {
		ic.Logger.Error("listing reporter issues", zap.String("email", email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}

	c.JSON(http.StatusOK, issues)
}

// GetAssignedIssues handles GET /issues/assigned/:email (staff only).
func (ic *IssueController) GetAssignedIssues(c *gin.Context) {
	email := c.Param("email")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issues, err := ic.Issues.FindByAssignedStaff(ctx, email)
	if err != nil {
		ic.Logger.Error("listing assigned issues", zap.String("email", email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}

	c.JSON(http.StatusOK, issues)
}

// UpvoteIssue handles PATCH /issues/upvote/:id. The vote is a single
// conditional store update, so a second attempt by the same email never
// matches and the count can never drift from the voter set.
func (ic *IssueController) UpvoteIssue(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	var input struct {
		Email string `json:"email"`
	}
	_ = c.ShouldBindJSON(&input)

	email := input.Email
	if email == "" {
		email = c.GetString("email")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := ic.Issues.Upvote(ctx, id, email)
	if err != nil {
		ic.Logger.Error("upvoting issue", zap.String("id", id.Hex()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upvote issue"})
		return
	}

	if result.MatchedCount == 0 {
		issue, err := ic.Issues.FindByID(ctx, id)
		if err != nil {
			ic.Logger.Error("checking upvoted issue", zap.String("id", id.Hex()), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upvote issue"})
			return
		}
		if issue != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "You have already upvoted this issue."})
			return
		}
	}

	c.JSON(http.StatusOK, result)
}

// UpdateIssue handles PATCH /issues/:id, a plain content edit. No timeline
// entry is recorded and ownership is not checked: any authenticated caller
// may edit any issue, matching the deployed behavior.
func (ic *IssueController) UpdateIssue(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	var input struct {
		Title       string `json:"title"`
		Category    string `json:"category"`
		Location    string `json:"location"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := ic.Issues.UpdateContent(ctx, id, input.Title, input.Category, input.Location, input.Description)
	if err != nil {
		ic.Logger.Error("updating issue", zap.String("id", id.Hex()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update issue"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// BoostIssue handles PATCH /issues/:id/boost, the manual priority boost.
func (ic *IssueController) BoostIssue(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	event := models.TimelineEvent{
		Status: "Boosted",
		Text:   "Priority boosted to High",
		User:   c.GetString("email"),
		Date:   time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := ic.Issues.Boost(ctx, id, event)
	if err != nil {
		ic.Logger.Error("boosting issue", zap.String("id", id.Hex()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to boost issue"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// AssignStaff handles PATCH /issues/assign/:id (admin only).
func (ic *IssueController) AssignStaff(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	var input struct {
		Staff models.AssignedStaff `json:"staff" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event := models.TimelineEvent{
		Status: "Assigned",
		Text:   "Issue assigned to Staff: " + input.Staff.Name,
		User:   c.GetString("email"),
		Date:   time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := ic.Issues.Assign(ctx, id, input.Staff, event)
	if err != nil {
		ic.Logger.Error("assigning staff", zap.String("id", id.Hex()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign staff"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ChangeStatus handles PATCH /issues/status/:id (staff only). The new label
// becomes both the status and the timeline entry's status.
func (ic *IssueController) ChangeStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.IsKnownStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	event := models.TimelineEvent{
		Status: input.Status,
		Text:   "Status updated to " + input.Status,
		User:   c.GetString("email"),
		Date:   time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := ic.Issues.SetStatus(ctx, id, models.IssueStatus(input.Status), event)
	if err != nil {
		ic.Logger.Error("changing status", zap.String("id", id.Hex()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change status"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteIssue handles DELETE /issues/:id. Ownership is not checked: any
// authenticated caller may delete any issue, matching the deployed
// behavior.
func (ic *IssueController) DeleteIssue(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	deleted, err := ic.Issues.Delete(ctx, id)
	if err != nil {
		ic.Logger.Error("deleting issue", zap.String("id", id.Hex()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete issue"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deletedCount": deleted})
}
