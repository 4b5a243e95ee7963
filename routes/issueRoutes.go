package routes

import (
	"github.com/gin-gonic/gin"

	"cityfix-be/controllers"
)

// IssueRoutes sets up the issue lifecycle routes.
func IssueRoutes(r *gin.Engine, auth, staff, admin, rateLimit gin.HandlerFunc, issues *controllers.IssueController) {
	r.POST("/issues", auth, rateLimit, issues.CreateIssue)
	r.GET("/issues", issues.GetAllIssues)
	r.GET("/issues/:id", auth, issues.GetIssue)
	r.GET("/issues/count/:email", auth, issues.CountByReporter)
	r.GET("/issues/my-issues/:email", auth, issues.GetMyIssues)
	r.GET("/issues/assigned/:email", auth, staff, issues.GetAssignedIssues)

	r.PATCH("/issues/upvote/:id", auth, issues.UpvoteIssue)
	r.PATCH("/issues/:id", auth, issues.UpdateIssue)
	r.PATCH("/issues/:id/boost", auth, issues.BoostIssue)
	r.PATCH("/issues/assign/:id", auth, admin, issues.AssignStaff)
	r.PATCH("/issues/status/:id", auth, staff, issues.ChangeStatus)

	r.DELETE("/issues/:id", auth, issues.DeleteIssue)
}
