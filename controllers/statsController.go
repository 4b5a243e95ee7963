package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StatsController derives the admin dashboard figures.
type StatsController struct {
	Users    UserStore
	Issues   IssueStore
	Payments PaymentStore
	Logger   *zap.Logger
}

func NewStatsController(users UserStore, issues IssueStore, payments PaymentStore, logger *zap.Logger) *StatsController {
	return &StatsController{Users: users, Issues: issues, Payments: payments, Logger: logger}
}

// AdminStats handles GET /admin-stats (admin only). User and issue counts
// are fast estimates; revenue is an exact sum over the payment ledger
// computed at query time.
func (sc *StatsController) AdminStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	totalUsers, err := sc.Users.EstimatedCount(ctx)
	if err != nil {
		sc.Logger.Error("counting users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	totalIssues, err := sc.Issues.EstimatedCount(ctx)
	if err != nil {
		sc.Logger.Error("counting issues", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	totalRevenue, err := sc.Payments.SumAmounts(ctx)
	if err != nil {
		sc.Logger.Error("summing revenue", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalUsers":   totalUsers,
		"totalIssues":  totalIssues,
		"totalRevenue": totalRevenue,
	})
}
