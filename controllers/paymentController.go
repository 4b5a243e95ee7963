package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"cityfix-be/gateway"
	"cityfix-be/models"
)

// PaymentIntentCurrency is the fixed gateway currency for all intents.
const PaymentIntentCurrency = "bdt"

// PaymentController creates gateway payment intents and records confirmed
// payments, applying their side effects to users and issues.
type PaymentController struct {
	Payments PaymentStore
	Users    UserStore
	Issues   IssueStore
	Gateway  gateway.IntentCreator
	Logger   *zap.Logger
}

func NewPaymentController(payments PaymentStore, users UserStore, issues IssueStore, gw gateway.IntentCreator, logger *zap.Logger) *PaymentController {
	return &PaymentController{Payments: payments, Users: users, Issues: issues, Gateway: gw, Logger: logger}
}

// CreatePaymentIntent handles POST /create-payment-intent. The price is
// converted to the smallest currency unit (truncated) before the gateway
// call. Gateway failures surface to the caller and are never retried.
func (pc *PaymentController) CreatePaymentIntent(c *gin.Context) {
	var input struct {
		Price float64 `json:"price"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price is required"})
		return
	}

	amount := int64(input.Price * 100)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientSecret, err := pc.Gateway.CreateIntent(ctx, amount, PaymentIntentCurrency)
	if err != nil {
		pc.Logger.Error("creating payment intent", zap.Int64("amount", amount), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"clientSecret": clientSecret})
}

// RecordPayment handles POST /payments. The ledger insert is authoritative;
// the follow-up side effect (verification flag for subscriptions, priority
// boost for boosts) is best-effort and not transactional with it. A failed
// side effect is logged with the payment id for manual reconciliation.
func (pc *PaymentController) RecordPayment(c *gin.Context) {
	var payment models.Payment
	if err := c.ShouldBindJSON(&payment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if payment.Date.IsZero() {
		payment.Date = time.Now()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	insertedID, err := pc.Payments.Insert(ctx, &payment)
	if err != nil {
		pc.Logger.Error("inserting payment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	switch payment.Type {
	case models.PaymentSubscription:
		if err := pc.Users.SetVerified(ctx, payment.UserEmail); err != nil {
			pc.Logger.Error("marking user verified after payment",
				zap.String("paymentId", insertedID.Hex()),
				zap.String("email", payment.UserEmail),
				zap.Error(err))
		}
	case models.PaymentBoost:
		if payment.IssueID == "" {
			break
		}
		issueID, err := primitive.ObjectIDFromHex(payment.IssueID)
		if err != nil {
			pc.Logger.Error("boost payment references invalid issue id",
				zap.String("paymentId", insertedID.Hex()),
				zap.String("issueId", payment.IssueID))
			break
		}
		event := models.TimelineEvent{
			Status: "Boosted",
			Text:   "Priority boosted to High via payment",
			User:   payment.UserEmail,
			Date:   time.Now(),
		}
		if _, err := pc.Issues.Boost(ctx, issueID, event); err != nil {
			pc.Logger.Error("boosting issue after payment",
				zap.String("paymentId", insertedID.Hex()),
				zap.String("issueId", payment.IssueID),
				zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"insertedId": insertedID})
}

// GetAllPayments handles GET /payments (admin only), newest first.
func (pc *PaymentController) GetAllPayments(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	payments, err := pc.Payments.FindAll(ctx)
	if err != nil {
		pc.Logger.Error("listing payments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, payments)
}

// GetUserPayments handles GET /payments/:email. Callers may only read their
// own history.
func (pc *PaymentController) GetUserPayments(c *gin.Context) {
	email := c.Param("email")
	if email != c.GetString("email") {
		c.JSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	payments, err := pc.Payments.FindByUser(ctx, email)
	if err != nil {
		pc.Logger.Error("listing user payments", zap.String("email", email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, payments)
}
