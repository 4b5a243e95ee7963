package routes

import (
	"github.com/gin-gonic/gin"

	"cityfix-be/controllers"
)

// PaymentRoutes sets up the payment and admin stats routes.
func PaymentRoutes(r *gin.Engine, auth, admin gin.HandlerFunc, payments *controllers.PaymentController, stats *controllers.StatsController) {
	r.POST("/create-payment-intent", auth, payments.CreatePaymentIntent)
	r.POST("/payments", auth, payments.RecordPayment)
	r.GET("/payments", auth, admin, payments.GetAllPayments)
	r.GET("/payments/:email", auth, payments.GetUserPayments)

	r.GET("/admin-stats", auth, admin, stats.AdminStats)
}
