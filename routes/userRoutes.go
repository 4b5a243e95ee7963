package routes

import (
	"github.com/gin-gonic/gin"

	"cityfix-be/controllers"
)

// UserRoutes sets up the auth and user management routes.
func UserRoutes(r *gin.Engine, auth, admin gin.HandlerFunc, authCtrl *controllers.AuthController, users *controllers.UserController) {
	r.POST("/jwt", authCtrl.IssueToken)

	r.POST("/users", users.UpsertUser)
	r.GET("/users", auth, admin, users.GetAllUsers)
	r.GET("/users/staff", auth, admin, users.GetStaff)
	r.GET("/users/:email", auth, users.GetUser)
	r.GET("/users/:email/role", users.GetUserRole)
	r.PATCH("/users/:email", auth, users.UpdateProfile)
	r.PATCH("/users/admin/:id", auth, admin, users.UpdateUserAdmin)
}
