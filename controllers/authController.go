package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authUtils "cityfix-be/utils"
)

// AuthController exchanges identity claims for signed access tokens.
type AuthController struct {
	Secret string
}

func NewAuthController(secret string) *AuthController {
	return &AuthController{Secret: secret}
}

// IssueToken handles POST /jwt. The client supplies its identity claims
// (at minimum the email) and receives a 7-day HS256 token. The token
// itself is the credential; no session state is kept server-side.
func (ac *AuthController) IssueToken(c *gin.Context) {
	var claims map[string]interface{}
	if err := c.ShouldBindJSON(&claims); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	token, err := authUtils.GenerateToken(claims, ac.Secret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
