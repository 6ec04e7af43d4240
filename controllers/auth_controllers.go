package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Xfhreall/armaso-pos/middlewares"
	"github.com/Xfhreall/armaso-pos/services"
	"github.com/Xfhreall/armaso-pos/utils"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Auth         *services.AuthService
	CookieSecure bool
}

func NewAuthController(auth *services.AuthService, cookieSecure bool) *AuthController {
	return &AuthController{Auth: auth, CookieSecure: cookieSecure}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login sets the session cookie on success.
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := ac.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.RespondJSON(c, http.StatusUnauthorized, err.Error(), gin.H{
				"success": false,
				"error":   err.Error(),
			})
			return
		}
		respondServiceError(c, err)
		return
	}

	middlewares.SetSessionCookie(c, session.Token, time.Until(session.ExpiresAt), ac.CookieSecure)
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"success":  true,
		"username": session.Username,
	})
}

// Logout revokes the current token, if any, and clears the cookie.
func (ac *AuthController) Logout(c *gin.Context) {
	if token, err := c.Cookie(middlewares.SessionCookie); err == nil && token != "" {
		if err := ac.Auth.Logout(c.Request.Context(), token); err != nil {
			respondServiceError(c, err)
			return
		}
	}
	middlewares.ClearSessionCookie(c, ac.CookieSecure)
	utils.RespondJSON(c, http.StatusOK, "Logged out", gin.H{"success": true})
}

// GetSession reports who is logged in without failing for anonymous callers.
func (ac *AuthController) GetSession(c *gin.Context) {
	token, _ := c.Cookie(middlewares.SessionCookie)
	session, err := ac.Auth.Authenticate(c.Request.Context(), token)
	if err != nil {
		if !errors.Is(err, services.ErrUnauthenticated) {
			respondServiceError(c, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Not logged in", gin.H{"is_logged_in": false})
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Session", gin.H{
		"user_id":      session.UserID,
		"username":     session.Username,
		"is_logged_in": true,
	})
}
