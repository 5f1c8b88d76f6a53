package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"skillytics-api/config"
	"skillytics-api/database"
	"skillytics-api/internal/domain/users"

	oidc "github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
)

var (
	googleProvider *oidc.Provider
	googleVerifier *oidc.IDTokenVerifier
	googleOAuthCfg *oauth2.Config
)

// InitGoogleOIDC must be called once at startup, after config.LoadEnv.
func InitGoogleOIDC(ctx context.Context) error {
	provider, err := oidc.NewProvider(ctx, "https://accounts.google.com")
	if err != nil {
		return fmt.Errorf("oidc discovery failed: %w", err)
	}
	googleProvider = provider
	googleVerifier = provider.Verifier(&oidc.Config{ClientID: config.GOOGLE_CLIENT_ID})
	googleOAuthCfg = &oauth2.Config{
		ClientID:     config.GOOGLE_CLIENT_ID,
		ClientSecret: config.GOOGLE_CLIENT_SECRET,
		RedirectURL:  config.GOOGLE_REDIRECT_URL,
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
	}
	return nil
}

func randomState() string {
	b := make([]byte, 24)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

func GoogleLogin(c *gin.Context) {
	if googleOAuthCfg == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google sign-in is not configured"})
		return
	}
	state := randomState()
	c.SetCookie("oauth_state", state, 600, "/", "", false, true)
	c.Redirect(http.StatusFound, googleOAuthCfg.AuthCodeURL(state))
}

func GoogleCallback(c *gin.Context) {
	if googleOAuthCfg == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google sign-in is not configured"})
		return
	}

	stateCookie, err := c.Cookie("oauth_state")
	if err != nil || stateCookie == "" || stateCookie != c.Query("state") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OAuth state"})
		return
	}
	c.SetCookie("oauth_state", "", -1, "/", "", false, true)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	token, err := googleOAuthCfg.Exchange(ctx, c.Query("code"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Code exchange failed"})
		return
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No id_token in response"})
		return
	}

	idToken, err := googleVerifier.Verify(ctx, rawIDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid id_token"})
		return
	}

	var claims struct {
		Sub           string `json:"sub"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
	}
	if err := idToken.Claims(&claims); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to parse claims"})
		return
	}
	if !claims.EmailVerified {
		c.JSON(http.StatusForbidden, gin.H{"error": "Google account email is not verified"})
		return
	}

	var user users.User
	err = database.DB.Where("google_sub = ?", claims.Sub).First(&user).Error
	if err != nil {
		// Link by email if the account already exists, otherwise create.
		err = database.DB.Where("email = ?", claims.Email).First(&user).Error
		if err != nil {
			user = users.User{
				Name:             claims.Name,
				Email:            claims.Email,
				AuthProvider:     "google",
				GoogleSub:        &claims.Sub,
				Avatar:           &claims.Picture,
				Role:             "user",
				IsVerified:       true,
				SubscriptionTier: "FREE",
				Level:            1,
			}
			if err := database.DB.Create(&user).Error; err != nil {
				fmt.Println("❌ Google signup insert error:", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
				return
			}
		} else {
			database.DB.Model(&user).Updates(map[string]interface{}{
				"google_sub":  claims.Sub,
				"is_verified": true,
				"avatar":      claims.Picture,
			})
		}
	}

	now := time.Now()
	database.DB.Model(&users.User{}).Where("id = ?", user.ID).Update("last_active_at", now)

	tokenString, err := issueAppJWT(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	frontend := config.GOOGLE_FRONTEND_REDIRECT
	if frontend == "" {
		frontend = config.APP_URL + "/auth/callback"
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("%s?token=%s", frontend, tokenString))
}
