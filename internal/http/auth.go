package http

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	guuid "github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/TejasJagadale/backendofficial/internal/domain"
	"github.com/TejasJagadale/backendofficial/internal/log"
	"github.com/TejasJagadale/backendofficial/internal/queue"
	"github.com/TejasJagadale/backendofficial/internal/repo"
	"github.com/TejasJagadale/backendofficial/internal/security"
)

var mobileRe = regexp.MustCompile(`^[0-9]{10}$`)

// invalidCredentials is the single message for both unknown email and wrong
// password; the two cases must be indistinguishable to the caller.
const invalidCredentials = "Invalid credentials"

type signupReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

// Signup godoc
// @Summary Register a local account
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body signupReq true "signup"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /auth/signup [post]
func (h *Handler) Signup(c *gin.Context) {
	var in signupReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)
	in.Mobile = strings.TrimSpace(in.Mobile)

	switch {
	case in.Name == "":
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	case email == "" || !strings.Contains(email, "@"):
		c.JSON(http.StatusBadRequest, gin.H{"error": "a valid email is required"})
		return
	case len(in.Password) < security.MinPasswordLen:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters long."})
		return
	}
	if in.Mobile != "" && !mobileRe.MatchString(in.Mobile) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a valid 10-digit mobile number"})
		return
	}

	ctx := c.Request.Context()
	if u, err := h.Store.FindUserByEmail(ctx, email); err != nil {
		serverError(c)
		return
	} else if u != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists with this email"})
		return
	}
	if in.Mobile != "" {
		if u, err := h.Store.FindUserByMobile(ctx, in.Mobile); err != nil {
			serverError(c)
			return
		} else if u != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists with this mobile number"})
			return
		}
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		serverError(c)
		return
	}
	u := &domain.User{Name: in.Name, Email: email, Mobile: in.Mobile, PasswordHash: hash}
	if err := h.Store.CreateUser(ctx, u); err != nil {
		// unique index closes the check-then-insert race
		if repo.IsDup(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists with this email"})
			return
		}
		serverError(c)
		return
	}

	go h.Events.Publish(context.Background(), queue.KeyUserRegistered,
		queue.UserRegistered{UserID: u.ID, Email: u.Email, Name: u.Name}, reqID(c))

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User created successfully. Please login.",
	})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login godoc
// @Summary Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginReq true "login"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var in loginReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))

	u, err := h.Store.FindUserByEmail(c.Request.Context(), email)
	if err != nil {
		serverError(c)
		return
	}
	if u == nil || u.PasswordHash == "" || !security.CheckPassword(u.PasswordHash, in.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidCredentials})
		return
	}

	tok, err := security.MakeAccess(h.JWTSecret, u.ID.Hex(), u.Email, security.SessionTTL)
	if err != nil {
		serverError(c)
		return
	}

	go h.Events.Publish(context.Background(), queue.KeyUserLoggedIn,
		queue.UserLoggedIn{UserID: u.ID, Email: u.Email}, reqID(c))

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   tok,
		"user":    publicUser(u),
	})
}

type googleReq struct {
	Token string `json:"token"`
}

// GoogleSignIn godoc
// @Summary Sign in with a Google ID token
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body googleReq true "Google ID token"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /auth/google [post]
func (h *Handler) GoogleSignIn(c *gin.Context) {
	var in googleReq
	if err := c.ShouldBindJSON(&in); err != nil || in.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}
	gu, err := h.Google.VerifyIDToken(c.Request.Context(), in.Token)
	if err != nil {
		log.L().Warn("google sign-in rejected", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Google authentication failed"})
		return
	}
	h.finishGoogle(c, gu.Email, gu.Sub, gu.Name, gu.Picture)
}

// GoogleAuthURL hands the frontend a consent URL for the auth-code flow.
func (h *Handler) GoogleAuthURL(c *gin.Context) {
	state := guuid.NewString()
	c.JSON(http.StatusOK, gin.H{"url": h.Google.AuthURL(state), "state": state})
}

// GoogleCallback finishes the auth-code flow.
func (h *Handler) GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
		return
	}
	raw, err := h.Google.Exchange(c.Request.Context(), code)
	if err != nil {
		log.L().Warn("google exchange failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Google authentication failed"})
		return
	}
	gu, err := h.Google.VerifyIDToken(c.Request.Context(), raw)
	if err != nil {
		log.L().Warn("google callback token rejected", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Google authentication failed"})
		return
	}
	h.finishGoogle(c, gu.Email, gu.Sub, gu.Name, gu.Picture)
}

// finishGoogle maps a verified Google identity onto a user record: existing
// email accounts are promoted by attaching the Google subject, never
// duplicated.
func (h *Handler) finishGoogle(c *gin.Context, email, sub, name, picture string) {
	ctx := c.Request.Context()
	email = strings.ToLower(email)

	u, err := h.Store.FindUserByEmail(ctx, email)
	if err != nil {
		serverError(c)
		return
	}
	if u == nil {
		if u, err = h.Store.FindUserByGoogleID(ctx, sub); err != nil {
			serverError(c)
			return
		}
	}
	switch {
	case u == nil:
		u = &domain.User{
			Name:     name,
			Email:    email,
			Avatar:   picture,
			GoogleID: sub,
			Verified: true,
		}
		if err := h.Store.CreateUser(ctx, u); err != nil {
			serverError(c)
			return
		}
	case u.GoogleID == "":
		if err := h.Store.AttachGoogle(ctx, u.ID, sub, picture); err != nil {
			serverError(c)
			return
		}
		u.GoogleID = sub
	}

	tok, err := security.MakeAccess(h.JWTSecret, u.ID.Hex(), u.Email, security.SessionTTL)
	if err != nil {
		serverError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": tok, "user": publicUser(u)})
}

type forgotReq struct {
	Email string `json:"email"`
}

// genericResetMsg never reveals whether the email exists.
const genericResetMsg = "If an account with that email exists, a password reset link has been sent."

// ForgotPassword godoc
// @Summary Request a password reset link
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body forgotReq true "email"
// @Success 200 {object} map[string]any
// @Router /auth/forgot-password [post]
func (h *Handler) ForgotPassword(c *gin.Context) {
	var in forgotReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	resp := gin.H{"success": true, "message": genericResetMsg}

	u, err := h.Store.FindUserByEmail(c.Request.Context(), email)
	if err != nil {
		serverError(c)
		return
	}
	if u == nil {
		c.JSON(http.StatusOK, resp)
		return
	}

	token, err := security.NewResetToken()
	if err != nil {
		serverError(c)
		return
	}
	expires := time.Now().UTC().Add(security.ResetTokenTTL)
	if err := h.Store.SetResetToken(c.Request.Context(), u.ID, token, expires); err != nil {
		serverError(c)
		return
	}

	resetURL := h.FrontendURL + "/reset-password/" + token
	if err := h.Mail.SendPasswordReset(u.Email, resetURL); err != nil {
		log.L().Error("reset mail dispatch failed", zap.String("email", u.Email), zap.Error(err))
	}

	go h.Events.Publish(context.Background(), queue.KeyPasswordResetRequested,
		queue.PasswordResetRequested{UserID: u.ID, Email: u.Email}, reqID(c))

	if h.Dev {
		resp["reset_token_dev"] = token
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyResetToken godoc
// @Summary Check a reset token without consuming it
// @Tags auth
// @Produce json
// @Param token path string true "reset token"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /auth/verify-reset-token/{token} [get]
func (h *Handler) VerifyResetToken(c *gin.Context) {
	token := c.Param("token")
	u, err := h.Store.FindUserByResetToken(c.Request.Context(), token)
	if err != nil {
		serverError(c)
		return
	}
	if u == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password reset token is invalid or has expired."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Token is valid", "email": u.Email})
}

type resetReq struct {
	Password string `json:"password"`
}

// ResetPassword godoc
// @Summary Reset the password with a one-time token
// @Tags auth
// @Accept json
// @Produce json
// @Param token path string true "reset token"
// @Param payload body resetReq true "new password"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /auth/reset-password/{token} [post]
func (h *Handler) ResetPassword(c *gin.Context) {
	token := c.Param("token")
	var in resetReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if len(in.Password) < security.MinPasswordLen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters long."})
		return
	}
	hash, err := security.HashPassword(in.Password)
	if err != nil {
		serverError(c)
		return
	}
	// validate + clear + swap the hash in one atomic update; a second attempt
	// with the same token finds nothing to match
	u, err := h.Store.ConsumeResetToken(c.Request.Context(), token, hash)
	if err != nil {
		serverError(c)
		return
	}
	if u == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password reset token is invalid or has expired."})
		return
	}

	if err := h.Mail.SendPasswordChanged(u.Email); err != nil {
		log.L().Error("confirmation mail dispatch failed", zap.String("email", u.Email), zap.Error(err))
	}
	go h.Events.Publish(context.Background(), queue.KeyPasswordChanged,
		queue.PasswordChanged{UserID: u.ID, Email: u.Email}, reqID(c))

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password has been reset successfully."})
}

// Profile returns the authenticated user, password hash excluded by json tags.
func (h *Handler) Profile(c *gin.Context) {
	au := currentUser(c)
	id, err := primitive.ObjectIDFromHex(au.UID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	u, err := h.Store.FindUserByID(c.Request.Context(), id)
	if err != nil {
		serverError(c)
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}

type updateProfileReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	au := currentUser(c)
	id, err := primitive.ObjectIDFromHex(au.UID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	var in updateProfileReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and email are required"})
		return
	}

	ctx := c.Request.Context()
	if other, err := h.Store.FindUserByEmail(ctx, email); err != nil {
		serverError(c)
		return
	} else if other != nil && other.ID != id {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already in use"})
		return
	}

	u, err := h.Store.UpdateProfile(ctx, id, name, email)
	if err != nil {
		if repo.IsDup(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already in use"})
			return
		}
		serverError(c)
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": u})
}

func currentUser(c *gin.Context) AuthUser {
	v, _ := c.Get(authUserKey)
	au, _ := v.(AuthUser)
	return au
}

func publicUser(u *domain.User) gin.H {
	out := gin.H{"id": u.ID, "name": u.Name, "email": u.Email}
	if u.Avatar != "" {
		out["avatar"] = u.Avatar
	}
	return out
}
