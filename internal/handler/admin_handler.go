package handler

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/proshopcms/internal/service"
)

const (
	sessionUserIDKey = "user_id"
	sessionEmailKey  = "email"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signUpRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RedirectTo string `json:"redirect_to"`
}

type confirmSignUpRequest struct {
	Token string `json:"token"`
}

type resetRequest struct {
	Email      string `json:"email"`
	RedirectTo string `json:"redirect_to"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type updatePasswordRequest struct {
	Password string `json:"password"`
}

// SignUp 创建后台账号，从不为新账号写入会话。
// 已登录管理员创建的账号立即可用；匿名注册仅在 allowSignup 打开时可用，且需邮件确认后才能登录。
func (a *API) SignUp(c *gin.Context) {
	var payload signUpRequest
	if !bindJSON(c, &payload, "Email and password are required") {
		return
	}

	if _, ok := sessionUserID(c); ok {
		user, err := a.auth.SignUp(c.Request.Context(), payload.Email, payload.Password)
		if err != nil {
			a.respondAuthError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"email": user.Email, "confirmed": true})
		return
	}

	if !a.allowSignup {
		respondError(c, http.StatusForbidden, "Sign up is disabled")
		return
	}
	user, err := a.auth.Register(c.Request.Context(), payload.Email, payload.Password, payload.RedirectTo)
	if err != nil {
		a.respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"authenticated": false,
		"email":         user.Email,
		"message":       "Check your email to confirm your account",
	})
}

// ConfirmSignUp 使用邮件中的令牌激活账号。确认后仍需正常登录。
func (a *API) ConfirmSignUp(c *gin.Context) {
	var payload confirmSignUpRequest
	if !bindJSON(c, &payload, "Token is required") {
		return
	}
	user, err := a.auth.ConfirmSignUp(c.Request.Context(), payload.Token)
	if err != nil {
		a.respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": user.Email, "confirmed": true})
}

// Login 校验邮箱与密码并写入会话。
func (a *API) Login(c *gin.Context) {
	var payload credentialsRequest
	if !bindJSON(c, &payload, "Email and password are required") {
		return
	}

	user, err := a.auth.SignIn(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		a.respondAuthError(c, err)
		return
	}
	if !a.startSession(c, user.ID, user.Email) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": true, "email": user.Email})
}

// Logout 清空会话。
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		c.Error(err)
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": false})
}

// Session 只暴露是否登录与邮箱。
func (a *API) Session(c *gin.Context) {
	session := sessions.Default(c)
	if session.Get(sessionUserIDKey) == nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	email, _ := session.Get(sessionEmailKey).(string)
	c.JSON(http.StatusOK, gin.H{"authenticated": true, "email": email})
}

// RequestPasswordReset 发送重置链接。无论邮箱是否存在都返回相同结果。
func (a *API) RequestPasswordReset(c *gin.Context) {
	var payload resetRequest
	if !bindJSON(c, &payload, "Email is required") {
		return
	}
	if err := a.auth.RequestPasswordReset(c.Request.Context(), payload.Email, payload.RedirectTo); err != nil {
		a.respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Check your email for the password reset link"})
}

// ResetPassword 使用重置令牌设置新密码。
func (a *API) ResetPassword(c *gin.Context) {
	var payload resetPasswordRequest
	if !bindJSON(c, &payload, "Token and password are required") {
		return
	}
	if err := a.auth.ResetPassword(c.Request.Context(), payload.Token, payload.Password); err != nil {
		a.respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

// UpdatePassword 为当前登录用户修改密码。
func (a *API) UpdatePassword(c *gin.Context) {
	var payload updatePasswordRequest
	if !bindJSON(c, &payload, "Password is required") {
		return
	}
	userID, ok := sessionUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}
	if err := a.auth.UpdatePassword(c.Request.Context(), userID, payload.Password); err != nil {
		a.respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

// AuthRequired 拦截未登录的后台接口请求。
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := sessionUserID(c); !ok {
			respondError(c, http.StatusUnauthorized, "Not authenticated")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (a *API) startSession(c *gin.Context, userID uint, email string) bool {
	session := sessions.Default(c)
	session.Clear()
	session.Set(sessionUserIDKey, userID)
	session.Set(sessionEmailKey, email)
	if err := session.Save(); err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "Failed to save session")
		return false
	}
	return true
}

func sessionUserID(c *gin.Context) (uint, bool) {
	switch value := sessions.Default(c).Get(sessionUserIDKey).(type) {
	case uint:
		return value, value != 0
	case int:
		return uint(value), value > 0
	case int64:
		return uint(value), value > 0
	case float64:
		return uint(value), value > 0
	default:
		return 0, false
	}
}

func (a *API) respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "Invalid login credentials")
	case errors.Is(err, service.ErrAccountUnconfirmed):
		respondError(c, http.StatusForbidden, "Email not confirmed")
	case errors.Is(err, service.ErrEmailTaken):
		respondError(c, http.StatusConflict, "User already registered")
	case errors.Is(err, service.ErrInvalidEmail), errors.Is(err, service.ErrWeakPassword):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidResetToken):
		respondError(c, http.StatusBadRequest, "Invalid or expired reset link")
	case errors.Is(err, service.ErrInvalidConfirmToken):
		respondError(c, http.StatusBadRequest, "Invalid or expired confirmation link")
	case errors.Is(err, service.ErrUserNotFound):
		respondError(c, http.StatusNotFound, "User not found")
	default:
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "Authentication service unavailable")
	}
}
