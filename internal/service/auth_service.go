package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/proshopcms/internal/db"
)

const (
	minPasswordLength   = 6
	resetTokenTTL       = time.Hour
	resetTokenPurpose   = "password_reset"
	confirmTokenTTL     = 24 * time.Hour
	confirmTokenPurpose = "signup_confirm"
)

var (
	// ErrInvalidCredentials 表示邮箱或密码错误。
	ErrInvalidCredentials = errors.New("invalid login credentials")
	// ErrEmailTaken 表示邮箱已注册。
	ErrEmailTaken = errors.New("user already registered")
	// ErrInvalidEmail 表示邮箱格式不正确。
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrWeakPassword 表示密码长度不足。
	ErrWeakPassword = fmt.Errorf("password should be at least %d characters", minPasswordLength)
	// ErrInvalidResetToken 表示重置令牌无效、过期或已被使用。
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
	// ErrUserNotFound 表示账号不存在。
	ErrUserNotFound = errors.New("user not found")
	// ErrAccountUnconfirmed 表示账号尚未通过邮件确认。
	ErrAccountUnconfirmed = errors.New("email not confirmed")
	// ErrInvalidConfirmToken 表示确认令牌无效或过期。
	ErrInvalidConfirmToken = errors.New("invalid or expired confirmation token")
)

// AccountNotifier 负责把重置链接与注册确认链接送达用户。
type AccountNotifier interface {
	SendPasswordReset(ctx context.Context, email, link string) error
	SendSignUpConfirmation(ctx context.Context, email, link string) error
}

// LogNotifier 只把链接写入日志，适用于未接入邮件服务的部署。
type LogNotifier struct {
	Logger *zap.Logger
}

// SendPasswordReset 记录重置链接。
func (n LogNotifier) SendPasswordReset(_ context.Context, email, link string) error {
	n.logger().Info("password reset requested", zap.String("email", email), zap.String("link", link))
	return nil
}

// SendSignUpConfirmation 记录注册确认链接。
func (n LogNotifier) SendSignUpConfirmation(_ context.Context, email, link string) error {
	n.logger().Info("sign up confirmation requested", zap.String("email", email), zap.String("link", link))
	return nil
}

func (n LogNotifier) logger() *zap.Logger {
	if n.Logger == nil {
		return zap.NewNop()
	}
	return n.Logger
}

type accountClaims struct {
	Purpose     string `json:"purpose"`
	Fingerprint string `json:"pwd"`
	jwt.RegisteredClaims
}

// AuthService 负责后台账号的注册、登录与密码重置。
type AuthService struct {
	db       *gorm.DB
	secret   []byte
	notifier AccountNotifier
	now      func() time.Time
}

// NewAuthService 构造 AuthService。secret 用于签发重置令牌与确认令牌。
func NewAuthService(gdb *gorm.DB, secret string, notifier AccountNotifier) *AuthService {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &AuthService{
		db:       gdb,
		secret:   []byte(secret),
		notifier: notifier,
		now:      time.Now,
	}
}

// SignUp 由已登录管理员创建账号，账号立即可用。
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*db.User, error) {
	confirmedAt := s.now()
	return s.createUser(ctx, email, password, &confirmedAt)
}

// Register 自助注册：账号创建后处于未确认状态，确认链接交给 notifier。
func (s *AuthService) Register(ctx context.Context, email, password, redirectTo string) (*db.User, error) {
	user, err := s.createUser(ctx, email, password, nil)
	if err != nil {
		return nil, err
	}
	token, err := s.issueToken(user, confirmTokenPurpose, confirmTokenTTL)
	if err != nil {
		return nil, err
	}
	if err := s.notifier.SendSignUpConfirmation(ctx, user.Email, buildLink(redirectTo, "/admin/confirm-signup", token)); err != nil {
		return nil, err
	}
	return user, nil
}

// ConfirmSignUp 使用确认令牌激活账号。重复确认是幂等的。
func (s *AuthService) ConfirmSignUp(ctx context.Context, token string) (*db.User, error) {
	claims, ok := s.parseToken(token, confirmTokenPurpose)
	if !ok {
		return nil, ErrInvalidConfirmToken
	}
	user, err := s.findByEmail(ctx, claims.Subject)
	if err != nil || passwordFingerprint(user.Password) != claims.Fingerprint {
		return nil, ErrInvalidConfirmToken
	}
	if user.Confirmed() {
		return user, nil
	}

	confirmedAt := s.now()
	if err := s.db.WithContext(ctx).Model(&db.User{}).Where("id = ?", user.ID).Update("confirmed_at", confirmedAt).Error; err != nil {
		return nil, fmt.Errorf("confirm user: %w", err)
	}
	user.ConfirmedAt = &confirmedAt
	return user, nil
}

func (s *AuthService) createUser(ctx context.Context, email, password string, confirmedAt *time.Time) (*db.User, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := db.User{Email: normalized, Password: string(hashed), ConfirmedAt: confirmedAt}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// SignIn 校验邮箱与密码。未确认的账号返回 ErrAccountUnconfirmed。
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*db.User, error) {
	user, err := s.findByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrInvalidEmail) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Confirmed() {
		return nil, ErrAccountUnconfirmed
	}
	return user, nil
}

// RequestPasswordReset 为已注册邮箱签发一小时有效的重置令牌并交给 notifier。
// 邮箱不存在时静默返回，避免暴露账号是否存在。
func (s *AuthService) RequestPasswordReset(ctx context.Context, email, redirectTo string) error {
	user, err := s.findByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil
		}
		return err
	}

	token, err := s.issueToken(user, resetTokenPurpose, resetTokenTTL)
	if err != nil {
		return err
	}
	return s.notifier.SendPasswordReset(ctx, user.Email, buildLink(redirectTo, "/admin/reset-password", token))
}

// ResetPassword 使用重置令牌设置新密码。令牌绑定旧密码哈希，改密后自动失效。
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, ok := s.parseToken(token, resetTokenPurpose)
	if !ok {
		return ErrInvalidResetToken
	}

	user, err := s.findByEmail(ctx, claims.Subject)
	if err != nil {
		return ErrInvalidResetToken
	}
	if passwordFingerprint(user.Password) != claims.Fingerprint {
		return ErrInvalidResetToken
	}
	return s.UpdatePassword(ctx, user.ID, newPassword)
}

// UpdatePassword 为已登录用户设置新密码。
func (s *AuthService) UpdatePassword(ctx context.Context, userID uint, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return ErrWeakPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	result := s.db.WithContext(ctx).Model(&db.User{}).Where("id = ?", userID).Update("password", string(hashed))
	if result.Error != nil {
		return fmt.Errorf("update password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Get 根据主键读取账号。
func (s *AuthService) Get(ctx context.Context, id uint) (*db.User, error) {
	var user db.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

func (s *AuthService) findByEmail(ctx context.Context, email string) (*db.User, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	var user db.User
	if err := s.db.WithContext(ctx).Where("email = ?", normalized).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (s *AuthService) issueToken(user *db.User, purpose string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := accountClaims{
		Purpose:     purpose,
		Fingerprint: passwordFingerprint(user.Password),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", purpose, err)
	}
	return signed, nil
}

func (s *AuthService) parseToken(token, purpose string) (*accountClaims, bool) {
	claims := &accountClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid || claims.Purpose != purpose {
		return nil, false
	}
	return claims, true
}

func normalizeEmail(email string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(email))
	if trimmed == "" {
		return "", ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return "", ErrInvalidEmail
	}
	return trimmed, nil
}

func passwordFingerprint(hash string) string {
	sum := sha256.Sum256([]byte(hash))
	return hex.EncodeToString(sum[:8])
}

func buildLink(redirectTo, fallback, token string) string {
	base := strings.TrimSpace(redirectTo)
	if base == "" {
		base = fallback
	}
	separator := "?"
	if strings.Contains(base, "?") {
		separator = "&"
	}
	return base + separator + "token=" + token
}
