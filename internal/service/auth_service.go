package service

import (
	"errors"
	"strings"
	"time"

	"github.com/shopfront-next/internal/config"
	"github.com/shopfront-next/internal/models"
	"github.com/shopfront-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const minAdminPasswordLength = 8

// AuthService 认证服务：后台管理员登录与购物者身份令牌校验
type AuthService struct {
	cfg       *config.Config
	adminRepo repository.AdminRepository
}

// NewAuthService 创建认证服务实例
func NewAuthService(cfg *config.Config, adminRepo repository.AdminRepository) *AuthService {
	return &AuthService{
		cfg:       cfg,
		adminRepo: adminRepo,
	}
}

// HashPassword 使用 bcrypt 加密密码
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 验证密码
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// JWTClaims 管理员 JWT 声明
type JWTClaims struct {
	AdminID      uint   `json:"admin_id"`
	Username     string `json:"username"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// ShopperClaims 购物者身份令牌声明（由外部身份提供方签发）
type ShopperClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// ShopperKey 购物者标识：小写邮箱
func (c *ShopperClaims) ShopperKey() string {
	if c == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(c.Email))
}

// GenerateJWT 生成管理员 JWT
func (s *AuthService) GenerateJWT(admin *models.Admin) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(s.cfg.JWT.ExpireHours) * time.Hour)
	claims := JWTClaims{
		AdminID:      admin.ID,
		Username:     admin.Username,
		TokenVersion: admin.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT 解析管理员 JWT
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

// AuthenticateAdmin 校验令牌并确认管理员仍有效且令牌版本一致
func (s *AuthService) AuthenticateAdmin(tokenString string) (*models.Admin, error) {
	claims, err := s.ParseJWT(tokenString)
	if err != nil {
		return nil, ErrInvalidToken
	}
	admin, err := s.adminRepo.GetByID(claims.AdminID)
	if err != nil {
		return nil, upstream(err)
	}
	if admin == nil || admin.TokenVersion != claims.TokenVersion {
		return nil, ErrInvalidToken
	}
	return admin, nil
}

// Login 管理员登录
func (s *AuthService) Login(username, password string) (*models.Admin, string, time.Time, error) {
	admin, err := s.adminRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, "", time.Time{}, upstream(err)
	}
	if admin == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := s.VerifyPassword(admin.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateJWT(admin)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	if err := s.adminRepo.TouchLastLogin(admin.ID, now); err != nil {
		return nil, "", time.Time{}, upstream(err)
	}
	admin.LastLoginAt = &now
	return admin, token, expiresAt, nil
}

// CreateAdmin 创建后台账号
func (s *AuthService) CreateAdmin(username, password string, isSuper bool) (*models.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(password) < minAdminPasswordLength {
		return nil, ErrAdminInvalid
	}
	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}
	admin := &models.Admin{
		Username:     username,
		PasswordHash: hash,
		IsSuper:      isSuper,
	}
	if err := s.adminRepo.Create(admin); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrAdminExists
		}
		return nil, upstream(err)
	}
	return admin, nil
}

// RevokeSessions 递增令牌版本，使该管理员已签发的令牌全部失效
func (s *AuthService) RevokeSessions(adminID uint) error {
	ok, err := s.adminRepo.IncrementTokenVersion(adminID)
	if err != nil {
		return upstream(err)
	}
	if !ok {
		return ErrAdminNotFound
	}
	return nil
}

// IssueShopperToken 签发购物者令牌（本地联调与种子数据使用）
func (s *AuthService) IssueShopperToken(email, name string) (string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", time.Time{}, ErrShopperRequired
	}
	now := time.Now()
	hours := s.cfg.UserJWT.ExpireHours
	if hours <= 0 {
		hours = 24
	}
	expiresAt := now.Add(time.Duration(hours) * time.Hour)
	claims := ShopperClaims{
		Email: email,
		Name:  strings.TrimSpace(name),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.UserJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseShopperToken 校验购物者令牌，要求携带邮箱
func (s *AuthService) ParseShopperToken(tokenString string) (*ShopperClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &ShopperClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.UserJWT.SecretKey), nil
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*ShopperClaims)
	if !ok || !token.Valid || claims.ShopperKey() == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
