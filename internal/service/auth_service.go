package service

import (
	"errors"
	"strings"
	"time"

	"github.com/agrimarket-logistics/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenInvalid 令牌无效
	ErrTokenInvalid = errors.New("token invalid")
	// ErrJWTSecretMissing 未配置签名密钥
	ErrJWTSecretMissing = errors.New("jwt secret missing")
)

// AuthService 后台令牌签发与校验
// 正式环境令牌由运营后台签发，这里签发主要供运维工具与测试使用
type AuthService struct {
	cfg config.JWTConfig
}

// NewAuthService 创建认证服务实例
func NewAuthService(cfg config.JWTConfig) *AuthService {
	return &AuthService{cfg: cfg}
}

// JWTClaims JWT 声明
type JWTClaims struct {
	AdminID uint     `json:"admin_id"`
	Roles   []string `json:"roles"`
	jwt.RegisteredClaims
}

// GenerateJWT 为后台操作员签发令牌
func (s *AuthService) GenerateJWT(adminID uint, roles []string) (string, time.Time, error) {
	if strings.TrimSpace(s.cfg.SecretKey) == "" {
		return "", time.Time{}, ErrJWTSecretMissing
	}
	hours := s.cfg.ExpireHours
	if hours <= 0 {
		hours = 24
	}
	now := time.Now()
	expiresAt := now.Add(time.Duration(hours) * time.Hour)

	claims := JWTClaims{
		AdminID: adminID,
		Roles:   roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT 解析 JWT Token，配置了 issuer 时一并校验
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	if strings.TrimSpace(s.cfg.SecretKey) == "" {
		return nil, ErrJWTSecretMissing
	}
	options := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer := strings.TrimSpace(s.cfg.Issuer); issuer != "" {
		options = append(options, jwt.WithIssuer(issuer))
	}
	parser := jwt.NewParser(options...)
	claims := &JWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.AdminID == 0 && len(claims.Roles) == 0 {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
