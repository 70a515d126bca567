package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/joserrivase/Accountability-Buddy-sub000/config"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/user"
	appErrors "github.com/joserrivase/Accountability-Buddy-sub000/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

type JwtService struct {
	cfg         config.JWTConfig
	UserService *user.Service
}

func NewJwtService(cfg config.JWTConfig, userSvc *user.Service) (*JwtService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("JWT secret não configurado")
	}
	return &JwtService{
		cfg:         cfg,
		UserService: userSvc,
	}, nil
}

type claims struct {
	UserId string `json:"user_id"`
	jwt.RegisteredClaims
}

func (s *JwtService) GenerateToken(userID ulid.ULID) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserId: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Duration)),
		},
	})
	return token.SignedString([]byte(s.cfg.Secret))
}

func (s *JwtService) ValidateToken(tokenStr string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("método de assinatura inesperado")
		}
		return []byte(s.cfg.Secret), nil
	}, jwt.WithIssuer(s.cfg.Issuer))
	if err != nil {
		return "", appErrors.ErrUnauthorized.WithError(err)
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid || c.UserId == "" {
		return "", appErrors.ErrUnauthorized
	}
	return c.UserId, nil
}

// AuthMiddleware valida o Bearer token e injeta "user_id" no contexto.
func AuthMiddleware(jwtSvc *JwtService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.JSON(appErrors.ErrUnauthorized.StatusCode, gin.H{
				"error":   appErrors.ErrUnauthorized.Code,
				"message": "Token de autenticação ausente",
			})
			c.Abort()
			return
		}

		userID, err := jwtSvc.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.JSON(appErrors.ErrUnauthorized.StatusCode, gin.H{
				"error":   appErrors.ErrUnauthorized.Code,
				"message": "Token inválido ou expirado",
			})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
