package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lunara-health/lunara/internal/models"
)

const (
	tokenKindAccess  = "access"
	tokenKindRefresh = "refresh"
)

type authClaims struct {
	UserID    uint   `json:"uid"`
	TokenKind string `json:"kind"`
	jwt.RegisteredClaims
}

type tokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// issueTokenPair mints an access/refresh pair and records the refresh JTI
// so it can be rotated exactly once.
func (handler *Handler) issueTokenPair(user *models.User, now time.Time) (tokenPair, error) {
	access, err := handler.buildToken(user, tokenKindAccess, "", now, handler.accessTTL)
	if err != nil {
		return tokenPair{}, err
	}

	jti := uuid.NewString()
	refresh, err := handler.buildToken(user, tokenKindRefresh, jti, now, handler.refreshTTL)
	if err != nil {
		return tokenPair{}, err
	}
	if err := handler.auth.TrackRefreshToken(user.ID, jti, now.Add(handler.refreshTTL)); err != nil {
		return tokenPair{}, err
	}

	return tokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int(handler.accessTTL.Seconds()),
	}, nil
}

func (handler *Handler) buildToken(user *models.User, kind string, jti string, now time.Time, ttl time.Duration) (string, error) {
	claims := authClaims{
		UserID:    user.ID,
		TokenKind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(handler.secretKey)
}

func (handler *Handler) parseToken(raw string, kind string) (*authClaims, error) {
	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.TokenKind != kind {
		return nil, errors.New("wrong token kind")
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, errors.New("token expired")
	}
	return claims, nil
}

func bearerToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[len("Bearer "):])
}
