package services

import (
	"fmt"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

const CLAIMS_KEY = "claims"

type Claims struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	UserType     string `json:"user_type"`
	Subscription string `json:"subscription,omitempty"`
	jwt.StandardClaims
}

func NewClaimsFromToken(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(settingsData.JWT_SECRET_KEY), nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

func NewClaimsFromContext(ctx *gin.Context) (*Claims, bool) {
	value, exists := ctx.Get(CLAIMS_KEY)
	if !exists {
		return &Claims{}, false
	}
	claims, ok := value.(*Claims)
	if !ok {
		return &Claims{}, false
	}
	return claims, true
}
