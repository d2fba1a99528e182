package jwt

import (
	"errors"
	"fmt"
	"time"

	"bio_showcase/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

func NewToken(admin models.Admin, secret string, duration time.Duration) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["uid"] = admin.ID
	claims["username"] = admin.Username
	claims["exp"] = time.Now().Add(duration).Unix()

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the signature and expiry of an admin token.
func ParseToken(tokenString, secret string) (models.AdminClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return models.AdminClaims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.AdminClaims{}, ErrInvalidToken
	}

	uid, _ := claims["uid"].(string)
	username, _ := claims["username"].(string)
	if uid == "" || username == "" {
		return models.AdminClaims{}, ErrInvalidToken
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return models.AdminClaims{}, ErrInvalidToken
	}

	return models.AdminClaims{
		AdminID:   uid,
		Username:  username,
		ExpiresAt: exp.Unix(),
	}, nil
}
