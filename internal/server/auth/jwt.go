// Package auth issues and verifies session tokens and hashes passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophqa/internal/common"
	"github.com/dmitrijs2005/gophqa/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload: the standard registered claims plus the
// account the token was issued to.
type Claims struct {
	jwt.RegisteredClaims
	AccountID models.AccountID `json:"account_id"`
}

func GenerateToken(accountID models.AccountID, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		AccountID: accountID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetAccountIDFromToken validates signature, algorithm and expiry. Every
// failure wraps common.ErrInvalidCredential; expired tokens also wrap
// common.ErrTokenExpired.
func GetAccountIDFromToken(tokenString string, secretKey []byte) (models.AccountID, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, fmt.Errorf("%w: %w", common.ErrInvalidCredential, common.ErrTokenExpired)
		}
		return 0, fmt.Errorf("%w: %v", common.ErrInvalidCredential, err)
	}

	if !token.Valid {
		return 0, common.ErrInvalidCredential
	}

	if claims.AccountID <= 0 {
		return 0, fmt.Errorf("%w: no account id", common.ErrInvalidCredential)
	}

	return claims.AccountID, nil
}
