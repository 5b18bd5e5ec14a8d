package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret []byte

func init() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		// Development fallback; set JWT_SECRET in production.
		secret = "cleaning-planner-dev-secret"
	}
	jwtSecret = []byte(secret)
}

// ExportClaims authorizes a single ICS download. Calendar applications fetch
// export URLs without a session cookie, so the link itself carries a
// short-lived signed token instead.
type ExportClaims struct {
	OrderID   uint `json:"order_id"`
	AccountID uint `json:"account_id"`
	jwt.RegisteredClaims
}

// GenerateExportToken signs a download token for one order.
func GenerateExportToken(orderID, accountID uint, ttl time.Duration) (string, error) {
	claims := ExportClaims{
		OrderID:   orderID,
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseExportToken validates a download token and returns its claims.
func ParseExportToken(tokenString string) (*ExportClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ExportClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*ExportClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid export token")
	}
	return claims, nil
}
