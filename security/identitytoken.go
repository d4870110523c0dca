package security

import (
	"encoding/base64"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shawnlecompte2-web/LogiVrac/model"
)

// Identity is the authenticated employee carried inside the token. The
// roster is small enough that claims hold everything the handlers need;
// no per-request roster lookup on the hot path.
type Identity struct {
	Name        string             `json:"name"`
	Role        model.Role         `json:"role"`
	Group       string             `json:"group,omitempty"`
	Permissions []model.Permission `json:"permissions,omitempty"`
}

type IdentityClaims struct {
	Identity
	jwt.RegisteredClaims
}

// User rebuilds the account the claims were minted from.
func (c *IdentityClaims) User() *model.UserAccount {
	return &model.UserAccount{
		Name:        c.Name,
		Role:        c.Role,
		Group:       c.Group,
		Permissions: c.Permissions,
	}
}

// CreateIdentityToken signs an HS256 identity token for a roster account.
// The secret is configured base64-encoded.
func CreateIdentityToken(user *model.UserAccount, base64Secret string, expiresInSeconds int64) (string, error) {
	secretBytes, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return "", err
	}
	claims := IdentityClaims{
		Identity: Identity{
			Name:        user.Name,
			Role:        user.Role,
			Group:       user.Group,
			Permissions: user.Permissions,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "logivrac",
			Audience:  []string{"logivrac-mobile"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expiresInSeconds) * time.Second)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretBytes)
}

// ParseIdentityToken validates signature and expiry and returns the claims.
func ParseIdentityToken(tokenStr string, secret []byte) (*IdentityClaims, error) {
	claims := &IdentityClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
