package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GameClaims are the JWT claims of a resume token. The token binds a
// client to exactly one game; there are no user accounts behind it.
type GameClaims struct {
	GameID string `json:"game_id"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates resume tokens for game sessions.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue creates a signed resume token for gameID.
func (tm *TokenManager) Issue(gameID string) (string, error) {
	claims := &GameClaims{
		GameID: gameID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tm.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Validate parses a resume token and returns its claims.
func (tm *TokenManager) Validate(tokenString string) (*GameClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &GameClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*GameClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
