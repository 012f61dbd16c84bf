package auth

import (
	"time"

	"sportsfest/config"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	SessionId string `json:"session_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	Exp       int64  `json:"exp"`
}

func (claims *Claims) FromJWTClaims(jwtClaims jwt.Claims) {
	mapClaims, ok := jwtClaims.(jwt.MapClaims)
	if !ok {
		return
	}
	if sessionId, ok := mapClaims["session_id"].(string); ok {
		claims.SessionId = sessionId
	}
	if username, ok := mapClaims["username"].(string); ok {
		claims.Username = username
	}
	if role, ok := mapClaims["role"].(string); ok {
		claims.Role = role
	}
	if exp, ok := mapClaims["exp"].(float64); ok {
		claims.Exp = int64(exp)
	}
}

func (claims *Claims) Valid() error {
	if time.Now().Unix() > claims.Exp {
		return jwt.ErrTokenExpired
	}
	return nil
}

func CreateToken(sessionId string, username string, role string, expiry time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwt.MapClaims{
			"session_id": sessionId,
			"username":   username,
			"role":       role,
			"exp":        expiry.Unix(),
		})

	tokenString, err := token.SignedString([]byte(config.Env().JWTSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func ParseToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.Env().JWTSecret), nil
	})

	if err != nil {
		return nil, err
	}
	return token, nil
}
