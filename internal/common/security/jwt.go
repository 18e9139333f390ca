package security

import (
	"errors"
	"time"

	"dsatracker/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var TokenAuth *jwtauth.JWTAuth

func InitJWT() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.JWTKey, nil)
}

// GenerateToken mints a signed token carrying the user's id and name.
func GenerateToken(userID int64, name string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":   userID,
		"name": name,
		"iat":  now.Unix(),
		"exp":  now.Add(config.AppConfig.JWTExp).Unix(),
		"jti":  uuid.NewString(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

// GetUserIDFromClaims extracts the numeric id claim. JSON numbers decode as
// float64, so both representations are accepted.
func GetUserIDFromClaims(claims map[string]interface{}) (int64, error) {
	switch id := claims["id"].(type) {
	case float64:
		return int64(id), nil
	case int64:
		return id, nil
	default:
		return 0, errors.New("id claim is missing or not numeric")
	}
}

func GetUserNameFromClaims(claims map[string]interface{}) (string, error) {
	name, ok := claims["name"].(string)
	if !ok || name == "" {
		return "", errors.New("name claim is missing or not a string")
	}
	return name, nil
}
