package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtgo "github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"holdem-server/internal/config"
)

// Issuer issues the JWT
const Issuer = "holdem-server"

// Audience is the intended JWT audience
const Audience = "holdem-client"

var secret []byte
var ttl time.Duration

// LoadSecret loads the signing secret from the configuration
// this method should only be called once.
func LoadSecret() {
	cfg := config.Instance().JWT
	if cfg.Secret == "" {
		logrus.Fatal("missing jwt secret in configuration")
	}

	setSecret([]byte(cfg.Secret), cfg.TTL)
}

func setSecret(key []byte, d time.Duration) {
	secret = key
	ttl = d
}

// Sign will sign a JWT for the user ID
func Sign(userID string) (string, error) {
	if secret == nil {
		panic("LoadSecret() not called")
	}

	now := time.Now()
	claims := jwtgo.StandardClaims{
		Audience: Audience,
		Id:       uuid.New().String(),
		IssuedAt: now.Unix(),
		Issuer:   Issuer,
		Subject:  userID,
	}

	if ttl > 0 {
		claims.ExpiresAt = now.Add(ttl).Unix()
	}

	return jwtgo.NewWithClaims(jwtgo.SigningMethodHS256, claims).SignedString(secret)
}

// ValidUserID will validate a signed JWT and return the user ID
func ValidUserID(signedString string) (string, error) {
	if secret == nil {
		panic("LoadSecret() not called")
	}

	token, err := jwtgo.ParseWithClaims(signedString, &jwtgo.StandardClaims{}, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodHMAC); !ok {
			return nil, errors.New("expected HS256 signing method")
		}

		return secret, nil
	})

	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*jwtgo.StandardClaims)
	if !ok {
		return "", fmt.Errorf("expected jwt.StandardClaims, got %T", token.Claims)
	}

	if !claims.VerifyAudience(Audience, true) {
		return "", errors.New("invalid audience")
	}

	if !claims.VerifyIssuer(Issuer, true) {
		return "", errors.New("invalid issuer")
	}

	if claims.Subject == "" {
		return "", errors.New("missing subject")
	}

	return claims.Subject, nil
}
