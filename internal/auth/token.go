package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed validity window of a session credential.
// Expiry is a hard failure; tokens are never refreshed implicitly.
const TokenTTL = time.Hour

// Claims is the identity embedded in a session credential
type Claims struct {
	Email string
	Name  string
}

// TokenIssuer signs and verifies session credentials with an HMAC key
type TokenIssuer struct {
	SignedKey    []byte
	SignedMethod jwt.SigningMethod
}

// NewTokenIssuer creates a TokenIssuer using HS256
func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{
		SignedKey:    []byte(secret),
		SignedMethod: jwt.SigningMethodHS256,
	}
}

// Issue generates a signed session token for the given identity
// with a 1 hour validity window
func (g *TokenIssuer) Issue(identity Claims) (string, error) {
	if identity.Email == "" {
		return "", fmt.Errorf("cannot issue token: no email in identity claim")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"email": identity.Email,
		"name":  identity.Name,
		"exp":   now.Add(TokenTTL).Unix(),
		"iat":   now.Unix(),
	}

	token := jwt.NewWithClaims(g.SignedMethod, claims)
	return token.SignedString(g.SignedKey)
}

// Verify parses and validates a session token, returning the embedded identity.
// It fails on bad signatures, non-HMAC algorithms and expired or not-yet-valid tokens.
func (g *TokenIssuer) Verify(tokenString string) (Claims, error) {
	claims, err := parseToken(tokenString, g.SignedKey)
	if err != nil {
		return Claims{}, err
	}

	if err := validateTimeClaims(claims); err != nil {
		return Claims{}, err
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return Claims{}, fmt.Errorf("token missing required 'email' claim")
	}

	name, _ := claims["name"].(string)

	return Claims{Email: email, Name: name}, nil
}

// parseToken validates and parses a JWT token using HMAC signing method
// Returns the claims if valid, error otherwise
func parseToken(tokenString string, key []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method to prevent algorithm confusion attacks
		// This protects against attacks where an attacker changes the algorithm header
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v. Expected HMAC", token.Header["alg"])
		}
		return key, nil
	})

	if err != nil {
		return nil, fmt.Errorf("token parsing failed: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims format")
	}

	return claims, nil
}

// validateTimeClaims performs strict validation on exp, nbf and iat
func validateTimeClaims(claims jwt.MapClaims) error {
	now := time.Now()

	// Validate token expiration (exp claim)
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return fmt.Errorf("invalid exp claim: %w", err)
	}
	if exp != nil && exp.Before(now) {
		return fmt.Errorf("token has expired")
	}

	// Validate not before (nbf claim) if present
	nbf, err := claims.GetNotBefore()
	if err != nil {
		return fmt.Errorf("invalid nbf claim: %w", err)
	}
	if nbf != nil && nbf.After(now) {
		return fmt.Errorf("token not yet valid")
	}

	// Validate issued at (iat claim) - prevents using tokens issued in the future
	iat, err := claims.GetIssuedAt()
	if err != nil {
		return fmt.Errorf("invalid iat claim: %w", err)
	}
	if iat != nil && iat.After(now) {
		return fmt.Errorf("token issued in the future")
	}

	return nil
}
