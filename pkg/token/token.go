package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const purposeVoting = "topic_voting"

// Claims represents voting-access token claims
type Claims struct {
	RoundtableID uuid.UUID `json:"roundtable_id"`
	Purpose      string    `json:"purpose"`
	jwt.RegisteredClaims
}

// Manager issues and validates signed voting-access tokens. The token is the
// reference participants receive when voting opens; it identifies the
// roundtable without requiring an account login.
type Manager struct {
	secret string
	expiry time.Duration
	issuer string
}

// NewManager creates a new token manager
func NewManager(secret string, expiry time.Duration) *Manager {
	return &Manager{
		secret: secret,
		expiry: expiry,
		issuer: "roundtable",
	}
}

// IssueVotingToken generates a voting-access token for a roundtable
func (m *Manager) IssueVotingToken(roundtableID uuid.UUID) (string, error) {
	now := time.Now()
	claims := &Claims{
		RoundtableID: roundtableID,
		Purpose:      purposeVoting,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			Subject:   roundtableID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secret))
}

// ValidateVotingToken validates a voting-access token and returns the
// roundtable it grants access to
func (m *Manager) ValidateVotingToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return uuid.Nil, fmt.Errorf("invalid token")
	}
	if claims.Purpose != purposeVoting {
		return uuid.Nil, fmt.Errorf("unexpected token purpose: %s", claims.Purpose)
	}

	return claims.RoundtableID, nil
}
