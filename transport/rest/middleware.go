package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
)

var errUnexpectedSigningMethod = errors.New("unexpected signing method")

// withAuth extracts the authenticated principal from the bearer token issued
// by the identity subsystem. The engine only verifies; it never issues tokens.
func (that *Server) withAuth(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}

		principal, err := that.parsePrincipal(tokenString)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		next(w, r, principal)
	}
}

func (that *Server) parsePrincipal(tokenString string) (*entity.Principal, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", errUnexpectedSigningMethod, t.Header["alg"])
		}

		return []byte(that.jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected claims type")
	}

	userID, err := claims.GetSubject()
	if err != nil || userID == "" {
		return nil, errors.New("token has no subject")
	}

	return &entity.Principal{
		UserID: userID,
		Groups: groupClaims(claims),
	}, nil
}

func groupClaims(claims jwt.MapClaims) []string {
	raw, ok := claims["groups"].([]interface{})
	if !ok {
		return nil
	}

	groups := make([]string, 0, len(raw))
	for _, item := range raw {
		if group, ok := item.(string); ok {
			groups = append(groups, group)
		}
	}

	return groups
}
