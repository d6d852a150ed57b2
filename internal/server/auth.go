package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	errMissingToken = errors.New("missing bearer token")
	errUnauthorized = errors.New("unauthorized")
)

// authenticate resolves the user id from an HS256 bearer token's subject.
func (s *Server) authenticate(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return "", errMissingToken
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", errUnauthorized
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return "", errUnauthorized
	}
	return claims.Subject, nil
}

func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	user, err := s.authenticate(r)
	switch {
	case errors.Is(err, errMissingToken):
		writeError(w, http.StatusUnauthorized, "Missing bearer token")
		return "", false
	case err != nil:
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}
	return user, true
}
