package jwt

import (
	"github.com/go-chi/jwtauth/v5"
)

// Service verifies access tokens issued by the identity provider. Token
// issuance lives outside this system; only the shared signing secret is
// configured here.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
}

type service struct {
	auth *jwtauth.JWTAuth
}

func NewJWTService(secret string) Service {
	return &service{auth: jwtauth.New("HS256", []byte(secret), nil)}
}

func (s *service) JWTAuth() *jwtauth.JWTAuth {
	return s.auth
}
