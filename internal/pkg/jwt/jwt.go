package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Claim names carried by a medic access token.
const (
	ClaimType      = "type"
	ClaimMedicName = "medic_name"
	ClaimMedicRef  = "medic_ref"

	TokenTypeAccess = "access"
)

var ErrMissingMedic = errors.New("token does not identify a medic")

// MedicClaims is what a handler needs to know about the caller.
type MedicClaims struct {
	MedicName string
	MedicRef  string
}

type Service interface {
	// GenerateAccessToken issues a token for an identified medic. medicRef is
	// an opaque fingerprint of the medic's ID, never the ID itself.
	GenerateAccessToken(medicName, medicRef string) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
	now                       func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                       time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(medicName, medicRef string) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	now := j.now()
	expiresAt = now.Add(expDuration).Unix()

	claims := map[string]interface{}{
		ClaimMedicName: medicName,
		ClaimMedicRef:  medicRef,
		ClaimType:      TokenTypeAccess,
		"iat":          now.Unix(),
		"exp":          expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// MedicFromContext reads the medic claims placed in ctx by jwtauth.Verifier.
func MedicFromContext(ctx context.Context) (MedicClaims, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return MedicClaims{}, err
	}
	name, _ := claims[ClaimMedicName].(string)
	if name == "" {
		return MedicClaims{}, ErrMissingMedic
	}
	ref, _ := claims[ClaimMedicRef].(string)
	return MedicClaims{MedicName: name, MedicRef: ref}, nil
}
