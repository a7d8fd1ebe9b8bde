package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/medicshift/shift-report-backend/internal/handler/http/response"
	"github.com/medicshift/shift-report-backend/internal/pkg/jwt"
)

// AuthRequired rejects requests without a verified access token naming a
// medic. It must run after jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		if token == nil {
			response.Unauthorized(w, "Missing access token")
			return
		}

		tokenType, ok := claims[jwt.ClaimType].(string)
		if !ok || tokenType != jwt.TokenTypeAccess {
			response.Unauthorized(w, "Invalid token type")
			return
		}

		if _, err := jwt.MedicFromContext(r.Context()); err != nil {
			response.HandleError(w, err)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hfn)
}
