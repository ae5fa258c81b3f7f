package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/storeplan/planning-backend-go/internal/domain/auth"
	"github.com/storeplan/planning-backend-go/internal/handler/http/response"
)

// AuthRequired rejects requests without a valid manager access token.
// It must run after jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		if token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		tokenType, ok := claims["type"].(string)
		if !ok || tokenType != "access" {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}
		if subject, _ := claims["sub"].(string); subject == "" {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hfn)
}
