package main

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"storefront/internal/auth"
	"storefront/internal/domain/carts"

	"github.com/google/uuid"
)

type ctxKey string

const (
	claimsCtx ctxKey = "claims"
	ownerCtx  ctxKey = "cartOwner"
)

// cartTokenHeader carries the guest cart token of an anonymous shopper.
const cartTokenHeader = "X-Cart-Token"

func (app *application) BasicAuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// read the auth header
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("authorization header is missing"))
				return
			}

			// parse it -> get the base64
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Basic" {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("authorization header is malformed"))
				return
			}

			decoded, err := base64.StdEncoding.DecodeString(parts[1])
			if err != nil {
				app.unauthorizedBasicErrorResponse(w, r, err)
				return
			}

			username := app.config.auth.basic.user
			pass := app.config.auth.basic.pass

			creds := strings.SplitN(string(decoded), ":", 2)
			if username == "" || len(creds) != 2 || creds[0] != username || creds[1] != pass {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("invalid credentials"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

var errMalformedAuthHeader = errors.New("authorization header is malformed")

// bearerClaims validates the Bearer token of r. ok is false when the request
// carries no Authorization header at all.
func (app *application) bearerClaims(r *http.Request) (claims *auth.Claims, ok bool, err error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, false, nil
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, true, errMalformedAuthHeader
	}

	claims, err = app.authenticator.ValidateAccessToken(parts[1])
	if err != nil {
		return nil, true, err
	}
	return claims, true, nil
}

func (app *application) AuthTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok, err := app.bearerClaims(r)
		if !ok {
			app.unauthorizedErrorResponse(w, r, fmt.Errorf("authorization header is missing"))
			return
		}
		if err != nil {
			app.unauthorizedErrorResponse(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), claimsCtx, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CartOwnerMiddleware works out whose cart the request is about. A valid
// Bearer token selects the user's cart; otherwise the guest token from the
// X-Cart-Token header is used, or a new one is issued. Guest tokens are
// always echoed back so the client can keep them.
func (app *application) CartOwnerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok, err := app.bearerClaims(r)
		if ok && err != nil {
			app.unauthorizedErrorResponse(w, r, err)
			return
		}

		var owner carts.Owner
		if claims != nil {
			userID, _ := claims.UserID()
			owner.UserID = userID
			r = r.WithContext(context.WithValue(r.Context(), claimsCtx, claims))
		} else {
			token, err := uuid.Parse(r.Header.Get(cartTokenHeader))
			if err != nil {
				token = uuid.New()
			}
			owner.GuestToken = token.String()
			w.Header().Set(cartTokenHeader, owner.GuestToken)
		}

		ctx := context.WithValue(r.Context(), ownerCtx, owner)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *application) RateLimiterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.config.rateLimiter.Enabled {
			if allow, retryAfter := app.rateLimiter.Allow(clientIP(r)); !allow {
				app.rateLimitExceededResponse(w, r, retryAfter)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP strips the port RemoteAddr carries unless RealIP already did.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func getClaimsFromContext(r *http.Request) *auth.Claims {
	claims, _ := r.Context().Value(claimsCtx).(*auth.Claims)
	return claims
}

func getOwnerFromContext(r *http.Request) carts.Owner {
	owner, _ := r.Context().Value(ownerCtx).(carts.Owner)
	return owner
}

// userIDFromContext returns the id of the signed-in user, or 0.
func userIDFromContext(r *http.Request) int64 {
	claims := getClaimsFromContext(r)
	if claims == nil {
		return 0
	}
	id, _ := claims.UserID()
	return id
}
