package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const ProfileIDKey ctxKey = iota + 100

// SessionConfig controls the profile cookie.
type SessionConfig struct {
	Secret     string
	CookieName string
	TTL        time.Duration
	Secure     bool
}

type profileClaims struct {
	ProfileID string `json:"profileId"`
	jwt.RegisteredClaims
}

// Session identifies the viewer profile behind a request. A valid signed
// cookie yields its profile id; anything else (no cookie, bad signature,
// expired) mints a fresh profile and sets a new cookie, so every request
// downstream always has a profile id in context. State keyed on it is
// what the browser build kept in localStorage.
func Session(cfg SessionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profileID := ""
			if cookie, err := r.Cookie(cfg.CookieName); err == nil {
				profileID, _ = validateSessionToken(cfg.Secret, cookie.Value)
			}

			if profileID == "" {
				profileID = uuid.NewString()
				token, err := mintSessionToken(cfg.Secret, profileID, cfg.TTL)
				if err != nil {
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    token,
					Path:     "/",
					MaxAge:   int(cfg.TTL.Seconds()),
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), ProfileIDKey, profileID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetProfileID retrieves the profile ID from context.
func GetProfileID(ctx context.Context) string {
	if id, ok := ctx.Value(ProfileIDKey).(string); ok {
		return id
	}
	return ""
}

func mintSessionToken(secret, profileID string, ttl time.Duration) (string, error) {
	claims := &profileClaims{
		ProfileID: profileID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func validateSessionToken(secret, tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &profileClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", fmt.Errorf("parse session token: %w", err)
	}

	claims, ok := token.Claims.(*profileClaims)
	if !ok || !token.Valid || claims.ProfileID == "" {
		return "", fmt.Errorf("invalid session token")
	}
	return claims.ProfileID, nil
}
