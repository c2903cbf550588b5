package middleware

import (
	"context"
	"net"
	"net/http"
	"sync"

	"github.com/SchoolScout/SS-Backend/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const profileCookieName = "profile_id"

// ProfileMiddleware identifies the browser profile that owns favorites,
// reviewed flags and search history. A first-time visitor gets a fresh
// profile cookie; nobody is ever rejected here.
func ProfileMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		profileID := ""
		if cookie, err := r.Cookie(profileCookieName); err == nil {
			profileID = cookie.Value
		}

		if profileID == "" {
			profileID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     profileCookieName,
				Value:    profileID,
				Path:     "/",
				MaxAge:   60 * 60 * 24 * 365,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				Secure:   false,
			})
		}

		ctx := context.WithValue(r.Context(), utils.ContextProfileIDKey, profileID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

var (
	allowedMu sync.RWMutex
	allowed   = map[string]struct{}{
		"http://localhost:5173": {},
		"http://localhost:5174": {},
	}
)

// SetAllowedOrigins replaces the CORS allow-list from config.
func SetAllowedOrigins(origins []string) {
	next := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		next[o] = struct{}{}
	}
	allowedMu.Lock()
	allowed = next
	allowedMu.Unlock()
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		// Echo the origin back only if it's on our allow-list
		allowedMu.RLock()
		_, ok := allowed[origin]
		allowedMu.RUnlock()
		if ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin") // important for caches
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods",
				"GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers",
				"Content-Type, Authorization")
		}

		w.Header().Set("Access-Control-Expose-Headers", "Server-Timing, Retry-After, Cache-Control")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimitMiddleware throttles per profile (falling back to the client IP)
// so a typing user can't hammer the upstream NCES servers through us.
func RateLimitMiddleware(perSecond float64, burst int) func(http.Handler) http.Handler {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)

	limiterFor := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		if l, ok := limiters[key]; ok {
			return l
		}
		l := rate.NewLimiter(rate.Limit(perSecond), burst)
		limiters[key] = l
		return l
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, ok := utils.GetProfileIDFromContext(r.Context())
			if !ok || key == "" {
				host, _, err := net.SplitHostPort(r.RemoteAddr)
				if err != nil {
					host = r.RemoteAddr
				}
				key = host
			}

			if !limiterFor(key).Allow() {
				w.Header().Set("Retry-After", "1")
				http.Error(w, "Too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
