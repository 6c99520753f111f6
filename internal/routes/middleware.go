package routes

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"gitlab.com/ranfdev/clubhouse/internal/models"
)

func sessionToken(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// UserCtx resolves the session token, if any, and puts the user on the
// request context. Anonymous requests pass through.
func (routes *Routes) UserCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := sessionToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}
		user, err := routes.db.UserBySessionToken(r.Context(), token)
		if err != nil {
			// Stale or forged token: continue anonymously.
			next.ServeHTTP(w, r)
			return
		}
		ctx := context.WithValue(r.Context(), UserCtxKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (routes *Routes) EnforceAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Context().Value(UserCtxKey).(*models.User); !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ActiveClubUser requires the authenticated user to hold a membership
// in the club addressed by the URL. The invitation workflow itself
// never re-checks this.
func (routes *Routes) ActiveClubUser(next http.Handler) http.Handler {
	return routes.AppHandler(func(w http.ResponseWriter, r *http.Request) *models.StatusError {
		user, ok := r.Context().Value(UserCtxKey).(*models.User)
		if !ok {
			return &models.StatusError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
		}
		clubID, err := strconv.Atoi(chi.URLParam(r, "clubID"))
		if err != nil {
			return &models.StatusError{Code: http.StatusNotFound, Message: "Club not found", Err: err}
		}
		active, err := routes.db.ActiveMembership(r.Context(), user.ID, clubID)
		if err != nil {
			return models.NewInternalError(err)
		}
		if !active {
			return models.NewAuthorizationError(models.MsgNotClubMember)
		}
		ctx := context.WithValue(r.Context(), ClubIDCtxKey, clubID)
		next.ServeHTTP(w, r.WithContext(ctx))
		return nil
	})
}
