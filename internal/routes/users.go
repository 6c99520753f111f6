package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gitlab.com/ranfdev/clubhouse/internal/models"
)

// PostUser runs the signup pipeline and returns the sanitized user.
// The pipeline's own status classification is forwarded unchanged.
func (routes *Routes) PostUser(w http.ResponseWriter, r *http.Request) *models.StatusError {
	var req models.SignupRequest
	if serr := decodeJSON(r, &req); serr != nil {
		return serr
	}
	user, serr := routes.registration.Register(r.Context(), req)
	if serr != nil {
		return serr
	}
	return renderJSON(w, http.StatusOK, user)
}

func (routes *Routes) GetMe(w http.ResponseWriter, r *http.Request) *models.StatusError {
	user := r.Context().Value(UserCtxKey).(*models.User)
	view, err := routes.db.UserView(r.Context(), user.ID)
	if err != nil {
		return models.NewInternalError(err)
	}
	return renderJSON(w, http.StatusOK, view)
}

func (routes *Routes) GetUser(w http.ResponseWriter, r *http.Request) *models.StatusError {
	userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		return &models.StatusError{Code: http.StatusNotFound, Message: "User not found", Err: err}
	}
	view, err := routes.db.UserView(r.Context(), userID)
	if errors.Is(err, models.ErrUserNotFound) {
		return &models.StatusError{Code: http.StatusNotFound, Message: "User not found", Err: err}
	}
	if err != nil {
		return models.NewInternalError(err)
	}
	return renderJSON(w, http.StatusOK, view)
}

type sessionRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (routes *Routes) PostSession(w http.ResponseWriter, r *http.Request) *models.StatusError {
	var req sessionRequest
	if serr := decodeJSON(r, &req); serr != nil {
		return serr
	}
	token, err := routes.db.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		return &models.StatusError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid email or password",
			Err:     err,
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
	return renderJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (routes *Routes) DeleteSession(w http.ResponseWriter, r *http.Request) *models.StatusError {
	if err := routes.db.Signout(r.Context(), sessionToken(r)); err != nil {
		return models.NewInternalError(err)
	}
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1})
	w.WriteHeader(http.StatusNoContent)
	return nil
}
