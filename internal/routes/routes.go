package routes

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"gitlab.com/ranfdev/clubhouse/internal/db"
	"gitlab.com/ranfdev/clubhouse/internal/models"
	"gitlab.com/ranfdev/clubhouse/internal/service"
)

const SessionCookie = "session_token"

type ctxKey int

const (
	UserCtxKey ctxKey = iota
	ClubIDCtxKey
)

type Routes struct {
	envConfig    *models.EnvConfig
	db           *db.SharedDB
	registration *service.RegistrationService
	invites      *service.InviteService
	logger       zerolog.Logger
}

func New(envConfig *models.EnvConfig, sdb *db.SharedDB, registration *service.RegistrationService, invites *service.InviteService, logger zerolog.Logger) *Routes {
	return &Routes{
		envConfig:    envConfig,
		db:           sdb,
		registration: registration,
		invites:      invites,
		logger:       logger,
	}
}

func (routes *Routes) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(hlog.NewHandler(routes.logger))
	r.Use(routes.UserCtx)

	r.Post("/users", routes.AppHandler(routes.PostUser))
	r.With(routes.EnforceAuth).Get("/users/me", routes.AppHandler(routes.GetMe))
	r.Get("/users/{userID}", routes.AppHandler(routes.GetUser))

	r.Post("/sessions", routes.AppHandler(routes.PostSession))
	r.With(routes.EnforceAuth).Delete("/sessions", routes.AppHandler(routes.DeleteSession))

	r.With(routes.EnforceAuth).Post("/clubs", routes.AppHandler(routes.PostClub))
	r.With(routes.EnforceAuth, routes.ActiveClubUser).
		Post("/clubs/{clubID}/invite", routes.AppHandler(routes.PostInvite))
	return r
}

// AppHandler turns a handler returning a StatusError into a plain
// http.HandlerFunc. Client faults surface their message; server faults
// collapse to a generic line while the detail goes to the log.
func (routes *Routes) AppHandler(handler func(w http.ResponseWriter, r *http.Request) *models.StatusError) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serr := handler(w, r)
		if serr == nil {
			return
		}
		msg := serr.Message
		if !serr.ClientFault() {
			msg = models.MsgInternalError
		}
		http.Error(w, msg, serr.Code)
		hlog.FromRequest(r).
			Error().
			Str("request_id", middleware.GetReqID(r.Context())).
			Err(serr.Err).
			Msg(serr.Message)
	}
}

func renderJSON(w http.ResponseWriter, code int, v interface{}) *models.StatusError {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func decodeJSON(r *http.Request, v interface{}) *models.StatusError {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &models.StatusError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Err:     err,
		}
	}
	return nil
}
