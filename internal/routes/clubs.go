package routes

import (
	"net/http"

	"gitlab.com/ranfdev/clubhouse/internal/models"
)

type clubRequest struct {
	Name string `json:"name"`
}

func (routes *Routes) PostClub(w http.ResponseWriter, r *http.Request) *models.StatusError {
	user := r.Context().Value(UserCtxKey).(*models.User)
	var req clubRequest
	if serr := decodeJSON(r, &req); serr != nil {
		return serr
	}
	if req.Name == "" {
		return models.NewValidationError("A club name must be provided")
	}
	club, err := routes.db.CreateClub(r.Context(), req.Name, user.ID)
	if err != nil {
		return models.NewInternalError(err)
	}
	return renderJSON(w, http.StatusOK, club)
}

type inviteRequest struct {
	Email string `json:"email"`
}

// PostInvite runs behind ActiveClubUser: by the time the workflow
// starts, the acting user is known to hold a membership in the club.
func (routes *Routes) PostInvite(w http.ResponseWriter, r *http.Request) *models.StatusError {
	clubID := r.Context().Value(ClubIDCtxKey).(int)
	var req inviteRequest
	if serr := decodeJSON(r, &req); serr != nil {
		return serr
	}
	res, serr := routes.invites.Invite(r.Context(), clubID, req.Email)
	if serr != nil {
		return serr
	}
	return renderJSON(w, http.StatusOK, res)
}
