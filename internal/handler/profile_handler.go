package handler

import (
	"net/http"

	"learnloop/internal/pkg/errs"
	"learnloop/internal/pkg/resp"
)

// HandleProfile serves the signed-in user's full profile view-model.
func HandleProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := oracleFor(r).BearerToken()
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		profile, cerr := deps.Backend.Profile(r.Context(), token)
		if cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}
		resp.RespondSuccess(w, r, profile)
	}
}
