package handler

import (
	"net/http"

	"learnloop/internal/app/session"
	"learnloop/internal/pkg/resp"
)

// HandleNav serves the navigation bar's view-model. Anonymous callers get the
// signed-out variant; this endpoint never errors on missing identity.
func HandleNav(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := session.BuildNavView(oracleFor(r).CurrentUser())
		resp.RespondSuccess(w, r, view)
	}
}
