package handler

import (
	"net/http"

	"learnloop/internal/pkg/errs"
	"learnloop/internal/pkg/resp"
)

// HandleDashboard serves the dashboard view-model: greeting name, points, and
// one card per learning track. Tracks with generated=false render the
// "generate roadmap" action; the flag comes from the backend and is never set
// optimistically here.
func HandleDashboard(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		oracle := oracleFor(r)

		token, err := oracle.BearerToken()
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		dashboard, cerr := deps.Backend.Dashboard(r.Context(), token)
		if cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		if dashboard.Name == "" {
			dashboard.Name = oracle.CurrentUser().DisplayName()
		}
		resp.RespondSuccess(w, r, dashboard)
	}
}
