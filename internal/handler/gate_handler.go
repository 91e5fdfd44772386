package handler

import (
	"net/http"

	"learnloop/internal/app/gate"
	"learnloop/internal/pkg/errs"
	"learnloop/internal/pkg/resp"
)

// HandleGate runs the access gate for one page load. The page calls it as the
// first action of its initialization, before its own data fetch, and obeys
// the Decision it gets back.
func HandleGate(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Query().Get("path")
		if path == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		decision := gate.Enforce(r.Context(), oracleFor(r), deps.Backend, path)
		resp.RespondSuccess(w, r, decision)
	}
}
