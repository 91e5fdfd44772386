package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"learnloop/internal/app/jobs"
	"learnloop/internal/pkg/errs"
	"learnloop/internal/pkg/req"
	"learnloop/internal/pkg/resp"
)

type RequestRoadmapInput struct {
	Skill string `json:"skill"`
}

// roadmapAck is the answer to a roadmap generation request. Outcome is
// "queued" on acceptance; the roadmap itself materializes out of band and
// shows up on a later dashboard load.
type roadmapAck struct {
	Outcome string `json:"outcome"`
	Skill   string `json:"skill"`
	Slug    string `json:"slug"`
}

// HandleRequestRoadmap fires one roadmap generation job. Duplicates for a
// skill whose previous request is still pending are refused before they reach
// the backend.
func HandleRequestRoadmap(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		oracle := oracleFor(r)

		user := oracle.CurrentUser()
		token, err := oracle.BearerToken()
		if user == nil || err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input RequestRoadmapInput
		if cerr := req.BindJSON(w, r, &input); cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		outcome, cerr := deps.Tracker.Request(r.Context(), token, user.ID, input.Skill)
		if cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		resp.RespondSuccess(w, r, roadmapAck{
			Outcome: outcome.String(),
			Skill:   input.Skill,
			Slug:    jobs.SlugForSkill(input.Skill),
		})
	}
}

// HandleGetRoadmap serves one generated roadmap by its skill slug.
func HandleGetRoadmap(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := oracleFor(r).BearerToken()
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		slug := chi.URLParam(r, "slug")
		if slug == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		roadmap, cerr := deps.Backend.Roadmap(r.Context(), token, slug)
		if cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}
		resp.RespondSuccess(w, r, roadmap)
	}
}
