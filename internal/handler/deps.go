package handler

import (
	"net/http"

	"learnloop/internal/app/catalog"
	"learnloop/internal/app/jobs"
	"learnloop/internal/app/session"
	"learnloop/internal/app/upstream"
	"learnloop/internal/app/wizard"
	"learnloop/internal/configs"
	"learnloop/internal/pkg/auth/jwt"
)

type AppDeps struct {
	Config  *configs.AppConfig
	Backend *upstream.Client
	Machine *wizard.Machine
	Tracker *jobs.Tracker
	Catalog catalog.Source
}

// oracleFor builds the request-scoped session oracle from whatever identity
// the extractor middleware attached. Anonymous requests get an oracle with no
// current user, which is a valid state everywhere downstream.
func oracleFor(r *http.Request) *session.TokenOracle {
	return session.NewTokenOracle(jwt.GetPayloadFromContext(r), jwt.GetBearerFromContext(r))
}
