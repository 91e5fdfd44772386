/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to
standardize HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the CustomError template for every application error code.
// The key is the error code (int); the value contains the user-facing message
// and the HTTP status code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Onboarding Wizard and Catalog Errors
	ErrUsernameInvalid:    {Code: ErrUsernameInvalid, Message: "Username must be 3-20 characters: letters, numbers, or underscores.", Status: http.StatusBadRequest},
	ErrLanguagesRequired:  {Code: ErrLanguagesRequired, Message: "Please select at least one preferred language.", Status: http.StatusBadRequest},
	ErrStreamRequired:     {Code: ErrStreamRequired, Message: "Please select your stream.", Status: http.StatusBadRequest},
	ErrBranchRequired:     {Code: ErrBranchRequired, Message: "Please select your branch.", Status: http.StatusBadRequest},
	ErrDomainsRequired:    {Code: ErrDomainsRequired, Message: "Please select at least one domain.", Status: http.StatusBadRequest},
	ErrCatalogMismatch:    {Code: ErrCatalogMismatch, Message: "Selection %q is not part of the skill catalog.", Status: http.StatusBadRequest},
	ErrDraftNotReady:      {Code: ErrDraftNotReady, Message: "Onboarding data seems to be missing. Please start over from the profile step.", Status: http.StatusConflict},
	ErrDraftStorage:       {Code: ErrDraftStorage, Message: "Could not save your onboarding progress. Please try again.", Status: http.StatusInternalServerError},
	ErrCatalogUnavailable: {Code: ErrCatalogUnavailable, Message: "Could not load required data. Please refresh the page.", Status: http.StatusBadGateway},

	// 2xxx (cont): Roadmap Job Errors
	ErrRoadmapSkillRequired: {Code: ErrRoadmapSkillRequired, Message: "Skill name is required.", Status: http.StatusBadRequest},
	ErrRoadmapInFlight:      {Code: ErrRoadmapInFlight, Message: "A roadmap for this skill is already being requested.", Status: http.StatusConflict},

	// 3xxx: Session and Authorization Errors
	ErrUnauthorized: {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},

	// 4xxx: Platform Backend Errors
	ErrBackendUnavailable: {Code: ErrBackendUnavailable, Message: "The service is temporarily unavailable. Please try again.", Status: http.StatusBadGateway},
	ErrBackendRejected:    {Code: ErrBackendRejected, Message: "%s", Status: http.StatusBadRequest},
	ErrRoadmapNotFound:    {Code: ErrRoadmapNotFound, Message: "Roadmap not found.", Status: http.StatusNotFound},
	ErrProfileNotFound:    {Code: ErrProfileNotFound, Message: "Profile not found.", Status: http.StatusNotFound},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
