/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific business or system errors both internally
within the web core and in responses to the presentation layer.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1005
)

// 2xxx: Onboarding Wizard and Catalog Errors
const (
	// ErrUsernameInvalid indicates the chosen username does not satisfy the username rules.
	ErrUsernameInvalid = 2101

	// ErrLanguagesRequired indicates no preferred language was selected on the profile step.
	ErrLanguagesRequired = 2102

	// ErrStreamRequired indicates no stream was selected on the domains step.
	ErrStreamRequired = 2103

	// ErrBranchRequired indicates no branch was selected on the domains step.
	ErrBranchRequired = 2104

	// ErrDomainsRequired indicates no domain was selected on the domains step.
	ErrDomainsRequired = 2105

	// ErrCatalogMismatch indicates a selection that does not exist in the skill catalog.
	ErrCatalogMismatch = 2106

	// ErrDraftNotReady indicates a wizard step was entered before its upstream
	// fields were persisted (e.g. a bookmarked skills page without a branch).
	ErrDraftNotReady = 2107

	// ErrDraftStorage indicates the onboarding draft could not be read or written.
	ErrDraftStorage = 2108

	// ErrCatalogUnavailable indicates the skill catalog could not be loaded.
	ErrCatalogUnavailable = 2201
)

// 3xxx: Session and Authorization Errors
const (
	// ErrUnauthorized indicates the caller has no valid signed-in session.
	ErrUnauthorized = 3001
)

// 2xxx (cont): Roadmap Job Errors
const (
	// ErrRoadmapSkillRequired indicates a roadmap request without a skill name.
	ErrRoadmapSkillRequired = 2301

	// ErrRoadmapInFlight indicates a roadmap request for a skill whose previous
	// request is still being submitted.
	ErrRoadmapInFlight = 2302
)

// 4xxx: Platform Backend Errors
const (
	// ErrBackendUnavailable indicates the platform backend could not be reached.
	ErrBackendUnavailable = 4001

	// ErrBackendRejected indicates the platform backend rejected the request with
	// a structured reason, which is surfaced verbatim to the caller.
	ErrBackendRejected = 4002

	// ErrRoadmapNotFound indicates the requested roadmap does not exist yet.
	ErrRoadmapNotFound = 4003

	// ErrProfileNotFound indicates the caller has no profile record yet.
	ErrProfileNotFound = 4004
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000
)
