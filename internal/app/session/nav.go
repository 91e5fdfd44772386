package session

// Well-known page paths the navigation bar links to.
const (
	PathDashboard = "/dashboard"
	PathProfile   = "/profile"
	PathLogin     = "/login"
)

// NavView is the view-model the navigation bar renders from. The markup
// itself belongs to the presentation layer; the core only decides what state
// the bar should reflect.
type NavView struct {
	// SignedIn selects between the account dropdown and the login/signup buttons.
	SignedIn bool `json:"signedIn"`

	// Greeting is the short name shown next to the avatar ("Hi, <name>").
	Greeting string `json:"greeting,omitempty"`

	// ImageURL is the avatar shown in the account dropdown.
	ImageURL string `json:"imageUrl,omitempty"`

	// DashboardPath and ProfilePath are the dropdown link targets.
	DashboardPath string `json:"dashboardPath,omitempty"`
	ProfilePath   string `json:"profilePath,omitempty"`

	// SignOutRedirect is where the presentation layer sends the user after
	// delegating sign-out to the identity provider.
	SignOutRedirect string `json:"signOutRedirect,omitempty"`
}

// BuildNavView derives the navigation view-model for the given user.
func BuildNavView(u *User) NavView {
	if u == nil {
		return NavView{SignedIn: false}
	}

	return NavView{
		SignedIn:        true,
		Greeting:        u.DisplayName(),
		ImageURL:        u.ImageURL,
		DashboardPath:   PathDashboard,
		ProfilePath:     PathProfile,
		SignOutRedirect: PathLogin,
	}
}

// WatchNav subscribes onChange to sign-in state changes on the oracle and
// immediately delivers the view for the current state. The returned function
// unsubscribes; it must be called on page teardown.
func WatchNav(oracle Oracle, onChange func(NavView)) (unsubscribe func()) {
	unsubscribe = oracle.Subscribe(func(u *User) {
		onChange(BuildNavView(u))
	})
	onChange(BuildNavView(oracle.CurrentUser()))
	return unsubscribe
}
