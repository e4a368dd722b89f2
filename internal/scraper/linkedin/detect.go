package linkedin

import (
	"net/url"
	"strings"

	"github.com/assapir/jobflow/internal/scraper"
)

// Markers LinkedIn puts on its sign-in wall. If the wording changes, blocks show up as
// ErrListingsNotFound instead.
const (
	markupSignIn   = "sign-in-form"
	markupJoinNow  = "join-form"
	bodySignIn     = "Sign in"
	bodyJoin       = "Join LinkedIn"
	pathCheckpoint = "/checkpoint"
)

var loginPathSegments = []string{"/login", "/authwall"}

// Signals is the set of blocking indicators read from one page load
type Signals struct {
	MarkupSignIn  bool
	MarkupJoinNow bool
	BodySignIn    bool
	BodyJoin      bool
	URLLogin      bool
	URLCheckpoint bool
}

// ReadSignals computes the indicators from the page markup, its visible body text and its URL
func ReadSignals(markup, bodyText, pageURL string) Signals {
	//only the path counts; a query string like ?next=/login is not a redirect
	path := pageURL
	if u, err := url.Parse(pageURL); err == nil {
		path = u.Path
	}

	urlLogin := false
	for _, seg := range loginPathSegments {
		if strings.Contains(path, seg) {
			urlLogin = true
			break
		}
	}

	return Signals{
		MarkupSignIn:  strings.Contains(markup, markupSignIn),
		MarkupJoinNow: strings.Contains(markup, markupJoinNow),
		BodySignIn:    strings.Contains(bodyText, bodySignIn),
		BodyJoin:      strings.Contains(bodyText, bodyJoin),
		URLLogin:      urlLogin,
		URLCheckpoint: strings.Contains(path, pathCheckpoint),
	}
}

// Blocked is true when any single signal fired
func (s Signals) Blocked() bool {
	return s.MarkupSignIn || s.MarkupJoinNow || s.BodySignIn || s.BodyJoin || s.URLLogin || s.URLCheckpoint
}

// Classify decides why the results container is missing
func Classify(s Signals) scraper.PageState {
	if s.Blocked() {
		return scraper.PageBlocked
	}
	return scraper.PageNotFoundNoBlock
}
