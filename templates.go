// Package greenbridge is a server-rendered ESG self-assessment app for
// small businesses: a contact form, an onboarding questionnaire that
// routes to a category intake, and a scorecard dashboard, with all
// visitor state held in a signed session cookie.
package greenbridge

import (
	"embed"
	"io/fs"
)

//go:embed all:templates
var templatesFS embed.FS

// Templates exposes the built-in page templates so callers can reuse
// or wrap them without knowing the embed layout.
func Templates() fs.FS {
	return templatesFS
}
