package greenbridge

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

// Underscore-prefixed partials must survive embedding; a plain embed
// pattern silently skips them.
func TestTemplatesIncludePartials(t *testing.T) {
	for _, name := range []string{
		"layout.html",
		"_form.html",
		"index.html",
		"onboarding.html",
		"intake.html",
		"dashboard.html",
		"error.html",
	} {
		_, err := fs.Stat(Templates(), "templates/"+name)
		require.NoError(t, err, name)
	}
}
