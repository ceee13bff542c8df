package wizard

import "github.com/justsurfingit/engineer-marketplace/internal/session"

// Redirect is where a caller must navigate instead of showing the wizard.
type Redirect string

const (
	NoRedirect          Redirect = ""
	RedirectAuthSelect  Redirect = "/auth/select"
	RedirectDashboard   Redirect = "/engineer/dashboard"
	RedirectProfileForm Redirect = "/engineer/profile"
)

// Guard checks the session flags in priority order: authentication, prior
// completion, then the profile prerequisite.
func Guard(flags session.Flags) Redirect {
	switch {
	case !flags.Authenticated:
		return RedirectAuthSelect
	case flags.WizardCompleted:
		return RedirectDashboard
	case !flags.ProfileCompleted:
		return RedirectProfileForm
	default:
		return NoRedirect
	}
}
