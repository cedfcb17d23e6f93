package board

import (
	"fmt"

	"focusboard/internal/session"
)

// loginCopy holds the gender-dependent login texts.
type loginCopy struct {
	Subtitle string
	Button   string
	Footer   string
}

func loginTexts(gender session.Gender) loginCopy {
	switch gender {
	case session.GenderMale:
		return loginCopy{
			Subtitle: "Ready to crush it? 🚀",
			Button:   "Let's Go",
			Footer:   "Time to dominate your goals 💪",
		}
	case session.GenderFemale:
		return loginCopy{
			Subtitle: "Let's make today amazing ✨",
			Button:   "Get Started",
			Footer:   "You've got this 🌟",
		}
	default:
		return loginCopy{
			Subtitle: "Let's get started 🎯",
			Button:   "Select Gender & Continue",
			Footer:   "Choose to customize your experience",
		}
	}
}

func progressText(done, total int) string {
	return fmt.Sprintf("%d of %d", done, total)
}

func progressValue(done, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total)
}

func allDone(done, total int) bool {
	return total > 0 && done == total
}

// focusHint is shown under the timer in focus mode.
func focusHint(notificationsOn bool) string {
	if notificationsOn {
		return "You'll get reminders to drink water and stretch! 💝"
	}
	return "Enable notifications to get reminders in other windows"
}
