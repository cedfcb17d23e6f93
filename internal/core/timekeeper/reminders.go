package timekeeper

import (
	"focusboard/internal/core/model"
	"focusboard/internal/notify"
)

func hydrationReminder() Reminder {
	return Reminder{
		Kind: ReminderHydration,
		Mode: model.ModeFocus,
		Notification: notify.Event{
			Title: "💧 Hydration Time!",
			Body:  "Don't forget to drink some water! Stay hydrated.",
			Icon:  "💧",
			Tag:   "water",
		},
	}
}

func stretchReminder() Reminder {
	return Reminder{
		Kind: ReminderStretch,
		Mode: model.ModeFocus,
		Notification: notify.Event{
			Title: "🧘 Stretch Break!",
			Body:  "Quick reminder to stretch and relax your eyes for a moment.",
			Icon:  "🧘",
			Tag:   "stretch",
		},
	}
}

func completionReminder(mode model.Mode) Reminder {
	reminder := Reminder{Kind: ReminderComplete, Mode: mode}
	switch mode {
	case model.ModeWater:
		reminder.Notification = notify.Event{
			Title: "💧 Hydration Complete!",
			Body:  "Back to being productive!",
			Icon:  "💧",
			Tag:   "water-complete",
		}
	case model.ModeBreak:
		reminder.Notification = notify.Event{
			Title: "☕ Break's Over!",
			Body:  "Ready to focus again?",
			Icon:  "☕",
			Tag:   "break-complete",
		}
	default:
		reminder.Notification = notify.Event{
			Title: "🎉 Focus Session Complete!",
			Body:  "Great work! Time for a break. Don't forget to stretch and hydrate.",
			Icon:  "🎉",
			Tag:   "focus-complete",
		}
	}
	return reminder
}
