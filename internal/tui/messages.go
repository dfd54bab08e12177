package tui

import "time"

// tickMsg drives the countdown once a second.
type tickMsg time.Time

// finishMsg ends the session and shows the summary.
type finishMsg struct{}
