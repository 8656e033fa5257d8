package play

import "time"

// feedbackDoneMsg ends the post-answer feedback pause.
type feedbackDoneMsg time.Time
