package app

import "time"

// TickMsg drives one instrument frame.
type TickMsg time.Time
