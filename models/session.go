package models

import "time"

// Session describes the operator currently logged in to a controller. A
// controller holds at most one session.
type Session struct {
	ID        string
	Username  string
	StartedAt time.Time
}
