package domain

import "time"

// Notification is a row surfaced to a user in their inbox. Rows are created
// as side effects of assignment and ticket events; actual push/SMS/email
// delivery happens outside this system.
type Notification struct {
	ID        int64
	UserID    int64
	Title     string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}
