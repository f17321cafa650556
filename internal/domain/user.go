package domain

import "time"

// User exists in the schema but has no lifecycle operations; no endpoint
// creates, reads, or authenticates one.
type User struct {
	ID        string
	Username  string
	Email     string
	Password  string
	CreatedAt time.Time
}
