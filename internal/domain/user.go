package domain

import "time"

// Role identifies which part of the API a user may call.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleDriver    Role = "driver"
	RolePassenger Role = "passenger"
)

// User represents an account in the system. Drivers additionally have a
// Driver profile linked via Driver.UserID.
type User struct {
	ID           int64
	Name         string
	Phone        string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
