package domain

// DriverStatus represents the employment status of a driver.
type DriverStatus string

const (
	DriverStatusActive   DriverStatus = "active"
	DriverStatusInactive DriverStatus = "inactive"
)

// Driver is the operational profile behind a user account with the driver
// role. AssignedLineID is the route the driver currently serves.
type Driver struct {
	ID             int64
	UserID         int64
	LicenseNumber  string
	Status         DriverStatus
	AssignedLineID int64 // 0 when unassigned
}
