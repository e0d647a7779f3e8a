package domain

// VehicleStatus represents the operational status of a vehicle.
type VehicleStatus string

const (
	VehicleStatusActive   VehicleStatus = "active"
	VehicleStatusInactive VehicleStatus = "inactive"
)

// Vehicle represents a bus in the fleet.
type Vehicle struct {
	ID               int64
	PlateNumber      string
	Capacity         int
	Status           VehicleStatus
	AssignedDriverID int64 // 0 when unassigned
	AssignedRouteID  int64 // 0 when unassigned
}
