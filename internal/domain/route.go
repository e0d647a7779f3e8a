package domain

import "time"

// Route represents a named origin-destination line with a flat base fare.
// A vehicle and a driver may be assigned to operate it.
type Route struct {
	ID                int64
	Name              string
	StartLocation     string
	EndLocation       string
	BaseFare          float64
	CompanyID         int64 // 0 when the route is not operated by a company
	AssignedVehicleID int64 // 0 when unassigned
	AssignedDriverID  int64 // 0 when unassigned
	ScheduledStart    time.Time
}

// RouteStop is an intermediate point along a route. StopOrder defines the
// traversal sequence; the cumulative columns are non-decreasing with it and
// drive sub-segment pricing.
type RouteStop struct {
	ID                  int64
	RouteID             int64
	StopName            string
	StopOrder           int
	DistanceFromStartKm float64
	FareFromStart       float64
}
