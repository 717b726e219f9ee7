package models

// TransportRoute is a bus route with its stops
type TransportRoute struct {
	ID            string   `json:"id" validate:"omitempty,entityid=TRN"`
	RouteNumber   string   `json:"routeNumber" validate:"required"`
	Name          string   `json:"name" validate:"required"`
	Driver        string   `json:"driver,omitempty"`
	DriverPhone   string   `json:"driverPhone,omitempty"`
	VehicleNumber string   `json:"vehicleNumber,omitempty"`
	Capacity      int      `json:"capacity" validate:"min=0"`
	Stops         []string `json:"stops"`
	Fee           float64  `json:"fee" validate:"min=0"`
	Status        string   `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

// EntityID implements Entity
func (t TransportRoute) EntityID() string { return t.ID }
