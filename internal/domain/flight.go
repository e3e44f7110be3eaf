package domain

import "time"

// Flight is read-only from the service's point of view: rows are created and
// updated by the backend only.
type Flight struct {
	ID             string    `json:"id"`
	FlightNumber   string    `json:"flight_number"`
	DepartureCity  string    `json:"departure_city"`
	ArrivalCity    string    `json:"arrival_city"`
	DepartureTime  time.Time `json:"departure_time"`
	ArrivalTime    time.Time `json:"arrival_time"`
	Price          int64     `json:"price"`
	AvailableSeats int       `json:"available_seats"`
}
