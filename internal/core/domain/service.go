package domain

import (
	"strings"
	"time"
)

// ServiceStatus mirrors queue lifecycle: a service is open exactly while it
// has a non-stopped queue. Only the queue manager flips it.
type ServiceStatus string

const (
	ServiceOpen   ServiceStatus = "open"
	ServiceClosed ServiceStatus = "closed"
)

// ServiceHours is an operating window in whole hours of the day.
type ServiceHours struct {
	StartHour int `json:"start_hour"`
	EndHour   int `json:"end_hour"`
}

// Valid reports whether the window satisfies 0 <= start < end <= 23.
func (h ServiceHours) Valid() bool {
	return h.StartHour >= 0 && h.StartHour < h.EndHour && h.EndHour <= 23
}

// ServiceLocation is a business-configured offering with capacity and
// operating hours. EstimatedServiceTime is minutes per customer; zero means
// the owner has not configured an estimate yet.
type ServiceLocation struct {
	ServiceID            string         `json:"service_id"`
	Owner                string         `json:"owner"`
	Name                 string         `json:"name"`
	Address              string         `json:"address"`
	Capacity             int            `json:"capacity"`
	Status               ServiceStatus  `json:"status"`
	EstimatedServiceTime int            `json:"estimated_service_time"`
	WeekdayHours         *ServiceHours  `json:"weekday_hours,omitempty"`
	WeekendHours         *ServiceHours  `json:"weekend_hours,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
}

// NewServiceLocation creates a closed service with hours and estimate unset.
func NewServiceLocation(id, owner, name, address string, capacity int, now time.Time) (*ServiceLocation, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrValidation
	}
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	return &ServiceLocation{
		ServiceID: id,
		Owner:     owner,
		Name:      name,
		Address:   address,
		Capacity:  capacity,
		Status:    ServiceClosed,
		CreatedAt: now,
	}, nil
}

// HoursFor selects the weekday or weekend window for t. Nil when the
// relevant window is unset.
func (s *ServiceLocation) HoursFor(t time.Time) *ServiceHours {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return s.WeekendHours
	default:
		return s.WeekdayHours
	}
}

// Clone returns a deep copy so callers can hand out snapshots.
func (s *ServiceLocation) Clone() *ServiceLocation {
	cp := *s
	if s.WeekdayHours != nil {
		h := *s.WeekdayHours
		cp.WeekdayHours = &h
	}
	if s.WeekendHours != nil {
		h := *s.WeekendHours
		cp.WeekendHours = &h
	}
	return &cp
}
