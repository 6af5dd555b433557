// Package model holds the data shapes shared across the backend client,
// drone service, and tool surface, so none of those packages need to
// import one another just to pass a status or a result around.
package model

import "time"

// ConnectionStatus is a drone's link state to the backend.
type ConnectionStatus string

const (
	ConnectionDisconnected ConnectionStatus = "disconnected"
	ConnectionConnected    ConnectionStatus = "connected"
	ConnectionError        ConnectionStatus = "error"
)

// FlightStatus is a drone's physical flight state.
type FlightStatus string

const (
	FlightLanded    FlightStatus = "landed"
	FlightTakingOff FlightStatus = "taking_off"
	FlightFlying    FlightStatus = "flying"
	FlightHovering  FlightStatus = "hovering"
	FlightLanding   FlightStatus = "landing"
)

// Direction is the canonical movement/rotation direction enum.
type Direction string

const (
	DirUp               Direction = "up"
	DirDown             Direction = "down"
	DirLeft             Direction = "left"
	DirRight            Direction = "right"
	DirForward          Direction = "forward"
	DirBack             Direction = "back"
	DirClockwise        Direction = "clockwise"
	DirCounterclockwise Direction = "counterclockwise"
)

// AltitudeMode distinguishes an absolute target height from a relative
// adjustment.
type AltitudeMode string

const (
	AltitudeAbsolute AltitudeMode = "absolute"
	AltitudeRelative AltitudeMode = "relative"
)

// DroneStatus mirrors the backend's live view of one drone. Core never
// persists this beyond the short-TTL cache in the drone service.
type DroneStatus struct {
	DroneID          string           `json:"drone_id"`
	ConnectionStatus ConnectionStatus `json:"connection_status"`
	FlightStatus     FlightStatus     `json:"flight_status"`
	BatteryLevel     int              `json:"battery_level"`
	Height           float64          `json:"height"`
	Temperature      float64          `json:"temperature"`
	WifiSignal       int              `json:"wifi_signal"`
	LastUpdated      time.Time        `json:"last_updated"`
}

// CommandResult is the normalized outcome of dispatching any command to
// the backend.
type CommandResult struct {
	Success     bool           `json:"success"`
	Message     string         `json:"message"`
	ErrorCode   string         `json:"error_code,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
	ExecutionMS int64          `json:"execution_ms"`
	Retryable   bool           `json:"retryable,omitempty"`
}

// SystemStatus mirrors the backend's overall health/status payload.
type SystemStatus struct {
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Details   map[string]any `json:"details,omitempty"`
}
