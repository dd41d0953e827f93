package domain

// ControllerState is the lifecycle state of a counter's animation controller.
type ControllerState string

const (
	StateIdle    ControllerState = "idle"    // No session
	StateRunning ControllerState = "running" // One active session
	// StateCompleted is terminal per session and immediately followed by StateIdle.
	StateCompleted ControllerState = "completed"
)
