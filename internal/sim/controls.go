package sim

// Controls is the per-tick input sample fed into the simulation.
// Axis pairs cancel out when both are held.
type Controls struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Up       bool
	Down     bool

	RotateLeft  bool
	RotateRight bool

	Boost bool
	Fire  bool
}
