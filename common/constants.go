package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// TPS is the fixed update rate of the frame loop.
	TPS = 60
)

// FrameDelta is the simulated time of one update tick, in seconds.
const FrameDelta = 1.0 / TPS
