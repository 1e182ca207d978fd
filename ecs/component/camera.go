package component

type Camera struct {
	Zoom       float64
	Smoothness float64
	// X, Y is the world point at the centre of the screen.
	X, Y    float64
	Snapped bool
}

var CameraComponent = NewComponent[Camera]()
