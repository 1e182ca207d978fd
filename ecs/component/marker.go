package component

// ClickMarker is the fading ring drawn where the player last clicked.
type ClickMarker struct {
	X, Y     float64
	Age      float64 // seconds
	Lifetime float64 // seconds
}

var ClickMarkerComponent = NewComponent[ClickMarker]()
