package system

const (
	// EventMoveAccepted carries the requested world.PixelCoord.
	EventMoveAccepted = "move_accepted"
	// EventMoveRejected carries the requested world.PixelCoord.
	EventMoveRejected = "move_rejected"
	// EventCompanionStuck is raised when a companion finds no path to its
	// trail target. It carries the target world.PixelCoord.
	EventCompanionStuck = "companion_stuck"
	// EventMarkerFailed carries the error from storing the click marker.
	EventMarkerFailed = "marker_failed"
)
