package component

// PlayerTag marks the agent that receives move requests.
type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()
