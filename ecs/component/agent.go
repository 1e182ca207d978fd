package component

import "github.com/milk9111/wayfarer/motion"

// Agent is anything that walks the grid.
type Agent struct {
	Name   string
	Sprite string
	Motion *motion.Controller
}

var AgentComponent = NewComponent[Agent]()
