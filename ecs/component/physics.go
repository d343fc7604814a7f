package component

import "github.com/jakecoffman/cp"

// PhysicsBody is a dynamic actor body. Body is created by the physics system.
type PhysicsBody struct {
	Body      *cp.Body
	Width     float64
	Height    float64
	Mass      float64
	MoveSpeed float64
	JumpSpeed float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
