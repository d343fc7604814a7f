package component

// Input stores per-step input state for an entity.
type Input struct {
	MoveX         float64
	Jump          bool
	JumpPressed   bool
	MagnetPressed bool
}

var InputComponent = NewComponent[Input]()
