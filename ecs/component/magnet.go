package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/polarity/magnet"
)

// MagnetSource attaches a field source and its local geometry to an entity.
// Setting Dirty queues a rebuild on the next step. CellSize, when set, keeps
// the tile unit area in step with the entity's scale.
type MagnetSource struct {
	Source   *magnet.Source
	Geometry magnet.Geometry
	CellSize float64
	Dirty    bool
}

var MagnetSourceComponent = NewComponent[MagnetSource]()

// MagnetActor is an entity that feels the field. Force is the last force applied.
type MagnetActor struct {
	Controller *magnet.Controller
	Force      cp.Vector
}

var MagnetActorComponent = NewComponent[MagnetActor]()
