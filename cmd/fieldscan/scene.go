package main

import (
	"errors"
	"os"
	"slices"
	"strings"

	"github.com/milk9111/polarity/levels"
	"github.com/milk9111/polarity/magnet"
	"github.com/milk9111/polarity/physics"
	"go.uber.org/zap"
)

// scene is a level's sources rebuilt into a registry, with their outlines in
// a physics world so directional sources can be probed.
type scene struct {
	level    *levels.Level
	registry *magnet.Registry
	physics  *physics.World
}

// loadLevel treats arg as a file path when it exists and as a level name otherwise.
func loadLevel(arg string) (*levels.Level, error) {
	if st, err := os.Stat(arg); err == nil && !st.IsDir() {
		return levels.LoadFile(arg)
	}
	return levels.Load(arg)
}

func buildScene(lvl *levels.Level, log *zap.Logger) (*scene, error) {
	cfg := physics.DefaultConfig()
	cfg.Gravity = lvl.Gravity.Vector()
	cfg.Bounds = lvl.Bounds.BB()
	phys := physics.NewWorld(cfg, log)
	reg := magnet.NewRegistry(phys)

	var errs []error
	for i := range lvl.Sources {
		spec := &lvl.Sources[i]
		src, err := spec.Source()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		reg.RequestRebuild(src, spec.Geometry())
	}
	rebuilt, err := reg.CommitRebuilds()
	if err != nil {
		errs = append(errs, err)
	}
	for _, src := range rebuilt {
		phys.SyncSource(src)
	}

	return &scene{level: lvl, registry: reg, physics: phys}, errors.Join(errs...)
}

// sources returns the registered sources sorted by name.
func (sc *scene) sources() []*magnet.Source {
	out := sc.registry.Sources()
	slices.SortFunc(out, func(a, b *magnet.Source) int { return strings.Compare(a.Name, b.Name) })
	return out
}
