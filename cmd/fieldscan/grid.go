package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/polarity/magnet"
	"github.com/spf13/cobra"
)

const (
	// gridPadding extends the region bounds when the level declares none.
	gridPadding = 2.0
	// maxGridCells bounds the number of sampled points.
	maxGridCells = 1_000_000
)

var (
	errBadStep      = errors.New("step must be positive")
	errGridTooLarge = fmt.Errorf("grid exceeds %d cells, use a larger --step", maxGridCells)
)

func newGridCmd(a *app) *cobra.Command {
	var (
		step     float64
		polarity string
	)
	cmd := &cobra.Command{
		Use:   "grid <level>",
		Short: "Write the net force over the level bounds as CSV.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hero, err := magnet.ParsePolarity(polarity)
			if err != nil {
				return err
			}
			lvl, err := loadLevel(args[0])
			if err != nil {
				return err
			}
			sc, err := buildScene(lvl, a.log)
			if err != nil {
				a.log.Sugar().Warnw("level has broken sources", "level", lvl.Name, "error", err)
			}

			w := csv.NewWriter(a.out)
			if err := sc.writeGrid(w, sc.gridBounds(), step, hero); err != nil {
				return err
			}
			w.Flush()
			return w.Error()
		},
	}
	cmd.Flags().Float64Var(&step, "step", 1, "grid spacing in world units")
	cmd.Flags().StringVarP(&polarity, "polarity", "p", "red", "actor polarity")
	return cmd
}

// gridBounds is the level bounds, or the padded bounds of every region outline.
func (sc *scene) gridBounds() cp.BB {
	if sc.level.Bounds != nil {
		return sc.level.Bounds.BB()
	}
	bb := cp.BB{L: math.Inf(1), B: math.Inf(1), R: math.Inf(-1), T: math.Inf(-1)}
	for _, src := range sc.sources() {
		for _, r := range src.Regions() {
			for _, p := range r.WorldPath {
				bb = bb.Expand(p)
			}
		}
	}
	if bb.L > bb.R {
		return cp.BB{}
	}
	return cp.BB{L: bb.L - gridPadding, B: bb.B - gridPadding, R: bb.R + gridPadding, T: bb.T + gridPadding}
}

func (sc *scene) writeGrid(w *csv.Writer, bb cp.BB, step float64, hero magnet.Polarity) error {
	if step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return errBadStep
	}
	cols := math.Floor((bb.R-bb.L)/step+1e-9) + 1
	rows := math.Floor((bb.T-bb.B)/step+1e-9) + 1
	if cols < 1 || rows < 1 || math.IsNaN(cols*rows) {
		cols, rows = 1, 1
	}
	if cols*rows > maxGridCells {
		return fmt.Errorf("%w: %.0f x %.0f at step %g", errGridTooLarge, cols, rows, step)
	}
	if err := w.Write([]string{"x", "y", "fx", "fy", "magnitude"}); err != nil {
		return err
	}
	format := func(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }

	nx, ny := int(cols), int(rows)
	for j := 0; j < ny; j++ {
		y := bb.B + float64(j)*step
		for i := 0; i < nx; i++ {
			x := bb.L + float64(i)*step
			f := sc.registry.ForceAt(cp.Vector{X: x, Y: y}, hero)
			if err := w.Write([]string{format(x), format(y), format(f.X), format(f.Y), format(f.Length())}); err != nil {
				return err
			}
		}
	}
	return nil
}
