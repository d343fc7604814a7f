package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/polarity/magnet"
	"github.com/spf13/cobra"
)

type forceSample struct {
	Source string
	Force  cp.Vector
}

func newSampleCmd(a *app) *cobra.Command {
	var (
		x, y     float64
		polarity string
	)
	cmd := &cobra.Command{
		Use:   "sample <level>",
		Short: "Print the force each source applies at a point.",
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
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}

			pos := cp.Vector{X: x, Y: y}
			samples, net := sc.sample(pos, hero)

			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "# %s at (%.3f, %.3f), actor %s\n", lvl.Name, x, y, hero)
			fmt.Fprintln(tw, "SOURCE\tFX\tFY\tMAGNITUDE")
			for _, s := range samples {
				fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%.4f\n", s.Source, s.Force.X, s.Force.Y, s.Force.Length())
			}
			fmt.Fprintf(tw, "net\t%.4f\t%.4f\t%.4f\n", net.X, net.Y, net.Length())
			return tw.Flush()
		},
	}
	cmd.Flags().Float64Var(&x, "x", 0, "world x")
	cmd.Flags().Float64Var(&y, "y", 0, "world y")
	cmd.Flags().StringVarP(&polarity, "polarity", "p", "red", "actor polarity")
	return cmd
}

// sample returns each registered source's force at pos and their sum.
func (sc *scene) sample(pos cp.Vector, hero magnet.Polarity) ([]forceSample, cp.Vector) {
	sources := sc.sources()
	out := make([]forceSample, 0, len(sources))
	for _, src := range sources {
		out = append(out, forceSample{Source: src.Name, Force: src.ForceAt(pos, hero, sc.physics)})
	}
	return out, sc.registry.ForceAt(pos, hero)
}
