package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/milk9111/polarity/magnet"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

type regionReport struct {
	Source          string     `yaml:"source"`
	Mode            string     `yaml:"mode"`
	Polarity        string     `yaml:"polarity"`
	Index           int        `yaml:"index"`
	Tiles           int        `yaml:"tiles"`
	Area            float64    `yaml:"area"`
	Centroid        [2]float64 `yaml:"centroid,flow"`
	EffectiveRadius float64    `yaml:"effective_radius"`
	Strength        float64    `yaml:"strength"`
}

type levelReport struct {
	Level   string         `yaml:"level"`
	Sources int            `yaml:"sources"`
	Regions []regionReport `yaml:"regions"`
	Errors  []string       `yaml:"errors,omitempty"`
}

func newRegionsCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "regions <level>...",
		Short: "List the regions every source of each level extracts.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := scanLevels(cmd.Context(), args, a.v.GetInt("jobs"), a.log)
			if err != nil {
				return err
			}
			switch format {
			case "yaml":
				enc := yaml.NewEncoder(a.out)
				defer enc.Close()
				return enc.Encode(reports)
			case "text", "":
				return writeRegionTable(a.out, reports)
			default:
				return fmt.Errorf("unknown format %q", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "text or yaml")
	cmd.Flags().Int("jobs", 4, "levels scanned in parallel")
	_ = a.v.BindPFlag("jobs", cmd.Flags().Lookup("jobs"))
	return cmd
}

// scanLevels loads and rebuilds each level concurrently. Reports keep the
// argument order.
func scanLevels(ctx context.Context, names []string, jobs int, log *zap.Logger) ([]levelReport, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	reports := make([]levelReport, len(names))

	g, gctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			lvl, err := loadLevel(name)
			if err != nil {
				return err
			}
			sc, err := buildScene(lvl, log)
			report := levelReport{Level: lvl.Name, Sources: len(lvl.Sources)}
			if err != nil {
				log.Warn("level has broken sources", zap.String("level", lvl.Name), zap.Error(err))
				report.Errors = append(report.Errors, err.Error())
			}
			for _, src := range sc.sources() {
				report.Regions = append(report.Regions, describeRegions(src)...)
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func describeRegions(src *magnet.Source) []regionReport {
	regions := src.Regions()
	out := make([]regionReport, 0, len(regions))
	for i, r := range regions {
		out = append(out, regionReport{
			Source:          src.Name,
			Mode:            fmt.Sprint(src.Mode),
			Polarity:        r.Polarity.String(),
			Index:           i,
			Tiles:           r.TileCount,
			Area:            r.Area,
			Centroid:        [2]float64{r.Centroid.X, r.Centroid.Y},
			EffectiveRadius: r.EffectiveRadius,
			Strength:        r.Strength,
		})
	}
	return out
}

func writeRegionTable(w io.Writer, reports []levelReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, rep := range reports {
		fmt.Fprintf(tw, "# %s: %d sources, %d regions\n", rep.Level, rep.Sources, len(rep.Regions))
		fmt.Fprintln(tw, "SOURCE\tMODE\tPOLARITY\tREGION\tTILES\tAREA\tCENTROID\tRADIUS\tSTRENGTH")
		for _, r := range rep.Regions {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%.3f\t(%.3f, %.3f)\t%.3f\t%.3f\n",
				r.Source, r.Mode, r.Polarity, r.Index, r.Tiles, r.Area,
				r.Centroid[0], r.Centroid[1], r.EffectiveRadius, r.Strength)
		}
		for _, e := range rep.Errors {
			fmt.Fprintf(tw, "! %s\n", e)
		}
	}
	return tw.Flush()
}
