package export

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/kcatlin/permsim/internal/models"
)

// WritePlots renders one success-distribution chart per strategy into dir:
// for every possible success total, the number of trials that produced it.
func WritePlots(dir string, results map[string]*models.Aggregate) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating plot directory: %w", err)
	}

	for name, agg := range results {
		p := plot.New()
		p.Title.Text = name
		p.X.Label.Text = "Successful Searchers"
		p.Y.Label.Text = "Number of Trials"

		counts := agg.TotalCounts()
		pts := make(plotter.XYs, len(counts))
		for total, c := range counts {
			pts[total].X = float64(total)
			pts[total].Y = float64(c)
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("building line for %s: %w", name, err)
		}
		p.Add(line)

		path := filepath.Join(dir, name+".png")
		if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
			return fmt.Errorf("saving %s: %w", path, err)
		}
	}
	return nil
}
