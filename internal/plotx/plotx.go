// Package plotx renders per-variable comparison plots: both histograms
// overlaid on top, with a reference/comparison ratio pane below.
package plotx

import (
	"fmt"
	"image/color"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/interpretive-systems/rootcmp/internal/compare"
)

// Formats lists the supported plot file extensions.
var Formats = []string{"pdf", "png", "svg", "eps", "jpg", "tif", "tex"}

// ValidFormat reports whether ext is a supported plot format.
func ValidFormat(ext string) bool {
	for _, f := range Formats {
		if f == ext {
			return true
		}
	}
	return false
}

// Renderer draws comparison plots to image files.
type Renderer struct {
	Width  vg.Length
	Height vg.Length
}

// New returns a Renderer with the default canvas size.
func New() *Renderer {
	return &Renderer{Width: 20 * vg.Centimeter, Height: 15 * vg.Centimeter}
}

// Comparison renders one variable's comparison plot to path. The format
// is taken from the path extension.
func (r *Renderer) Comparison(res compare.Result, ref, cmp *hbook.H1D, path string) error {
	rp := hplot.NewRatioPlot()
	rp.Ratio = 0.3

	href := hplot.NewH1D(ref, hplot.WithYErrBars(true))
	href.LineStyle.Color = color.Black
	href.LineStyle.Width = vg.Points(2)

	hcmp := hplot.NewH1D(cmp, hplot.WithYErrBars(true))
	hcmp.LineStyle.Color = color.RGBA{R: 255, A: 255}
	hcmp.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	rp.Top.Y.Label.Text = "N"
	rp.Top.Add(href, hcmp, plotter.NewGrid())
	rp.Top.Legend.Add(legendLabel("ref", res.Ref), href)
	rp.Top.Legend.Add(legendLabel("cmp", res.Cmp), hcmp)
	rp.Top.Legend.Top = true
	rp.Top.Legend.Left = false

	ratio := ratioPoints(ref, cmp)
	sc, err := plotter.NewScatter(ratio)
	if err != nil {
		return fmt.Errorf("ratio scatter: %w", err)
	}
	sc.GlyphStyle.Color = color.Black
	sc.GlyphStyle.Radius = vg.Points(2)

	unity := plotter.XYs{{X: ref.XMin(), Y: 1}, {X: ref.XMax(), Y: 1}}
	line, err := plotter.NewLine(unity)
	if err != nil {
		return fmt.Errorf("unity line: %w", err)
	}
	line.LineStyle.Color = color.Gray{Y: 128}

	rp.Bottom.X.Label.Text = res.Name
	rp.Bottom.Y.Label.Text = "ref / cmp"
	rp.Bottom.Add(line, sc, plotter.NewGrid())
	rp.Bottom.Y.Min = 0.8
	rp.Bottom.Y.Max = 1.2
	rp.Bottom.X.Min = ref.XMin()
	rp.Bottom.X.Max = ref.XMax()

	if err := hplot.Save(rp, r.Width, r.Height, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// ratioPoints returns one point per bin where both histograms have
// content, at the bin center with y = ref/cmp.
func ratioPoints(ref, cmp *hbook.H1D) plotter.XYs {
	var pts plotter.XYs
	rbins := ref.Binning.Bins
	cbins := cmp.Binning.Bins
	for i := range rbins {
		rw := rbins[i].SumW()
		cw := cbins[i].SumW()
		if cw == 0 {
			continue
		}
		pts = append(pts, plotter.XY{X: rbins[i].XMid(), Y: rw / cw})
	}
	return pts
}

func legendLabel(tag string, s compare.Stats) string {
	return fmt.Sprintf("%s: n=%d mean=%.4g sd=%.4g", tag, s.Entries, s.Mean, s.StdDev)
}
