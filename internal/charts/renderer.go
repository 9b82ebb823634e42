// Package charts renders the local analysis results as PNG images.
package charts

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"nutrimacro/pkg/contracts/domain"
)

// Output file names
const (
	BarChartFile = "avg_macros_bar.png"
	HeatMapFile  = "avg_macros_heatmap.png"
	ScatterFile  = "top_protein_scatter.png"
)

const averagesTitle = "Average Macronutrients by Diet Type"

// Renderer writes charts into a directory
type Renderer struct {
	dir    string
	logger *slog.Logger
}

// NewRenderer creates a renderer writing into dir
func NewRenderer(dir string, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{dir: dir, logger: logger.With(slog.String("component", "charts"))}
}

// RenderAll draws the bar chart, the heat map and the scatter plot and
// returns the written paths in that order.
func (r *Renderer) RenderAll(averages []domain.MacroAverage, top []domain.NutritionRecord) ([]string, error) {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create chart directory: %w", err)
	}

	bar, err := r.RenderBarChart(averages)
	if err != nil {
		return nil, err
	}
	heat, err := r.RenderHeatMap(averages)
	if err != nil {
		return nil, err
	}
	scatter, err := r.RenderScatter(top)
	if err != nil {
		return nil, err
	}
	return []string{bar, heat, scatter}, nil
}

// RenderBarChart draws grouped protein/carbs/fat bars per diet type
func (r *Renderer) RenderBarChart(averages []domain.MacroAverage) (string, error) {
	if len(averages) == 0 {
		return "", fmt.Errorf("no averages to plot")
	}

	p := plot.New()
	p.Title.Text = averagesTitle
	p.X.Label.Text = domain.ColumnDietType
	p.Y.Label.Text = "Average (g)"
	p.Legend.Top = true

	width := vg.Points(14)
	for i, col := range domain.MacroColumns {
		values := make(plotter.Values, len(averages))
		for j, a := range averages {
			values[j] = a.Values()[i]
		}

		bars, err := plotter.NewBarChart(values, width)
		if err != nil {
			return "", fmt.Errorf("failed to build %s bars: %w", col, err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = vg.Length(i-1) * width

		p.Add(bars)
		p.Legend.Add(col, bars)
	}
	p.NominalX(dietNames(averages)...)
	p.X.Tick.Label.XAlign = draw.XCenter

	return r.save(p, BarChartFile, vg.Length(math.Max(6, float64(len(averages))*1.2))*vg.Inch, 5*vg.Inch)
}

// macroGrid adapts the averages to plotter.GridXYZ: columns are the
// macronutrients and rows the diet types.
type macroGrid []domain.MacroAverage

func (g macroGrid) Dims() (c, r int)   { return len(domain.MacroColumns), len(g) }
func (g macroGrid) Z(c, r int) float64 { return g[r].Values()[c] }
func (g macroGrid) X(c int) float64    { return float64(c) }
func (g macroGrid) Y(r int) float64    { return float64(r) }

// RenderHeatMap draws the averages as a YlGnBu heat map annotated with
// one decimal.
func (r *Renderer) RenderHeatMap(averages []domain.MacroAverage) (string, error) {
	if len(averages) == 0 {
		return "", fmt.Errorf("no averages to plot")
	}

	pal, err := brewer.GetPalette(brewer.TypeSequential, "YlGnBu", 9)
	if err != nil {
		return "", fmt.Errorf("failed to load palette: %w", err)
	}

	grid := macroGrid(averages)
	p := plot.New()
	p.Title.Text = averagesTitle
	p.X.Label.Text = "Macronutrient"
	p.Y.Label.Text = "Diet Type"

	heat := plotter.NewHeatMap(grid, pal)
	if heat.Max == heat.Min {
		// a flat grid would divide by zero when picking colours
		heat.Max = heat.Min + 1
	}
	p.Add(heat)

	cols, rows := grid.Dims()
	xys := make([]plotter.XY, 0, cols*rows)
	labels := make([]string, 0, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			xys = append(xys, plotter.XY{X: grid.X(col), Y: grid.Y(row)})
			labels = append(labels, fmt.Sprintf("%.1f", grid.Z(col, row)))
		}
	}
	annotations, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return "", fmt.Errorf("failed to build annotations: %w", err)
	}
	for i := range annotations.TextStyle {
		annotations.TextStyle[i].XAlign = draw.XCenter
		annotations.TextStyle[i].YAlign = draw.YCenter
	}
	p.Add(annotations)

	p.NominalX(domain.MacroColumns...)
	p.NominalY(dietNames(averages)...)

	return r.save(p, HeatMapFile, 8*vg.Inch, 6*vg.Inch)
}

// RenderScatter plots protein against carbs for the top-protein rows,
// coloured by cuisine and shaped by diet type.
func (r *Renderer) RenderScatter(top []domain.NutritionRecord) (string, error) {
	p := plot.New()
	p.Title.Text = "Top 5 Protein-Rich Recipes by Diet Type and Cuisine"
	p.X.Label.Text = "Protein (g)"
	p.Y.Label.Text = "Carbs (g)"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	cuisines := newIndex()
	diets := newIndex()
	type series struct{ cuisine, diet int }
	points := make(map[series]plotter.XYs)
	var order []series

	for _, rec := range top {
		if !rec.HasProtein() || math.IsNaN(rec.Carbs) {
			continue
		}
		key := series{cuisines.id(rec.CuisineType), diets.id(rec.DietType)}
		if _, ok := points[key]; !ok {
			order = append(order, key)
		}
		points[key] = append(points[key], plotter.XY{X: rec.Protein, Y: rec.Carbs})
	}

	for _, key := range order {
		scatter, err := plotter.NewScatter(points[key])
		if err != nil {
			return "", fmt.Errorf("failed to build scatter: %w", err)
		}
		scatter.GlyphStyle = glyph(plotutil.Color(key.cuisine), key.diet)
		p.Add(scatter)
	}

	for i, name := range cuisines.names {
		p.Legend.Add(label(name), &plotter.Scatter{GlyphStyle: glyph(plotutil.Color(i), 0)})
	}
	for i, name := range diets.names {
		p.Legend.Add(label(name), &plotter.Scatter{GlyphStyle: glyph(color.Black, i)})
	}

	return r.save(p, ScatterFile, 8*vg.Inch, 6*vg.Inch)
}

func (r *Renderer) save(p *plot.Plot, name string, w, h vg.Length) (string, error) {
	path := filepath.Join(r.dir, name)
	if err := p.Save(w, h, path); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", name, err)
	}
	r.logger.Info("Chart written", slog.String("path", path))
	return path, nil
}

func glyph(c color.Color, shape int) draw.GlyphStyle {
	return draw.GlyphStyle{
		Color:  c,
		Radius: vg.Points(4),
		Shape:  plotutil.Shape(shape),
	}
}

func label(name string) string {
	if name == "" {
		return "(missing)"
	}
	return name
}

func dietNames(averages []domain.MacroAverage) []string {
	names := make([]string, len(averages))
	for i, a := range averages {
		names[i] = a.DietType
	}
	return names
}

// index assigns dense ids to names in first-seen order
type index struct {
	ids   map[string]int
	names []string
}

func newIndex() *index {
	return &index{ids: make(map[string]int)}
}

func (x *index) id(name string) int {
	if i, ok := x.ids[name]; ok {
		return i
	}
	x.ids[name] = len(x.names)
	x.names = append(x.names, name)
	return x.ids[name]
}
