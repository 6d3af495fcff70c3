// Package plot renders kernel charts as base64 encoded PNG images
package plot

import (
	"bytes"
	"encoding/base64"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	mdwerror "github.com/msto63/euler/foundation/core/error"
	"github.com/msto63/euler/internal/euler/kernel"
	"github.com/msto63/euler/pkg/core/config"
)

// areaFill is the fill colour of Area series
var areaFill = color.NRGBA{R: 173, G: 216, B: 230, A: 128}

// Config holds the canvas settings
type Config struct {
	Width  vg.Length
	Height vg.Length
	DPI    int
}

// DefaultConfig returns a 16x10 cm canvas at 96 dpi
func DefaultConfig() Config {
	return Config{Width: 16 * vg.Centimeter, Height: 10 * vg.Centimeter, DPI: 96}
}

// FromConfig converts the [plot] section
func FromConfig(c config.PlotConfig) Config {
	return Config{
		Width:  vg.Length(c.Width) * vg.Centimeter,
		Height: vg.Length(c.Height) * vg.Centimeter,
		DPI:    c.DPI,
	}
}

// Renderer draws charts with gonum/plot. It holds no mutable state and is
// safe for concurrent use.
type Renderer struct {
	cfg Config
}

// NewRenderer creates a PNG renderer
func NewRenderer(cfg Config) *Renderer {
	def := DefaultConfig()
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = def.Height
	}
	if cfg.DPI <= 0 {
		cfg.DPI = def.DPI
	}
	return &Renderer{cfg: cfg}
}

// New returns the renderer selected by the [plot] section: a PNG renderer
// or, when plotting is disabled, Nop
func New(c config.PlotConfig) kernel.Renderer {
	if !c.Enabled {
		return Nop{}
	}
	return NewRenderer(FromConfig(c))
}

// Render implements kernel.Renderer
func (r *Renderer) Render(c kernel.Chart) (string, error) {
	p, err := build(c)
	if err != nil {
		return "", mdwerror.Wrap(err, "build chart").WithCode(mdwerror.CodeRenderFailed)
	}

	canvas := vgimg.NewWith(vgimg.UseWH(r.cfg.Width, r.cfg.Height), vgimg.UseDPI(r.cfg.DPI))
	p.Draw(draw.New(canvas))

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: canvas}).WriteTo(&buf); err != nil {
		return "", mdwerror.Wrap(err, "encode png").WithCode(mdwerror.CodeRenderFailed)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func build(c kernel.Chart) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel
	p.Add(plotter.NewGrid())

	for _, y := range c.HLines {
		y := y
		fn := plotter.NewFunction(func(float64) float64 { return y })
		fn.Color = color.Black
		fn.Width = vg.Points(0.5)
		p.Add(fn)
	}

	for i, s := range c.Series {
		xys := make(plotter.XYs, len(s.X))
		for j := range s.X {
			xys[j].X, xys[j].Y = s.X[j], s.Y[j]
		}
		col := plotutil.Color(i)

		switch s.Kind {
		case kernel.Points:
			sc, err := plotter.NewScatter(xys)
			if err != nil {
				return nil, err
			}
			sc.Color = col
			sc.Shape = plotutil.Shape(0)
			p.Add(sc)
			p.Legend.Add(s.Label, sc)
		case kernel.LinePoints:
			l, sc, err := plotter.NewLinePoints(xys)
			if err != nil {
				return nil, err
			}
			l.Color, sc.Color = col, col
			p.Add(l, sc)
			p.Legend.Add(s.Label, l, sc)
		case kernel.Area:
			l, err := plotter.NewLine(xys)
			if err != nil {
				return nil, err
			}
			l.FillColor = areaFill
			l.Color = color.Transparent
			p.Add(l)
		default:
			l, err := plotter.NewLine(xys)
			if err != nil {
				return nil, err
			}
			l.Color = col
			p.Add(l)
			p.Legend.Add(s.Label, l)
		}
	}
	p.Legend.Top = true
	return p, nil
}

// Nop renders nothing, results then carry no graph
type Nop struct{}

// Render implements kernel.Renderer
func (Nop) Render(kernel.Chart) (string, error) { return "", nil }

// Decode returns the PNG bytes of a rendered graph
func Decode(graph string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(graph)
	if err != nil {
		return nil, mdwerror.Wrap(err, "decode graph").WithCode(mdwerror.CodeInvalidFormat)
	}
	return b, nil
}
