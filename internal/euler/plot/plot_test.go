package plot

import (
	"bytes"
	"context"
	"image/png"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/msto63/euler/internal/euler/kernel"
	"github.com/msto63/euler/internal/euler/params"
	"github.com/msto63/euler/pkg/core/config"
)

func testChart() kernel.Chart {
	xs := []float64{0, 0.5, 1, 1.5, 2}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = math.Sin(x)
	}
	return kernel.Chart{
		Title:  "test",
		XLabel: "x",
		YLabel: "y",
		Series: []kernel.Series{
			{Label: "area", Kind: kernel.Area, X: xs, Y: ys},
			{Label: "line", Kind: kernel.Line, X: xs, Y: ys},
			{Label: "points", Kind: kernel.Points, X: xs, Y: ys},
			{Label: "both", Kind: kernel.LinePoints, X: xs, Y: ys},
		},
		HLines: []float64{0},
	}
}

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer(DefaultConfig())
	graph, err := r.Render(testChart())
	require.NoError(t, err)
	require.NotEmpty(t, graph)

	raw, err := Decode(graph)
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(raw))
	require.NoError(t, err)
	// 16 x 10 cm at 96 dpi
	assert.InDelta(t, 605, cfg.Width, 2)
	assert.InDelta(t, 378, cfg.Height, 2)
}

func TestRenderer_Concurrent(t *testing.T) {
	r := NewRenderer(DefaultConfig())
	want, err := r.Render(testChart())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = r.Render(testChart())
		}(i)
	}
	wg.Wait()
	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestNew(t *testing.T) {
	assert.IsType(t, Nop{}, New(config.PlotConfig{Enabled: false}))
	assert.IsType(t, &Renderer{}, New(config.PlotConfig{Enabled: true, Width: 8, Height: 5, DPI: 72}))
}

func TestNop_OmitsGraph(t *testing.T) {
	res, err := kernel.SimpsonsRule(context.Background(), params.Set{}, Nop{})
	require.NoError(t, err)
	assert.NotContains(t, res, kernel.GraphKey)
}

func TestKernelsRender(t *testing.T) {
	r := NewRenderer(Config{Width: 8 * vg.Centimeter, Height: 5 * vg.Centimeter, DPI: 48})
	for _, task := range kernel.Tasks() {
		t.Run(task.Name, func(t *testing.T) {
			res, err := task.Run(context.Background(), params.Set{}, r)
			require.NoError(t, err)
			if task.ID == 7 {
				assert.NotContains(t, res, kernel.GraphKey)
				return
			}
			assert.NotEmpty(t, res[kernel.GraphKey])
		})
	}
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode("not base64!")
	assert.Error(t, err)
}
