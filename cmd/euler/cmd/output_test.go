package cmd

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/msto63/euler/internal/euler/kernel"
	"github.com/msto63/euler/internal/euler/params"
	"github.com/msto63/euler/internal/euler/service"
	"github.com/msto63/euler/pkg/core/config"
	"github.com/msto63/euler/pkg/core/logging"
)

func TestResolveTask(t *testing.T) {
	tests := []struct {
		arg     string
		want    int
		wantErr bool
	}{
		{"3", 3, false},
		{"42", 42, false},
		{"cubic-spline", 6, false},
		{"Simpson", 8, false},
		{"gauss", 0, true},
	}
	for _, tt := range tests {
		got, err := resolveTask(tt.arg)
		if tt.wantErr {
			assert.Error(t, err, tt.arg)
			continue
		}
		require.NoError(t, err, tt.arg)
		assert.Equal(t, tt.want, got, tt.arg)
	}
}

func TestCheckOutputFormat(t *testing.T) {
	for _, f := range []string{"text", "json", "yaml"} {
		assert.NoError(t, checkOutputFormat(f))
	}
	assert.Error(t, checkOutputFormat("xml"))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "3", formatValue(3.0))
	assert.Equal(t, "0.000011", formatValue(0.000011))
	assert.Equal(t, "[1, 2.5, true]", formatValue([]interface{}{1.0, 2.5, true}))
	assert.Equal(t, "[[1, 2], [3]]", formatValue([]interface{}{[]interface{}{1.0, 2.0}, []interface{}{3.0}}))
}

func TestRenderText(t *testing.T) {
	graph := base64.StdEncoding.EncodeToString([]byte("0123456789"))
	res := map[string]interface{}{
		"solution":   map[string]interface{}{"x": 2.0, "y": 3.0, "z": -1.0},
		"iterations": 107.0,
		"converged":  true,
		"graph":      graph,
	}

	var buf bytes.Buffer
	renderText(&buf, 3, res)
	out := buf.String()

	assert.Contains(t, out, "Aufgabe 3: relaxation")
	assert.Contains(t, out, "107")
	assert.Contains(t, out, "<PNG, 10 Bytes>")
	assert.NotContains(t, out, graph)
	assert.Regexp(t, `(?m)^\s{4}x\s+2$`, out)
}

func TestRenderText_Error(t *testing.T) {
	var buf bytes.Buffer
	renderText(&buf, 99, service.ErrorResult(service.InvalidTaskMessage))
	assert.Contains(t, buf.String(), "Aufgabe 99")
	assert.Contains(t, buf.String(), "Fehler: Invalid task number")
}

func TestWriteResults(t *testing.T) {
	results := []map[string]interface{}{
		{"integral_approx": 2.00011},
		{"error": "Invalid task number"},
	}

	t.Run("single json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeResults(&buf, "json", []int{8}, results[:1]))
		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, 2.00011, got["integral_approx"])
	})

	t.Run("multiple yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeResults(&buf, "yaml", []int{8, 9}, results))
		var got []taskResult
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, 9, got[1].TaskID)
		assert.Equal(t, "Invalid task number", got[1].Result["error"])
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeResults(&buf, "text", []int{8, 9}, results))
		assert.Contains(t, buf.String(), "Aufgabe 8: simpson")
		assert.Contains(t, buf.String(), "Aufgabe 9")
	})
}

func TestWriteGraphs(t *testing.T) {
	dir := t.TempDir()
	png := []byte{0x89, 'P', 'N', 'G'}
	graph := base64.StdEncoding.EncodeToString(png)

	results := []map[string]interface{}{
		{"graph": graph},
		{"y0": "1"},
		{"graph": graph},
	}
	written, err := writeGraphs(filepath.Join(dir, "plot.png"), []int{1, 7, 3}, results)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "plot-1.png"),
		filepath.Join(dir, "plot-3.png"),
	}, written)

	data, err := os.ReadFile(written[1])
	require.NoError(t, err)
	assert.Equal(t, png, data)

	single, err := writeGraphs(filepath.Join(dir, "one.png"), []int{1}, results[:1])
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "one.png")}, single)

	_, err = writeGraphs(filepath.Join(dir, "bad.png"), []int{1}, []map[string]interface{}{{"graph": "%%%"}})
	assert.Error(t, err)
}

func TestGraphPath(t *testing.T) {
	assert.Equal(t, "out/chart-4.png", graphPath("out/chart.png", 4))
	assert.Equal(t, "chart-2", graphPath("chart", 2))
}

func TestDialAddress(t *testing.T) {
	assert.Equal(t, "localhost:9300", dialAddress("0.0.0.0", 9300))
	assert.Equal(t, "localhost:8080", dialAddress("", 8080))
	assert.Equal(t, "10.0.0.5:9300", dialAddress("10.0.0.5", 9300))
}

func TestSolveAll(t *testing.T) {
	svc, err := service.NewService(service.Config{})
	require.NoError(t, err)

	p := params.Set{"tol": "1e-6"}
	results, err := solveAll(context.Background(), svc, []int{1, 9, 7}, p)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, 3.0, results[0]["numerical_root"])
	assert.Equal(t, "Invalid task number", results[1]["error"])
	assert.Equal(t, 1.242803, results[2]["y(0.2)"])
	assert.Equal(t, params.Set{"tol": "1e-6"}, p)
}

func TestWriteTasks(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTasks(&buf, "text", kernel.Tasks()))
	assert.Contains(t, buf.String(), "power-method")
	assert.Contains(t, buf.String(), "(default 0.8)")

	buf.Reset()
	require.NoError(t, writeTasks(&buf, "json", kernel.Tasks()))
	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Len(t, got, 8)
	assert.NotContains(t, got[0], "Run")
}

func TestCommandLogLevel(t *testing.T) {
	prevConfig, prevVerbose, prevLevel := appConfig, verbose, logLevel
	t.Cleanup(func() { appConfig, verbose, logLevel = prevConfig, prevVerbose, prevLevel })

	appConfig = config.Default()
	appConfig.Logging.Level = "error"
	verbose, logLevel = false, ""

	level, err := commandLogLevel("serve")
	require.NoError(t, err)
	assert.Equal(t, logging.LevelError, level)

	level, err = commandLogLevel("solve")
	require.NoError(t, err)
	assert.Equal(t, logging.LevelWarn, level)

	logLevel = "info"
	level, err = commandLogLevel("solve")
	require.NoError(t, err)
	assert.Equal(t, logging.LevelInfo, level)

	verbose = true
	level, err = commandLogLevel("serve")
	require.NoError(t, err)
	assert.Equal(t, logging.LevelDebug, level)

	verbose, logLevel = false, "loud"
	_, err = commandLogLevel("serve")
	assert.Error(t, err)
}
