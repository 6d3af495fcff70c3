package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/msto63/euler/internal/euler/kernel"
	"github.com/msto63/euler/internal/euler/plot"
	"github.com/msto63/euler/internal/euler/service"
)

var outputFormats = []string{"text", "json", "yaml"}

func checkOutputFormat(format string) error {
	for _, f := range outputFormats {
		if f == format {
			return nil
		}
	}
	return fmt.Errorf("unbekanntes Ausgabeformat %q, erlaubt: %s", format, strings.Join(outputFormats, ", "))
}

// taskResult pairs a result with its task in multi-task output
type taskResult struct {
	TaskID int                    `json:"task_id" yaml:"task_id"`
	Result map[string]interface{} `json:"result" yaml:"result"`
}

// writeResults prints results in format. A single result is printed bare.
func writeResults(w io.Writer, format string, ids []int, results []map[string]interface{}) error {
	var v interface{}
	if len(results) == 1 {
		v = results[0]
	} else {
		list := make([]taskResult, len(results))
		for i := range results {
			list[i] = taskResult{TaskID: ids[i], Result: results[i]}
		}
		v = list
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	default:
		for i := range results {
			if i > 0 {
				fmt.Fprintln(w)
			}
			renderText(w, ids[i], results[i])
		}
		return nil
	}
}

// renderText prints one result as an aligned key/value listing
func renderText(w io.Writer, id int, res map[string]interface{}) {
	title := fmt.Sprintf("Aufgabe %d", id)
	if t, ok := kernel.Lookup(id); ok {
		title += ": " + t.Name
	}
	fmt.Fprintln(w, titleStyle.Render(title))

	if msg, failed := service.ErrorMessage(res); failed {
		fmt.Fprintln(w, "  "+errorStyle.Render("Fehler: "+msg))
		return
	}
	renderMap(w, res, "  ")
}

func renderMap(w io.Writer, m map[string]interface{}, indent string) {
	keys := make([]string, 0, len(m))
	width := 0
	for k := range m {
		keys = append(keys, k)
		if len(k) > width {
			width = len(k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		label := keyStyle.Render(fmt.Sprintf("%-*s", width, k))
		switch v := m[k].(type) {
		case map[string]interface{}:
			fmt.Fprintf(w, "%s%s\n", indent, label)
			renderMap(w, v, indent+"  ")
		case string:
			if k == kernel.GraphKey {
				fmt.Fprintf(w, "%s%s  %s\n", indent, label, mutedStyle.Render(graphSummary(v)))
				continue
			}
			fmt.Fprintf(w, "%s%s  %s\n", indent, label, v)
		default:
			fmt.Fprintf(w, "%s%s  %s\n", indent, label, formatValue(v))
		}
	}
}

func graphSummary(graph string) string {
	b, err := plot.Decode(graph)
	if err != nil {
		return "<ungültiges Diagramm>"
	}
	return fmt.Sprintf("<PNG, %d Bytes>", len(b))
}

func formatValue(v interface{}) string {
	switch t := v.(type) {
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case []interface{}:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = formatValue(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprint(v)
	}
}

// writeGraphs stores the graph of every result. With several results the
// task id is inserted before the file extension.
func writeGraphs(path string, ids []int, results []map[string]interface{}) ([]string, error) {
	var written []string
	for i, res := range results {
		graph, ok := res[kernel.GraphKey].(string)
		if !ok || graph == "" {
			continue
		}
		b, err := plot.Decode(graph)
		if err != nil {
			return written, err
		}
		target := path
		if len(results) > 1 {
			target = graphPath(path, ids[i])
		}
		if err := os.WriteFile(target, b, 0o644); err != nil {
			return written, fmt.Errorf("Diagramm nicht gespeichert: %w", err)
		}
		written = append(written, target)
	}
	return written, nil
}

func graphPath(path string, id int) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), id, ext)
}
