package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/msto63/euler/internal/euler/kernel"
)

var (
	tasksRemote string
	tasksOutput string
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Listet die verfügbaren Aufgaben",
	Long: `Listet alle Aufgaben mit ihren Parametern und Standardwerten.

Mit --remote wird der Katalog eines laufenden Solvers abgefragt.`,
	Args: cobra.NoArgs,
	RunE: runTasks,
}

func init() {
	rootCmd.AddCommand(tasksCmd)
	tasksCmd.Flags().StringVar(&tasksRemote, "remote", "", "Adresse eines euler-Solvers (host:port)")
	tasksCmd.Flags().StringVarP(&tasksOutput, "output", "o", "text", "Ausgabeformat: text, json, yaml")
}

func runTasks(cmd *cobra.Command, args []string) error {
	if err := checkOutputFormat(tasksOutput); err != nil {
		return err
	}

	solver, closeFn, err := newSolver(tasksRemote, false)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	tasks, err := solver.ListTasks(ctx)
	if err != nil {
		return err
	}
	return writeTasks(os.Stdout, tasksOutput, tasks)
}

func writeTasks(w io.Writer, format string, tasks []kernel.Task) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(tasks)
	}

	for i, t := range tasks {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%d  %s", t.ID, t.Name)))
		fmt.Fprintln(w, "   "+t.Description)
		for _, p := range t.Params {
			def := ""
			if p.Default != "" {
				def = mutedStyle.Render(" (default " + p.Default + ")")
			}
			fmt.Fprintf(w, "   %s %s%s\n", keyStyle.Render(fmt.Sprintf("%-10s", p.Name)), p.Description, def)
		}
	}
	return nil
}
