package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	eulerClient "github.com/msto63/euler/internal/euler/client"
	"github.com/msto63/euler/internal/euler/kernel"
	"github.com/msto63/euler/internal/euler/params"
	"github.com/msto63/euler/internal/euler/plot"
	"github.com/msto63/euler/internal/euler/service"
)

var (
	solveParams    []string
	solveRemote    string
	solveOutput    string
	solveGraphFile string
	solveNoGraph   bool
)

var solveCmd = &cobra.Command{
	Use:   "solve <aufgabe>...",
	Short: "Berechnet eine oder mehrere Aufgaben",
	Long: `Berechnet Aufgaben lokal oder über einen entfernten Solver.

Eine Aufgabe wird per Nummer (1-8) oder Name angegeben. Parameter
gelten für alle angegebenen Aufgaben.

Beispiele:
  euler solve 3 -p omega=1.1 -p tol=1e-8
  euler solve cubic-spline -p x_values=0,1,2,3 -p y_values=0,1,8,27 --graph-file spline.png
  euler solve 1 2 4 -o json
  euler solve 8 --remote localhost:9300`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().StringArrayVarP(&solveParams, "param", "p", nil, "Parameter als key=value (mehrfach)")
	solveCmd.Flags().StringVar(&solveRemote, "remote", "", "Adresse eines euler-Solvers (host:port)")
	solveCmd.Flags().StringVarP(&solveOutput, "output", "o", "text", "Ausgabeformat: text, json, yaml")
	solveCmd.Flags().StringVar(&solveGraphFile, "graph-file", "", "Diagramm als PNG speichern")
	solveCmd.Flags().BoolVar(&solveNoGraph, "no-graph", false, "Kein Diagramm erzeugen")
}

func runSolve(cmd *cobra.Command, args []string) error {
	if err := checkOutputFormat(solveOutput); err != nil {
		return err
	}

	p, err := params.FromPairs(solveParams)
	if err != nil {
		return err
	}

	ids := make([]int, len(args))
	for i, arg := range args {
		if ids[i], err = resolveTask(arg); err != nil {
			return err
		}
	}

	graphs := !solveNoGraph && (solveGraphFile != "" || solveOutput != "text")
	solver, closeFn, err := newSolver(solveRemote, graphs)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, cancel := context.WithTimeout(cmd.Context(), appConfig.Euler.SolveTimeout.Duration)
	defer cancel()

	results, err := solveAll(ctx, solver, ids, p)
	if err != nil {
		return err
	}

	if solveGraphFile != "" && !solveNoGraph {
		written, err := writeGraphs(solveGraphFile, ids, results)
		if err != nil {
			return err
		}
		for _, path := range written {
			fmt.Fprintln(os.Stderr, mutedStyle.Render("Diagramm gespeichert: "+path))
		}
	}

	return writeResults(os.Stdout, solveOutput, ids, results)
}

// newSolver returns the local dispatcher or a client of the remote one
func newSolver(remote string, graphs bool) (service.Solver, func() error, error) {
	if remote != "" {
		c, err := eulerClient.New(remote)
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil
	}

	var renderer kernel.Renderer
	if graphs {
		renderer = plot.New(appConfig.Plot)
	}
	svc, err := service.NewService(service.Config{
		Renderer: renderer,
		MaxBatch: appConfig.Euler.MaxBatch,
	})
	if err != nil {
		return nil, nil, err
	}
	return svc, func() error { return nil }, nil
}

// solveAll solves ids with the same parameters, in parallel when the
// solver runs in process
func solveAll(ctx context.Context, solver service.Solver, ids []int, p params.Set) ([]map[string]interface{}, error) {
	if svc, ok := solver.(*service.Service); ok && len(ids) > 1 {
		reqs := make([]service.Request, len(ids))
		for i, id := range ids {
			reqs[i] = service.Request{TaskID: id, Params: p.Clone()}
		}
		return svc.SolveBatch(ctx, reqs)
	}

	results := make([]map[string]interface{}, len(ids))
	for i, id := range ids {
		res, err := solver.Solve(ctx, id, p.Clone())
		if err != nil {
			return nil, err
		}
		results[i] = res
	}
	return results, nil
}

// resolveTask accepts a task number or a task name. Numbers are passed
// through unchecked, the dispatcher answers unknown ones.
func resolveTask(arg string) (int, error) {
	if id, err := strconv.Atoi(arg); err == nil {
		return id, nil
	}
	for _, t := range kernel.Tasks() {
		if strings.EqualFold(t.Name, arg) {
			return t.ID, nil
		}
	}
	return 0, fmt.Errorf("unbekannte Aufgabe %q (siehe: euler tasks)", arg)
}
