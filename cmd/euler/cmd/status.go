package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/euler/pkg/core/health"
	"github.com/msto63/euler/pkg/core/version"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Zeigt den Status der Services",
	Long: `Prüft Erreichbarkeit und Gesundheitszustand von Solver und Gateway
anhand der konfigurierten Adressen.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	gatewayAddr := dialAddress(appConfig.Gateway.Host, appConfig.Gateway.Port)

	registry := health.NewRegistry("euler-cli", version.Platform)
	registry.Register(health.TCPCheck("euler-port", eulerTarget(), 2*time.Second))
	registry.Register(health.GRPCCheck("euler", eulerTarget(), 3*time.Second))
	registry.Register(health.HTTPCheck("gateway", "http://"+gatewayAddr+"/api/v1/health", 3*time.Second))

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()
	report := registry.Check(ctx)

	fmt.Println(titleStyle.Render("euler Status"))
	fmt.Println()
	for _, c := range report.Checks {
		icon := okStyle.Render("[+]")
		switch c.Status {
		case health.StatusUnhealthy:
			icon = errorStyle.Render("[-]")
		case health.StatusDegraded:
			icon = warnStyle.Render("[~]")
		}
		fmt.Printf("  %s %-12s %s\n", icon, c.Name, mutedStyle.Render(fmt.Sprintf("%s (%s)", c.Message, c.Duration.Round(time.Millisecond))))
	}
	fmt.Println()

	if report.Status == health.StatusHealthy {
		fmt.Println(okStyle.Render("Alle Services sind aktiv."))
	} else {
		fmt.Println(warnStyle.Render("Einige Services sind nicht aktiv."))
		fmt.Println(mutedStyle.Render("Starte mit: euler serve"))
	}
	return nil
}
