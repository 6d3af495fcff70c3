package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/euler/pkg/core/config"
	"github.com/msto63/euler/pkg/core/logging"
)

var (
	cfgFile   string
	verbose   bool
	logLevel  string
	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "euler",
	Short: "euler - Numerische Verfahren als Service",
	Long: `euler berechnet acht klassische numerische Verfahren und liefert
gerundete Ergebnisse samt optionalem Diagramm.

Aufgaben:
  1 graphical-root   - Nullstelle grafisch und per Newton
  2 root-comparison  - Bisektion gegen Newton-Raphson
  3 relaxation       - Relaxationsverfahren für ein 3x3-System
  4 power-method     - Dominanter Eigenwert per Potenzmethode
  5 exponential-fit  - Exponentielle Regression
  6 cubic-spline     - Natürlicher kubischer Spline
  7 picard           - Picard-Iteration
  8 simpson          - Simpsonregel`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the command tree
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError("Ausführung fehlgeschlagen", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config-Datei (default: $EULER_CONFIG oder ./configs/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose Output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log-Level (debug, info, warn, error); überschreibt die Config")
}

// loadConfig resolves the configuration before every command: --config,
// then EULER_CONFIG and the default paths, then environment overrides
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		appConfig, err = config.Load(cfgFile)
	} else {
		appConfig, err = config.LoadFromEnv()
	}
	if err != nil {
		return fmt.Errorf("Config nicht geladen: %w", err)
	}
	if err := appConfig.ApplyEnv(); err != nil {
		return fmt.Errorf("Umgebungsvariablen ungültig: %w", err)
	}
	if err := appConfig.Validate(); err != nil {
		return fmt.Errorf("Config ungültig: %w", err)
	}

	level, err := commandLogLevel(cmd.Name())
	if err != nil {
		return err
	}
	logging.Configure(level.String(), appConfig.Logging.Format, os.Stderr)
	return nil
}

// commandLogLevel picks the log level: -v, then --log-level, then the
// config for serve and warn for every other command
func commandLogLevel(command string) (logging.Level, error) {
	name := appConfig.Logging.Level
	switch {
	case verbose:
		return logging.LevelDebug, nil
	case logLevel != "":
		name = logLevel
	case command != "serve":
		return logging.LevelWarn, nil
	}
	level, err := logging.ParseLevel(name)
	if err != nil {
		return level, fmt.Errorf("Log-Level ungültig: %w", err)
	}
	return level, nil
}

func printError(msg string, err error) {
	fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Fehler: %s: %v", msg, err)))
}
