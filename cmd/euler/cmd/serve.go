package cmd

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	eulerClient "github.com/msto63/euler/internal/euler/client"
	"github.com/msto63/euler/internal/euler/plot"
	eulerServer "github.com/msto63/euler/internal/euler/server"
	"github.com/msto63/euler/internal/euler/service"
	"github.com/msto63/euler/internal/gateway/handler"
	gatewayServer "github.com/msto63/euler/internal/gateway/server"
	"github.com/msto63/euler/pkg/core/cache"
	"github.com/msto63/euler/pkg/core/health"
	"github.com/msto63/euler/pkg/core/version"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve [euler|gateway]",
	Short: "Startet den Solver und/oder das HTTP-Gateway",
	Long: `Startet die euler Services.

Ohne Argument laufen gRPC-Solver und HTTP-Gateway in einem Prozess,
das Gateway nutzt den Solver dann direkt.

Services:
  euler    - Solver (gRPC, default :9300)
  gateway  - HTTP/WebSocket-Gateway (default :8080), nutzt den
             Solver unter gateway.euler_addr

Beispiele:
  euler serve            # Solver und Gateway
  euler serve euler      # Nur den gRPC-Solver
  euler serve gateway    # Nur das Gateway vor einem entfernten Solver`,
	ValidArgs: []string{"euler", "gateway"},
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	RunE:      runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mode := "all"
	if len(args) == 1 {
		mode = args[0]
	}

	var (
		eulerSrv *eulerServer.Server
		gateway  *gatewayServer.Server
		solver   service.Solver
	)

	if mode != "gateway" {
		var resultCache *cache.Cache
		if appConfig.Cache.Enabled {
			resultCache = cache.New(cache.Config{
				MaxItems:        appConfig.Cache.MaxItems,
				TTL:             appConfig.Cache.TTL.Duration,
				CleanupInterval: time.Minute,
			})
			defer resultCache.Close()
		}

		var err error
		eulerSrv, err = eulerServer.New(eulerServer.Config{
			Host:             appConfig.Euler.Host,
			Port:             appConfig.Euler.Port,
			EnableReflection: appConfig.Euler.EnableReflection,
			SolveTimeout:     appConfig.Euler.SolveTimeout.Duration,
			Service: service.Config{
				Renderer: plot.New(appConfig.Plot),
				Cache:    resultCache,
				MaxBatch: appConfig.Euler.MaxBatch,
			},
		})
		if err != nil {
			return err
		}
		solver = eulerSrv.Service()
	} else {
		remote, err := eulerClient.New(eulerTarget())
		if err != nil {
			return err
		}
		defer remote.Close()
		solver = remote
	}

	if mode != "euler" {
		var err error
		gateway, err = gatewayServer.New(gatewayConfig(), solver)
		if err != nil {
			return err
		}
		if eulerSrv == nil {
			gateway.HealthRegistry().Register(health.GRPCCheck("euler", eulerTarget(), 2*time.Second))
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	if eulerSrv != nil {
		g.Go(eulerSrv.Start)
	}
	if gateway != nil {
		g.Go(gateway.Start)
	}
	g.Go(func() error {
		<-gctx.Done()
		fmt.Println()
		fmt.Println(mutedStyle.Render("Stoppe Services..."))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if gateway != nil {
			if err := gateway.Stop(shutdownCtx); err != nil {
				printError("Gateway-Stopp", err)
			}
		}
		if eulerSrv != nil {
			eulerSrv.Stop(shutdownCtx)
		}
		return nil
	})

	fmt.Println(titleStyle.Render("euler " + version.Platform))
	if eulerSrv != nil {
		fmt.Printf("  %s gRPC-Solver     %s\n", okStyle.Render("[+]"), appConfig.EulerAddress())
	}
	if gateway != nil {
		fmt.Printf("  %s HTTP-Gateway    %s\n", okStyle.Render("[+]"), appConfig.GatewayAddress())
		if eulerSrv == nil {
			fmt.Printf("  %s Solver          %s\n", keyStyle.Render("[>]"), eulerTarget())
		}
	}
	fmt.Println(mutedStyle.Render("Ctrl+C zum Beenden"))

	return g.Wait()
}

// eulerTarget is the solver address the gateway and status dial
func eulerTarget() string {
	if appConfig.Gateway.EulerAddr != "" {
		return appConfig.Gateway.EulerAddr
	}
	return dialAddress(appConfig.Euler.Host, appConfig.Euler.Port)
}

// dialAddress turns a listen address into one a local client can reach
func dialAddress(host string, port int) string {
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}

func gatewayConfig() gatewayServer.Config {
	return gatewayServer.Config{
		Host:         appConfig.Gateway.Host,
		Port:         appConfig.Gateway.Port,
		ReadTimeout:  appConfig.Gateway.ReadTimeout.Duration,
		WriteTimeout: appConfig.Gateway.WriteTimeout.Duration,
		Handler: handler.Config{
			Version:        version.Gateway,
			MaxBodyBytes:   appConfig.Gateway.MaxBodyBytes,
			SolveTimeout:   appConfig.Euler.SolveTimeout.Duration,
			CORS:           appConfig.Gateway.CORS.Enabled,
			AllowedOrigins: appConfig.Gateway.CORS.AllowedOrigins,
		},
	}
}
