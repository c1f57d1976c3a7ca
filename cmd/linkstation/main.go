package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/spf13/cobra"

	"github.com/joeblew999/plat-linkstation/internal/apperr"
	"github.com/joeblew999/plat-linkstation/internal/config"
	"github.com/joeblew999/plat-linkstation/internal/linkstation"
	"github.com/joeblew999/plat-linkstation/internal/logger"
	"github.com/joeblew999/plat-linkstation/internal/server"
	"github.com/joeblew999/plat-linkstation/internal/service"
)

// Options defines the CLI flags and env vars of the linkstation server.
// Flags: --config, --env-file
// Env vars: SERVICE_CONFIG, SERVICE_ENV_FILE
// Everything else is configured through the config file and LINKSTATION_* variables.
type Options struct {
	Config  string `doc:"Path to a YAML or JSON config file"`
	EnvFile string `doc:"Path to a .env file" default:".env"`
}

func loadConfig(opts *Options) *config.Config {
	cfg, err := config.Load(opts.Config, opts.EnvFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.SetLevel(cfg.Log.Level); err != nil {
		fmt.Fprintf(os.Stderr, "Error setting log level: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func newServer(cfg *config.Config) *server.Server {
	sc := server.FromConfig(cfg)
	sc.Logger = logger.New("server")
	srv, err := server.New(sc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}
	return srv
}

func main() {
	newCLI().Run()
}

// newCLI builds the command tree. humacli runs the callback before every
// subcommand, so the server is only built once the root command starts.
func newCLI() humacli.CLI {
	cli := humacli.New(func(hooks humacli.Hooks, opts *Options) {
		ctx, cancel := context.WithCancel(context.Background())

		hooks.OnStart(func() {
			cfg := loadConfig(opts)
			srv := newServer(cfg)

			displayHost := cfg.Server.Host
			if displayHost == "0.0.0.0" {
				displayHost = "localhost"
			}
			baseURL := fmt.Sprintf("http://%s:%d", displayHost, cfg.Server.Port)

			fmt.Println()
			fmt.Printf("plat-linkstation API server starting...\n")
			fmt.Printf("  Server:  %s\n", baseURL)
			fmt.Printf("  Find:    POST %s%s/linkstation/findLinkStationForDevice\n", baseURL, cfg.Server.BasePath)
			fmt.Printf("  Docs:    %s/docs\n", baseURL)
			fmt.Printf("  OpenAPI: %s/openapi.json\n", baseURL)
			fmt.Println()

			if err := srv.Run(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
				os.Exit(1)
			}
		})

		hooks.OnStop(cancel)
	})

	cli.Root().Use = "linkstation"
	cli.Root().Short = "Finds the most suitable link station for a device"
	cli.Root().Version = "1.0.0"

	// spec subcommand: export OpenAPI spec
	specCmd := &cobra.Command{
		Use:   "spec",
		Short: "Export OpenAPI spec (JSON by default, --yaml for YAML)",
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, opts *Options) {
			srv := newServer(loadConfig(opts))

			useYAML, _ := cmd.Flags().GetBool("yaml")

			var output []byte
			var err error
			if useYAML {
				output, err = srv.OpenAPIYAML()
			} else {
				output, err = json.MarshalIndent(srv.OpenAPI(), "", "  ")
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error marshaling spec: %v\n", err)
				os.Exit(1)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(string(output), "\n"))
		}),
	}
	specCmd.Flags().BoolP("yaml", "y", false, "Output as YAML instead of JSON")
	cli.Root().AddCommand(specCmd)

	// find subcommand: evaluate a request document without a server
	findCmd := &cobra.Command{
		Use:   "find <file|->",
		Short: "Find the best link station for a request JSON document",
		Args:  cobra.ExactArgs(1),
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, opts *Options) {
			loadConfig(opts)
			out, err := runFind(cmd.InOrStdin(), args[0])
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err != nil {
				_ = enc.Encode(apperr.From(err))
				os.Exit(1)
			}
			_ = enc.Encode(out)
		}),
	}
	cli.Root().AddCommand(findCmd)

	return cli
}

// runFind reads a request document from path, or from stdin when path is
// "-", and evaluates it.
func runFind(stdin io.Reader, path string) (linkstation.Outcome, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return linkstation.Outcome{}, fmt.Errorf("read request: %w", err)
	}
	finder := service.NewFinderService(nil, logger.New("find"), nil)
	return finder.Find(linkstation.Payload(data))
}
