// Package main provides the clipwrite CLI entry point.
// clipwrite places text on the system clipboard through a prioritized
// chain of host strategies, falling back until one succeeds.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"clipwrite/internal/coordinator"
	"clipwrite/internal/logger"
	"clipwrite/pkg/cliptypes"
)

var (
	logLevel     string
	logFile      string
	testMode     bool
	timeoutMS    int
	identifier   string
	outputFormat string
	bridgeSocket string
	demoteBridge bool
	version      = "0.1.0" // This could be set at build time
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "clipwrite [text...]",
	Short: "clipwrite - resilient clipboard writer",
	Long: `clipwrite places text on the system clipboard across heterogeneous hosts.
It tries the native clipboard, a privileged bridge daemon, portable libraries,
external copy tools and terminal escape sequences in order, stopping at the
first one that works. Text is taken from the arguments, or from stdin when
no arguments are given.`,
	Run: runWrite,
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Display the version of clipwrite.`,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("clipwrite v%s\n", version)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to file instead of stderr")
	rootCmd.PersistentFlags().BoolVar(&testMode, "test-mode", false, "Run in deterministic test mode")
	rootCmd.Flags().IntVar(&timeoutMS, "timeout", 5000, "Per-method timeout in milliseconds")
	rootCmd.Flags().StringVar(&identifier, "identifier", "", "Correlation token echoed in the result [default: new uuid]")
	rootCmd.Flags().StringVar(&outputFormat, "output", "text", "Result output format (text|json|yaml)")
	rootCmd.Flags().StringVar(&bridgeSocket, "bridge-socket", "", "Clipboard bridge daemon socket path")
	rootCmd.Flags().BoolVar(&demoteBridge, "demote-bridge", false, "Try the bridge daemon last even when detected")

	for _, flag := range []string{"log-level", "log-file", "test-mode"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", flag, err)
			os.Exit(1)
		}
	}
	for _, flag := range []string{"timeout", "identifier", "output", "bridge-socket", "demote-bridge"} {
		if err := viper.BindPFlag(flag, rootCmd.Flags().Lookup(flag)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", flag, err)
			os.Exit(1)
		}
	}

	rootCmd.AddCommand(versionCmd)

	// Configure logger before any command execution
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// Local .env is the lowest-priority configuration layer; absence is fine.
	_ = godotenv.Load()

	viper.SetEnvPrefix("CLIPWRITE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := logger.Configure(viper.GetString("log-level"), viper.GetString("log-file"), viper.GetBool("test-mode")); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}
}

func runWrite(cmd *cobra.Command, args []string) {
	text, err := readText(args, cmd.InOrStdin())
	if err != nil {
		logger.Fatal("Failed to read input", "error", err)
	}

	opts := buildOptions()
	logger.Debug("Starting clipboard write", "identifier", opts.Identifier, "chars", len(text))

	// Interrupts cancel the in-flight write cooperatively.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result := coordinator.Write(ctx, text, opts)

	if err := printResult(cmd.OutOrStdout(), result, viper.GetString("output")); err != nil {
		logger.Fatal("Failed to render result", "error", err)
	}

	if !result.Success {
		// Result already carries the reason; exit status is the only
		// extra signal.
		os.Exit(1)
	}
}

// readText takes the write payload from argv, or from stdin when no
// arguments are given.
func readText(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// buildOptions assembles write options from viper-resolved configuration.
func buildOptions() cliptypes.Options {
	id := viper.GetString("identifier")
	if id == "" {
		id = uuid.NewString()
	}

	return cliptypes.Options{
		Identifier:   id,
		Timeout:      time.Duration(viper.GetInt("timeout")) * time.Millisecond,
		Logger:       logger.Sink(),
		DemoteBridge: viper.GetBool("demote-bridge"),
		BridgeSocket: viper.GetString("bridge-socket"),
	}
}

// printResult renders the final result in the requested format.
func printResult(w io.Writer, result cliptypes.Result, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	case "yaml":
		data, err := yaml.Marshal(result)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "text", "":
		if result.Success {
			_, err := fmt.Fprintf(w, "%s (method: %s)\n", result.Message, result.Method)
			return err
		}
		_, err := fmt.Fprintf(w, "error: %s\n", result.Error)
		return err
	default:
		return fmt.Errorf("unknown output format %q (expected text, json or yaml)", format)
	}
}
