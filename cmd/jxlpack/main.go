// Package main provides the CLI entry point for jxlpack.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"

	"github.com/user/jxlpack/pkg/adapters/imagedecoder"
	"github.com/user/jxlpack/pkg/adapters/jxlengine"
	"github.com/user/jxlpack/pkg/adapters/jxlverifier"
	"github.com/user/jxlpack/pkg/adapters/logger"
	"github.com/user/jxlpack/pkg/adapters/osfilesystem"
	"github.com/user/jxlpack/pkg/config"
	"github.com/user/jxlpack/pkg/orchestrator"
	"github.com/user/jxlpack/pkg/parallel"
	"github.com/user/jxlpack/pkg/ports"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Encode  EncodeCmd  `cmd:"" default:"withargs" help:"Encode images to JPEG XL."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// EncodeCmd defines the encode subcommand.
type EncodeCmd struct {
	// Required arguments
	Inputs []string `arg:"" help:"Input image files (JPEG, PNG, GIF, WebP, TIFF, BMP)."`

	// Output
	Output string `short:"o" help:"Output file path (single input only; default: input with .jxl extension)."`
	OutDir string `help:"Directory for output files (default: alongside inputs)."`

	// Config file
	Config string `short:"c" help:"Path to YAML configuration file."`

	// Quality options
	Distance *float64 `short:"d" help:"Quality distance (0 = lossless, 1.0 = visually lossless, larger is lossier)."`
	Effort   *string  `short:"e" help:"Encode effort, 1-11 or preset name (lightning..tectonic_plate)."`

	// Encoding modes
	Progressive   *int `short:"p" help:"Progressive intensity (0-4)."`
	Modular       bool `short:"m" help:"Force modular mode."`
	FromPixels    bool `help:"Re-encode JPEG inputs from pixels instead of transcoding."`
	DecodingSpeed *int `help:"Decode speed tier (0-4, higher decodes faster)."`

	// Verification
	Verify bool `help:"Verify output by round-trip decoding."`

	// Runtime
	Workers *int `help:"Worker threads for the engine (default: all CPUs)."`

	// Logging options
	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("jxlpack"),
		kong.Description("Convert images to JPEG XL, transcoding JPEGs losslessly where possible."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// Run executes the encode command.
func (cmd *EncodeCmd) Run() error {
	cfg, err := cmd.buildConfig()
	if err != nil {
		return err
	}

	// Create logger
	var log ports.Logger
	if cmd.Quiet {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(cmd.LogLevel))
	}

	if cmd.Output != "" && len(cmd.Inputs) > 1 {
		return fmt.Errorf("--output is only valid with a single input; use --outdir for multiple inputs")
	}

	orchConfig, err := cfg.ToOrchestratorConfig()
	if err != nil {
		return err
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	// Create adapters; the worker pool is shared across all inputs.
	fs := osfilesystem.New()
	pool := parallel.New(cfg.Workers)
	decoder := imagedecoder.New()
	verifier := jxlverifier.New()

	orch := orchestrator.New(
		jxlengine.New,
		pool,
		decoder,
		verifier,
		log,
	)

	if cmd.OutDir != "" {
		if err := fs.MkdirAll(cmd.OutDir); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	for _, input := range cmd.Inputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		outputPath := cmd.outputPathFor(input)

		log.Info(l10n.F("Encoding %s...", input))
		data, err := fs.ReadFile(input)
		if err != nil {
			return fmt.Errorf("read %s: %w", input, err)
		}

		result, err := orch.Encode(ctx, data, orchConfig)
		if err != nil {
			return fmt.Errorf("encode %s: %w", input, err)
		}
		if result.IsTranscoded {
			log.Debug(l10n.T("JPEG transcoded losslessly"))
		}
		log.Info(l10n.F("Encoded %d bytes (%.1f%% of input)",
			result.OutputBytes, 100*float64(result.OutputBytes)/float64(result.InputBytes)))

		if err := fs.WriteFile(outputPath, result.Data); err != nil {
			return fmt.Errorf("write %s: %w", outputPath, err)
		}
		log.Info(l10n.F("Output saved to %s", outputPath))
	}

	return nil
}

// buildConfig layers CLI overrides over the config file (or defaults).
func (cmd *EncodeCmd) buildConfig() (config.Config, error) {
	cfg := config.Defaults()
	if cmd.Config != "" {
		loaded, err := config.LoadFromFile(cmd.Config)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Distance != nil {
		cfg.Distance = cmd.Distance
	}
	if cmd.Effort != nil {
		cfg.Effort = *cmd.Effort
	}
	if cmd.Progressive != nil {
		cfg.Progressive = *cmd.Progressive
	}
	if cmd.Modular {
		cfg.Modular = true
	}
	if cmd.FromPixels {
		cfg.FromPixels = true
	}
	if cmd.DecodingSpeed != nil {
		cfg.DecodingSpeed = *cmd.DecodingSpeed
	}
	if cmd.Verify {
		cfg.Verify = true
	}
	if cmd.Workers != nil {
		cfg.Workers = *cmd.Workers
	}

	return cfg, nil
}

// outputPathFor derives the output path for one input file.
func (cmd *EncodeCmd) outputPathFor(input string) string {
	if cmd.Output != "" {
		return cmd.Output
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ".jxl"
	if cmd.OutDir != "" {
		return filepath.Join(cmd.OutDir, base)
	}
	return filepath.Join(filepath.Dir(input), base)
}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("jxlpack version %s", version))
	return nil
}
