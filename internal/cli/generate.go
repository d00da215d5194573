package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/adyam-logistics/trackseed/internal/config"
	"github.com/adyam-logistics/trackseed/internal/logging"
	"github.com/adyam-logistics/trackseed/internal/metrics"
	"github.com/adyam-logistics/trackseed/internal/services"
	"github.com/adyam-logistics/trackseed/internal/source"
	"github.com/adyam-logistics/trackseed/internal/writer"
	"github.com/adyam-logistics/trackseed/pkg/trackseed"
)

// Environment variables consulted between flags and trackseed.yaml.
const (
	EnvInput       = "TRACKSEED_INPUT"
	EnvOutput      = "TRACKSEED_OUTPUT"
	EnvMetricsFile = "TRACKSEED_METRICS_FILE"
	EnvS3Region    = "TRACKSEED_S3_REGION"
	EnvS3Endpoint  = "TRACKSEED_S3_ENDPOINT"
	EnvS3PathStyle = "TRACKSEED_S3_PATH_STYLE"

	// Credentials are read from the environment only, never from trackseed.yaml.
	EnvS3AccessKeyID     = "TRACKSEED_S3_ACCESS_KEY_ID"
	EnvS3SecretAccessKey = "TRACKSEED_S3_SECRET_ACCESS_KEY"
)

type generateFlagValues struct {
	input, output, configPath, metricsFile string
	strictNumbers, noLastLocation          bool
}

var generateFlags generateFlagValues

// executableDir anchors the default input and output paths.
var executableDir = func() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

func init() {
	rootCmd.Flags().StringVarP(&generateFlags.input, "input", "i", "",
		"Dataset to read: .xlsx/.csv path or s3://bucket/key\n"+
			"Precedence: --input > $"+EnvInput+" > trackseed.yaml > <exe-dir>/"+trackseed.DefaultInputRelPath)
	rootCmd.Flags().StringVarP(&generateFlags.output, "output", "o", "",
		"Migration file to write (parent directories are created)\n"+
			"Precedence: --output > $"+EnvOutput+" > trackseed.yaml > <exe-dir>/"+trackseed.DefaultOutputRelPath)
	rootCmd.Flags().StringVar(&generateFlags.configPath, "config", "",
		"Path to a project config file (default: ./"+config.ConfigFileName+" when present)")
	rootCmd.Flags().StringVar(&generateFlags.metricsFile, "metrics-file", "",
		"Write run counters in Prometheus text format to this file")
	rootCmd.Flags().BoolVar(&generateFlags.strictNumbers, "strict-numbers", false,
		"Fail on WEIGHT cells that are not numbers instead of writing NULL")
	rootCmd.Flags().BoolVar(&generateFlags.noLastLocation, "no-last-location", false,
		"Leave last_location untouched when an existing AWB is updated")
}

// loadProjectConfig reads an explicit config file, or trackseed.yaml from the
// working directory when one exists.
func loadProjectConfig(path string) (*config.ProjectConfig, error) {
	if path != "" {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", trackseed.ErrInvalidConfig, path, err)
		}
		return cfg, nil
	}

	cfg, err := config.Load(".")
	if errors.Is(err, config.ErrConfigNotFound) {
		return &config.ProjectConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", trackseed.ErrInvalidConfig, err)
	}
	return cfg, nil
}

// buildGenerateConfig resolves every setting from flags, environment,
// project file and defaults, in that order.
func buildGenerateConfig(flags generateFlagValues) (trackseed.GenerateConfig, error) {
	_ = godotenv.Load()

	projectCfg, err := loadProjectConfig(flags.configPath)
	if err != nil {
		return trackseed.GenerateConfig{}, err
	}

	exeDir, err := executableDir()
	if err != nil {
		exeDir = "."
	}

	cfg := trackseed.GenerateConfig{
		InputPath: firstNonEmpty(
			flags.input,
			os.Getenv(EnvInput),
			projectCfg.ResolvePath(projectCfg.Input),
			filepath.Join(exeDir, trackseed.DefaultInputRelPath),
		),
		OutputPath: firstNonEmpty(
			flags.output,
			os.Getenv(EnvOutput),
			projectCfg.ResolvePath(projectCfg.Output),
			filepath.Join(exeDir, trackseed.DefaultOutputRelPath),
		),
		MetricsFile: firstNonEmpty(
			flags.metricsFile,
			os.Getenv(EnvMetricsFile),
			projectCfg.ResolvePath(projectCfg.MetricsFile),
		),
		RefreshLastLocation: true,
	}

	if flags.strictNumbers {
		cfg.NumericPolicy = trackseed.NumericStrict
	} else {
		cfg.NumericPolicy, err = trackseed.ParseNumericPolicy(projectCfg.NumericPolicy)
		if err != nil {
			return trackseed.GenerateConfig{}, err
		}
	}

	if projectCfg.Upsert.RefreshLastLocation != nil {
		cfg.RefreshLastLocation = *projectCfg.Upsert.RefreshLastLocation
	}
	if flags.noLastLocation {
		cfg.RefreshLastLocation = false
	}

	cfg.S3 = trackseed.S3Options{
		Region:   firstNonEmpty(os.Getenv(EnvS3Region), projectCfg.S3.Region),
		Endpoint: firstNonEmpty(os.Getenv(EnvS3Endpoint), projectCfg.S3.Endpoint),

		AccessKeyID:     os.Getenv(EnvS3AccessKeyID),
		SecretAccessKey: os.Getenv(EnvS3SecretAccessKey),
	}
	if projectCfg.S3.PathStyle != nil {
		cfg.S3.PathStyle = *projectCfg.S3.PathStyle
	}
	if raw := os.Getenv(EnvS3PathStyle); raw != "" {
		pathStyle, err := strconv.ParseBool(raw)
		if err != nil {
			return trackseed.GenerateConfig{}, fmt.Errorf("%w: %s=%q is not a boolean", trackseed.ErrInvalidConfig, EnvS3PathStyle, raw)
		}
		cfg.S3.PathStyle = pathStyle
	}

	return cfg, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	cfg, err := buildGenerateConfig(generateFlags)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(verbose)
	if verbose {
		logger.Verbose("Input: %s", cfg.InputPath)
		logger.Verbose("Output: %s", cfg.OutputPath)
		logger.Verbose("Numeric policy: %s, refresh last_location: %t", cfg.NumericPolicy, cfg.RefreshLastLocation)
	}

	var generator trackseed.Generator = services.NewGeneratorService(
		source.NewLoader(logger, source.WithS3Options(cfg.S3)),
		writer.WriteContent,
		metrics.NewRecorder(),
		logger,
	)

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := generator.Generate(ctx, cfg); err != nil {
		if errors.Is(err, trackseed.ErrSourceRead) {
			logger.Info("Error reading file: %v", err)
		}
		return err
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
