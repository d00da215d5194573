package services

import (
	"context"
	"fmt"

	"github.com/adyam-logistics/trackseed/internal/checksum"
	"github.com/adyam-logistics/trackseed/internal/emitter"
	"github.com/adyam-logistics/trackseed/internal/writer"
	"github.com/adyam-logistics/trackseed/pkg/trackseed"
)

// GeneratorService implements the trackseed.Generator interface.
// Thread-Safety: NOT safe for concurrent Generate() calls on the same instance
// when they share an output path.
type GeneratorService struct {
	loader   trackseed.RowLoader
	write    trackseed.ContentWriter
	recorder trackseed.RunRecorder
	logger   trackseed.Logger
}

var _ trackseed.Generator = (*GeneratorService)(nil)

// NewGeneratorService creates a new GeneratorService with all dependencies injected.
// Panics on nil dependencies.
func NewGeneratorService(
	loader trackseed.RowLoader,
	write trackseed.ContentWriter,
	recorder trackseed.RunRecorder,
	logger trackseed.Logger,
) *GeneratorService {
	if loader == nil {
		panic("loader cannot be nil")
	}
	if write == nil {
		panic("write cannot be nil")
	}
	if recorder == nil {
		panic("recorder cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &GeneratorService{
		loader:   loader,
		write:    write,
		recorder: recorder,
		logger:   logger,
	}
}

// Generate reads the dataset, builds one statement per row that has a
// tracking number and writes the migration in a single write.
func (s *GeneratorService) Generate(ctx context.Context, config trackseed.GenerateConfig) (trackseed.Result, error) {
	if err := config.Validate(); err != nil {
		return trackseed.Result{}, err
	}
	policy, _ := trackseed.ParseNumericPolicy(string(config.NumericPolicy))

	s.logger.Info("Reading %s...", config.InputPath)
	rows, err := s.loader.Load(ctx, config.InputPath)
	if err != nil {
		return trackseed.Result{}, err
	}

	em := emitter.New(emitter.Options{
		NumericPolicy:       policy,
		RefreshLastLocation: config.RefreshLastLocation,
	})

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, trackseed.HeaderComment)
	skipped := 0
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return trackseed.Result{}, err
		}
		stmt, ok, err := em.Emit(row)
		if err != nil {
			return trackseed.Result{}, fmt.Errorf("data row %d: %w", i+1, err)
		}
		if !ok {
			skipped++
			s.logger.Verbose("Skipping data row %d: no tracking number", i+1)
			continue
		}
		lines = append(lines, stmt.SQL)
	}

	content := writer.Render(lines)
	if err := s.write(config.OutputPath, content); err != nil {
		return trackseed.Result{}, err
	}

	result := trackseed.Result{
		OutputPath:   config.OutputPath,
		LinesWritten: len(lines),
		RowsRead:     len(rows),
		RowsSkipped:  skipped,
		Checksum:     checksum.Content(content),
		MigrationID:  checksum.MigrationID(config.OutputPath).String(),
	}

	s.logger.Info("Generated %d statements at %s", result.LinesWritten, result.OutputPath)
	s.logger.Verbose("Rows read: %d, skipped: %d", result.RowsRead, result.RowsSkipped)
	s.logger.Verbose("Migration %s sha256:%s", result.MigrationID, result.Checksum)

	if config.MetricsFile != "" {
		s.recorder.ObserveRun(result)
		if err := s.recorder.WriteTextfile(config.MetricsFile); err != nil {
			s.logger.Error("Failed to write metrics to %s: %v", config.MetricsFile, err)
		} else {
			s.logger.Verbose("Metrics written to %s", config.MetricsFile)
		}
	}

	return result, nil
}
