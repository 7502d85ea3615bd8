package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/roach88/tsbind/internal/config"
	"github.com/roach88/tsbind/internal/translate"
)

// Run translates the scenario's source and evaluates its assertions.
//
// A translation failure is not returned as an error: it is recorded in
// Result.Err so that error assertions can match it. The returned error
// covers problems with the scenario itself (unreadable source, bad config).
func Run(ctx context.Context, s *Scenario) (*Result, error) {
	src, err := scenarioSource(s)
	if err != nil {
		return nil, err
	}
	cfg, err := scenarioConfig(s)
	if err != nil {
		return nil, err
	}

	result := NewResult()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	res, err := translate.Source(ctx, s.Name+".d.ts", src, translate.Options{
		Config: cfg,
		Logger: logger,
	})
	if err != nil {
		result.Err = err.Error()
	} else {
		result.Lines = res.Lines
		result.Diagnostics = len(res.Diagnostics)
	}

	for _, e := range EvaluateAssertions(result, s.Assertions) {
		result.AddError(e)
	}
	return result, nil
}

func scenarioSource(s *Scenario) ([]byte, error) {
	if s.SourceFile == "" {
		return []byte(s.Source), nil
	}
	src, err := os.ReadFile(s.SourceFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read source file: %w", err)
	}
	return src, nil
}

func scenarioConfig(s *Scenario) (config.Config, error) {
	c := s.Config
	if s.Namespace != "" {
		c.Namespace = s.Namespace
	}
	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}
	cfg, err := config.Resolve(c)
	if err != nil {
		return config.Config{}, fmt.Errorf("invalid scenario config: %w", err)
	}
	return cfg, nil
}
