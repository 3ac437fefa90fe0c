// Package container provides dependency injection for the budget-recon application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"budget-recon/internal/batch"
	"budget-recon/internal/config"
	"budget-recon/internal/logging"
	"budget-recon/internal/reconciler"
	"budget-recon/internal/report"
	"budget-recon/internal/tabular"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	reader     *tabular.Reader
	aggregator *batch.BatchAggregator
	engine     *reconciler.Engine
	writer     *report.Writer
}

// NewContainer creates and wires all application dependencies, logging
// through a logger built from cfg.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, config.ConfigureLogging(cfg, nil))
}

// NewContainerWithLogger is NewContainer with an explicit logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	reader, err := tabular.NewReader(tabular.Options{
		Delimiter: cfg.InputDelimiterRune(),
		Encodings: cfg.CSV.Encodings,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader: %w", err)
	}

	logger.Debug("Container initialized",
		logging.F("encodings", cfg.CSV.Encodings),
		logging.F(logging.FieldDelimiter, cfg.CSV.Delimiter))

	return &Container{
		logger:     logger,
		config:     cfg,
		reader:     reader,
		aggregator: batch.NewBatchAggregator(logger),
		engine:     reconciler.NewEngine(logger),
		writer:     report.NewWriter(cfg.DelimiterRune(), logger),
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetReader returns the input reader.
func (c *Container) GetReader() *tabular.Reader {
	return c.reader
}

// GetAggregator returns the purchasing/ledger aggregator and tracking indexer.
func (c *Container) GetAggregator() *batch.BatchAggregator {
	return c.aggregator
}

// GetEngine returns the reconciliation engine.
func (c *Container) GetEngine() *reconciler.Engine {
	return c.engine
}

// GetWriter returns the report writer.
func (c *Container) GetWriter() *report.Writer {
	return c.writer
}
