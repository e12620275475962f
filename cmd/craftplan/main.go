package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mattyoungaviation-collab/craftworld-tools-sub000/internal/config"
	"github.com/mattyoungaviation-collab/craftworld-tools-sub000/internal/logging"
	"github.com/mattyoungaviation-collab/craftworld-tools-sub000/internal/runner"
	"github.com/mattyoungaviation-collab/craftworld-tools-sub000/pkg/constants"
	"github.com/mattyoungaviation-collab/craftworld-tools-sub000/pkg/output"
	"github.com/mattyoungaviation-collab/craftworld-tools-sub000/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	if *logLevel != "" {
		if err := validation.ValidateLogLevel(*logLevel); err != nil {
			fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"invalid log level\", \"error\": \"%v\"}\n", err)
			os.Exit(1)
		}
	}

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	planRunner, err := runner.NewRunner(logger, conf)
	if err != nil {
		logger.Fatal("failed to initialize planner",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	report, err := planRunner.Run(context.Background())
	if err != nil {
		logger.Fatal("failed to compute plan",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	for _, warning := range report.Warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(os.Stdout, report)
	case constants.OutputFormatCSV:
		err = output.CsvFormat(os.Stdout, report)
	case constants.OutputFormatJSON:
		err = output.JSONFormat(os.Stdout, report)
	}
	if err != nil {
		logger.Fatal("failed to write output",
			zap.String("op", "main"),
			zap.String("format", outputFormat),
			zap.Error(err),
		)
	}
}
