// Command movie-cleaner cleans a movie-metadata CSV dataset.
//
// Usage:
//
//	movie-cleaner <input.csv> <output.csv>
//
// Rows are corrected against fixed title tables, validated, and the kept
// rows are written to the output path together with the header. When
// PUBLISH_TARGET is set the cleaned rows are also mirrored to a database.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/David-Botos/movie-ingress/pkg/cleaner"
	"github.com/David-Botos/movie-ingress/pkg/config"
	"github.com/David-Botos/movie-ingress/pkg/connector"
	"github.com/David-Botos/movie-ingress/pkg/transfer"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(stderr, "usage: movie-cleaner <input.csv> <output.csv>")
		return 2
	}
	inputPath, outputPath := args[0], args[1]

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "movie-cleaner: %v\n", err)
		return 1
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintf(stderr, "movie-cleaner: %v\n", err)
		return 1
	}
	defer logger.Sync()
	undo := zap.ReplaceGlobals(logger)
	defer undo()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	publisher, err := connector.NewConnectorFactory(cfg, logger).CreatePublisher(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if publisher != nil {
		defer publisher.Close()
	}

	rowCleaner, err := cleaner.NewRowCleaner(logger.Named("cleaner"))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	manager, err := transfer.NewManager(rowCleaner, publisher, logger.Named("transfer"))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	result, err := manager.CleanFile(ctx, inputPath, outputPath)
	logMetrics(logger, manager.Metrics())
	if err != nil {
		var runErr *transfer.RunError
		if errors.As(err, &runErr) && runErr.Category == transfer.ErrorCategorySourceNotFound {
			fmt.Fprintf(stderr, "Error: CSV file not found: %s\n", inputPath)
			return 1
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	printSummary(stdout, result.Summarize())
	return 0
}

// logMetrics closes the metrics window and logs it at debug level
func logMetrics(logger *zap.Logger, metrics *transfer.RunMetrics) {
	metrics.Complete()
	raw, err := metrics.ToJSON()
	if err != nil {
		logger.Warn("Failed to serialize run metrics", zap.Error(err))
		return
	}
	logger.Debug("Run metrics", zap.ByteString("metrics", raw))
}

func printSummary(w io.Writer, s transfer.Summary) {
	fmt.Fprintln(w, "Cleaning complete!")
	fmt.Fprintf(w, "Original rows: %d\n", s.OriginalRows)
	fmt.Fprintf(w, "Cleaned rows: %d\n", s.CleanedRows)
	fmt.Fprintf(w, "Saved to: %s\n", s.OutputPath)
}
