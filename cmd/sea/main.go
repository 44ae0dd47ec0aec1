package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"go.temporal.io/sdk/client"

	"github.com/leowmjw/go-sea-norm/pkg/hcl"
	"github.com/leowmjw/go-sea-norm/pkg/temporal"
)

func main() {
	// Set up logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Define command line flags
	var (
		path        string
		address     string
		namespace   string
		taskQueue   string
		displayJSON bool
		mode        string // "analyze" or "profile"
	)

	flag.StringVar(&path, "path", "", "Path to HCL request file or directory (required)")
	flag.StringVar(&address, "address", "localhost:7233", "Address of Temporal server")
	flag.StringVar(&namespace, "namespace", "default", "Temporal namespace")
	flag.StringVar(&taskQueue, "task-queue", temporal.TaskQueue, "Temporal task queue")
	flag.BoolVar(&displayJSON, "json", false, "Display results as JSON")
	flag.StringVar(&mode, "mode", "analyze", "Operation mode: 'analyze' or 'profile'")
	flag.Parse()

	// Validate required parameters
	if path == "" {
		logger.Error("Path parameter is required")
		flag.Usage()
		os.Exit(1)
	}

	if mode != "analyze" && mode != "profile" {
		logger.Error("Mode must be either 'analyze' or 'profile'")
		os.Exit(1)
	}

	// Create Temporal client
	c, err := client.Dial(client.Options{
		HostPort:  address,
		Namespace: namespace,
	})
	if err != nil {
		logger.Error("Unable to create Temporal client", "error", err)
		os.Exit(1)
	}
	defer c.Close()

	// Determine if path is a file or directory
	fileInfo, err := os.Stat(path)
	if err != nil {
		logger.Error("Failed to access path", "error", err)
		os.Exit(1)
	}

	var hclFiles []string
	if fileInfo.IsDir() {
		logger.Info("Processing directory", "path", path)
		hclFiles, err = findHCLFiles(path)
		if err != nil {
			logger.Error("Failed to read directory", "error", err)
			os.Exit(1)
		}
		if len(hclFiles) == 0 {
			logger.Error("No HCL files found in directory")
			os.Exit(1)
		}
	} else {
		if !hcl.IsHCLBasedOnExtension(path) {
			logger.Error("File does not have .hcl extension", "path", path)
			os.Exit(1)
		}
		hclFiles = []string{path}
	}

	logger.Info("Found HCL files", "count", len(hclFiles))

	ctx := context.Background()

	// Process each HCL file
	for _, file := range hclFiles {
		logger.Info("Processing file", "file", file)

		content, err := os.ReadFile(file)
		if err != nil {
			logger.Error("Failed to read file", "file", file, "error", err)
			continue
		}

		if mode == "analyze" {
			err = processAnalysis(ctx, c, taskQueue, string(content), displayJSON, logger)
		} else {
			err = processProfile(ctx, c, taskQueue, string(content), displayJSON, logger)
		}

		if err != nil {
			logger.Error("Failed to process file", "file", file, "error", err)
		}
	}
}

// findHCLFiles finds all HCL files in a directory
func findHCLFiles(dirPath string) ([]string, error) {
	var files []string

	err := filepath.Walk(dirPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && hcl.IsHCLBasedOnExtension(info.Name()) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

// processAnalysis parses and executes one analysis request
func processAnalysis(ctx context.Context, c client.Client, taskQueue, content string, jsonOutput bool, logger *slog.Logger) error {
	request, err := hcl.ParseAnalysisRequest(content)
	if err != nil {
		return fmt.Errorf("failed to parse HCL analysis request: %w", err)
	}

	workflowID := temporal.GenerateAnalysisWorkflowID(request.DatasetID)

	logger.Info("Executing analysis",
		"dataset_id", request.DatasetID,
		"events", len(request.Events))

	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: taskQueue,
	}

	run, err := c.ExecuteWorkflow(ctx, options, temporal.AnalysisWorkflow, *request)
	if err != nil {
		return fmt.Errorf("failed to execute analysis workflow: %w", err)
	}

	var result temporal.AnalysisResult
	if err := run.Get(ctx, &result); err != nil {
		return fmt.Errorf("failed to get analysis result: %w", err)
	}

	displayAnalysisResult(result, jsonOutput, logger)

	return nil
}

// processProfile parses and executes one profile request
func processProfile(ctx context.Context, c client.Client, taskQueue, content string, jsonOutput bool, logger *slog.Logger) error {
	request, err := hcl.ParseProfileRequest(content)
	if err != nil {
		return fmt.Errorf("failed to parse HCL profile request: %w", err)
	}

	workflowID := temporal.GenerateProfileWorkflowID(request.DatasetID)

	logger.Info("Profiling dataset", "dataset_id", request.DatasetID)

	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: taskQueue,
	}

	run, err := c.ExecuteWorkflow(ctx, options, temporal.ProfileWorkflow, *request)
	if err != nil {
		return fmt.Errorf("failed to execute profile workflow: %w", err)
	}

	var profiles []json.RawMessage
	if err := run.Get(ctx, &profiles); err != nil {
		return fmt.Errorf("failed to get profile result: %w", err)
	}

	out, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render profiles: %w", err)
	}
	fmt.Println(string(out))

	return nil
}

// displayAnalysisResult shows the binned table in human-readable or JSON form
func displayAnalysisResult(result temporal.AnalysisResult, jsonOutput bool, logger *slog.Logger) {
	if jsonOutput {
		resultJSON, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			logger.Error("Failed to marshal result to JSON", "error", err)
			fmt.Printf("%+v\n", result)
		} else {
			fmt.Println(string(resultJSON))
		}
		return
	}

	// Output in human-readable format: one row per bin
	fmt.Println("Analysis Result:")
	fmt.Printf("  Columns: %v\n", result.Meta.Cols)
	fmt.Printf("%12s", "t")
	for _, name := range result.Table.Names {
		fmt.Printf("  %12s", name)
	}
	fmt.Println()
	for i, t := range result.Table.Index {
		fmt.Printf("%12.4g", t)
		for _, name := range result.Table.Names {
			fmt.Printf("  %12.4g", result.Table.Columns[name][i])
		}
		fmt.Println()
	}
}
