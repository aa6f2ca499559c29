package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/minnanWei/ARIADNE/internal/config"
	"github.com/minnanWei/ARIADNE/internal/dataset"
	"github.com/minnanWei/ARIADNE/internal/executor"
	"github.com/minnanWei/ARIADNE/internal/llmclient"
	"github.com/minnanWei/ARIADNE/internal/mcts"
	"github.com/minnanWei/ARIADNE/internal/result"
	"github.com/minnanWei/ARIADNE/internal/usage"
)

var (
	datasetPath            string
	datasetOutDir          string
	datasetRunName         string
	datasetLimit           int
	datasetIterations      int
	datasetExpansionBudget int
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "run the search over every problem in a JSONL dataset",
	RunE:  runDataset,
}

func init() {
	datasetCmd.Flags().StringVar(&datasetPath, "dataset-path", "apps/apps_selected150.jsonl", "path to the JSONL dataset")
	datasetCmd.Flags().IntVar(&datasetLimit, "num", 10, "maximum number of problems to run")
	datasetCmd.Flags().IntVar(&datasetIterations, "iterations", 10, "MCTS iterations per problem")
	datasetCmd.Flags().IntVar(&datasetExpansionBudget, "expansion-budget", 2, "expansion fan-out per MCTS node")
	datasetCmd.Flags().StringVar(&datasetOutDir, "output-dir", "results", "directory to write run output under")
	datasetCmd.Flags().StringVar(&datasetRunName, "run-name", "", "subdirectory name for this run (default: timestamp)")
}

func runDataset(cmd *cobra.Command, args []string) error {
	searchCfg, err := config.LoadSearchConfig(configPath)
	if err != nil {
		return err
	}
	searchCfg.Iterations = datasetIterations
	searchCfg.ExpansionBudget = datasetExpansionBudget

	problems, err := dataset.LoadProblems(datasetPath, searchCfg.Seed, datasetLimit)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	runName := datasetRunName
	if runName == "" {
		runName = time.Now().Format("20060102_150405")
	}
	runDir := filepath.Join(datasetOutDir, runName)

	llmCfg := config.LoadLLMConfig()
	runner := executor.NewPythonRunner()

	tracker, err := usage.NewTracker(workspace)
	if err != nil {
		return fmt.Errorf("init usage tracker: %w", err)
	}
	llm, err := llmclient.NewGenAIClient(context.Background(), llmCfg, tracker)
	if err != nil {
		return fmt.Errorf("init llm client: %w", err)
	}

	var results []result.Result
	total := len(problems)
	for idx, bb := range problems {
		problemName := bb.ProblemModel.Objective
		fmt.Printf("[%d/%d] start: %s\n", idx+1, total, problemName)

		tracker.Reset()
		coord := newCoordinator(llm, searchCfg.Seed)
		ctrl := mcts.New(coord, runner, searchCfg.Iterations, searchCfg.ExpansionBudget,
			searchCfg.ExplorationC, searchCfg.Tau, searchCfg.Seed,
			searchCfg.QuickscreenTimeout, searchCfg.DeepevalTimeout)

		start := time.Now()
		root := mcts.NewNode("", bb)
		mctsResult := ctrl.Run(context.Background(), root)
		elapsed := time.Since(start).Seconds()

		snapshot := tracker.Snapshot()
		logger.Info("problem finished",
			zap.String("problem", problemName),
			zap.Bool("solved", mctsResult.Solved),
			zap.Int("api_calls", snapshot.Total.Calls),
			zap.Float64("elapsed_seconds", elapsed))
		results = append(results, result.Result{
			Name:      problemName,
			ProblemID: idx + 1,
			IsSolved:  mctsResult.Solved,
			BestCode:  mctsResult.BestCode,
			RunDetails: []result.RunDetail{{
				PromptTokens:     snapshot.Total.InputTokens,
				CompletionTokens: snapshot.Total.OutputTokens,
				TakenTime:        elapsed,
				APICalls:         snapshot.Total.Calls,
				LLMTimeSeconds:   snapshot.ElapsedSecs,
			}},
		})
		fmt.Printf("[%d/%d] done: solved=%v, api_calls=%d, elapsed=%.2fs\n",
			idx+1, total, mctsResult.Solved, snapshot.Total.Calls, elapsed)
	}

	resultsPath := filepath.Join(runDir, "Results.jsonl")
	summaryPath := filepath.Join(runDir, "Summary.txt")
	if err := result.WriteJSONL(resultsPath, results); err != nil {
		return err
	}
	if err := result.WriteSummary(results, summaryPath); err != nil {
		return err
	}
	fmt.Printf("Summary written to: %s\n", summaryPath)
	return nil
}
