package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/minnanWei/ARIADNE/internal/agent"
	"github.com/minnanWei/ARIADNE/internal/config"
	"github.com/minnanWei/ARIADNE/internal/coordinator"
	"github.com/minnanWei/ARIADNE/internal/dataset"
	"github.com/minnanWei/ARIADNE/internal/executor"
	"github.com/minnanWei/ARIADNE/internal/llmclient"
	"github.com/minnanWei/ARIADNE/internal/mcts"
	"github.com/minnanWei/ARIADNE/internal/usage"
)

var problemPath string

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "search for a solution to one ad hoc problem file",
	RunE:  runSolve,
}

func init() {
	solveCmd.Flags().StringVar(&problemPath, "problem", "", "path to a single-problem JSON file (required)")
	solveCmd.MarkFlagRequired("problem")
}

func runSolve(cmd *cobra.Command, args []string) error {
	searchCfg, err := config.LoadSearchConfig(configPath)
	if err != nil {
		return err
	}

	bb, err := dataset.LoadProblemFile(problemPath, searchCfg.Seed)
	if err != nil {
		return fmt.Errorf("load problem: %w", err)
	}

	tracker, err := usage.NewTracker(workspace)
	if err != nil {
		return fmt.Errorf("init usage tracker: %w", err)
	}

	llmCfg := config.LoadLLMConfig()
	llm, err := llmclient.NewGenAIClient(context.Background(), llmCfg, tracker)
	if err != nil {
		return fmt.Errorf("init llm client: %w", err)
	}

	coord := newCoordinator(llm, searchCfg.Seed)
	runner := executor.NewPythonRunner()
	ctrl := mcts.New(coord, runner, searchCfg.Iterations, searchCfg.ExpansionBudget,
		searchCfg.ExplorationC, searchCfg.Tau, searchCfg.Seed,
		searchCfg.QuickscreenTimeout, searchCfg.DeepevalTimeout)

	logger.Info("starting search",
		zap.String("problem", bb.ProblemModel.Objective),
		zap.Int("iterations", searchCfg.Iterations),
		zap.Int("expansion_budget", searchCfg.ExpansionBudget))

	root := mcts.NewNode(bb.GetStarterCode(), bb)
	result := ctrl.Run(context.Background(), root)

	logger.Info("search finished",
		zap.Bool("solved", result.Solved),
		zap.Int("nodes_expanded", result.NodesExpanded),
		zap.Int("iterations_used", len(result.RewardTrajectory)))

	fmt.Printf("solved: %v\n", result.Solved)
	fmt.Printf("nodes expanded: %d\n", result.NodesExpanded)
	fmt.Println("best code:")
	fmt.Println(result.BestCode)
	return nil
}

func newCoordinator(llm llmclient.Client, seed int64) *coordinator.Coordinator {
	return coordinator.New(
		agent.NewScoring(agent.NewBase("scoring", llm)),
		agent.NewTestGen(agent.NewBase("testgen", llm), seed),
		agent.NewCodeGen(agent.NewBase("codegen", llm)),
		agent.NewRepair(agent.NewBase("repair", llm), 2),
		agent.NewStrategy(agent.NewBase("strategy", llm)),
	)
}
