package mcts

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/minnanWei/ARIADNE/internal/action"
	"github.com/minnanWei/ARIADNE/internal/coordinator"
	"github.com/minnanWei/ARIADNE/internal/eval"
	"github.com/minnanWei/ARIADNE/internal/executor"
)

// Result is the outcome of a full search run.
type Result struct {
	BestCode         string
	RewardTrajectory []float64
	NodesExpanded    int
	Solved           bool
}

// outcome is the result of one simulate-and-evaluate pass over a node.
type outcome struct {
	solved bool
	reward float64
	code   string
}

// Controller runs MCTS: select a leaf by UCB1+softmax, evaluate it through
// the two-tier pipeline, expand it via the Coordinator, and backpropagate
// the reward.
type Controller struct {
	Iterations         int
	ExpansionBudget    int
	C                  float64
	Tau                float64
	Epsilon            float64
	QuickscreenTimeout time.Duration
	DeepevalTimeout    time.Duration

	Coordinator *coordinator.Coordinator
	Runner      executor.Runner
	rng         *rand.Rand
}

// New constructs a Controller, filling in defaults where the caller passes
// zero values: iterations 20, expansion budget 2, c 1.4, tau 1.0, epsilon
// 1e-6.
func New(coord *coordinator.Coordinator, runner executor.Runner, iterations, expansionBudget int, c, tau float64, seed int64, quickscreenTimeout, deepevalTimeout time.Duration) *Controller {
	if iterations <= 0 {
		iterations = 20
	}
	if expansionBudget <= 0 {
		expansionBudget = 2
	}
	if c == 0 {
		c = 1.4
	}
	if tau == 0 {
		tau = 1.0
	}
	return &Controller{
		Iterations:         iterations,
		ExpansionBudget:    expansionBudget,
		C:                  c,
		Tau:                tau,
		Epsilon:            1e-6,
		QuickscreenTimeout: quickscreenTimeout,
		DeepevalTimeout:    deepevalTimeout,
		Coordinator:        coord,
		Runner:             runner,
		rng:                rand.New(rand.NewSource(seed)),
	}
}

// Run executes up to Iterations rounds of select/simulate/expand/backpropagate
// starting from root, returning as soon as a solved node is found.
func (c *Controller) Run(ctx context.Context, root *Node) Result {
	var trajectory []float64
	nodesExpanded := 0
	bestCode := root.Code
	bestReward := math.Inf(-1)

	for i := 0; i < c.Iterations; i++ {
		node := c.selectLeaf(root)
		out := c.simulateAndEvaluate(ctx, node)
		if out.solved {
			return Result{
				BestCode:         out.code,
				RewardTrajectory: trajectory,
				NodesExpanded:    nodesExpanded,
				Solved:           true,
			}
		}

		trajectory = append(trajectory, out.reward)
		if out.reward > bestReward {
			bestReward = out.reward
			bestCode = node.Code
		}

		nodesExpanded += c.expand(ctx, node)
		c.backpropagate(node, out.reward)
	}

	return Result{
		BestCode:         bestCode,
		RewardTrajectory: trajectory,
		NodesExpanded:    nodesExpanded,
		Solved:           false,
	}
}

func (c *Controller) selectLeaf(node *Node) *Node {
	current := node
	for len(current.Children) > 0 {
		current = c.selectChild(current)
	}
	return current
}

func (c *Controller) selectChild(node *Node) *Node {
	scores := make([]float64, len(node.Children))
	for i, child := range node.Children {
		scores[i] = c.ucb(child, node.N)
	}
	return c.softmaxSample(node.Children, scores)
}

func (c *Controller) ucb(child *Node, parentVisits int) float64 {
	return child.Xbar + c.C*math.Sqrt(math.Log(float64(parentVisits)+c.Epsilon)/(float64(child.N)+c.Epsilon))
}

func (c *Controller) softmaxSample(children []*Node, scores []float64) *Node {
	scaled := make([]float64, len(scores))
	maxScore := math.Inf(-1)
	for i, s := range scores {
		scaled[i] = s / c.Tau
		if scaled[i] > maxScore {
			maxScore = scaled[i]
		}
	}
	expScores := make([]float64, len(scaled))
	var total float64
	for i, s := range scaled {
		expScores[i] = math.Exp(s - maxScore)
		total += expScores[i]
	}
	r := c.rng.Float64()
	var cumulative float64
	for i, child := range children {
		cumulative += expScores[i] / total
		if r <= cumulative {
			return child
		}
	}
	return children[len(children)-1]
}

func (c *Controller) simulateAndEvaluate(ctx context.Context, node *Node) outcome {
	quick := eval.RunQuickscreen(ctx, c.Runner, node.Code, node.Blackboard, c.QuickscreenTimeout)
	if !quick.Passed {
		if quick.Diagnostic != nil {
			c.Coordinator.HandleDiagnostic(ctx, *quick.Diagnostic, node.Blackboard)
		}
		reward := eval.ComputeReward(quick.PassedCount, maxInt(1, quick.Total), quick.Timeouts, quick.AvgRuntime, quick.AvgRuntime > 0, node.Code)
		reward = math.Min(reward, 0.6)
		return outcome{solved: false, reward: reward, code: node.Code}
	}

	deep := eval.RunDeepEval(ctx, c.Runner, node.Code, node.Blackboard, c.DeepevalTimeout)
	if deep.Passed {
		return outcome{solved: true, reward: 1.0, code: node.Code}
	}

	for _, diag := range deep.Diagnostics {
		c.Coordinator.HandleDiagnostic(ctx, diag, node.Blackboard)
	}
	reward := eval.ComputeReward(deep.PassedCount, maxInt(1, deep.Total), deep.Timeouts, deep.AvgRuntime, deep.AvgRuntime > 0, node.Code)
	return outcome{solved: false, reward: reward, code: node.Code}
}

func (c *Controller) expand(ctx context.Context, node *Node) int {
	actions := c.Coordinator.EnumerateActions(ctx, node.Code, node.Blackboard)
	actions = c.selectSubset(actions, c.ExpansionBudget)
	for _, a := range actions {
		newBlackboard := node.Blackboard.Clone()
		newCode := a.Apply(node.Code, newBlackboard)
		child := NewNode(newCode, newBlackboard)
		child.ActionTaken = a.Name()
		node.AddChild(child)
	}
	return len(actions)
}

// selectSubset mirrors Python's random.sample(actions, budget): a
// without-replacement uniform sample when there are more actions than the
// expansion budget allows.
func (c *Controller) selectSubset(actions []action.Action, budget int) []action.Action {
	if len(actions) <= budget {
		return actions
	}
	indices := c.rng.Perm(len(actions))[:budget]
	out := make([]action.Action, budget)
	for i, idx := range indices {
		out[i] = actions[idx]
	}
	return out
}

func (c *Controller) backpropagate(node *Node, reward float64) {
	current := node
	for current != nil {
		current.N++
		current.Xbar += (reward - current.Xbar) / float64(current.N)
		current = current.Parent
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
