package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gopherplan/gopherplan/heuristic"
	"github.com/gopherplan/gopherplan/search"
	"github.com/gopherplan/gopherplan/task"
)

var verbose bool

func main() {
	root := &cobra.Command{
		Use:   "gopherplan",
		Short: "An optimal planner for SAS planning tasks",
		Long: `gopherplan computes guaranteed-optimal plans for deterministic planning
tasks in the Fast Downward SAS output format, using A* guided by an
admissible delete-relaxation heuristic (hmax or LM-Cut).

Results are written to stdout; diagnostics go to stderr.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostics about parsing and search")
	root.AddCommand(solveCmd(), estimateCmd("hmax"), estimateCmd("lmcut"), showCmd())
	if err := root.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

// loadTask parses the SAS file at the given path.
func loadTask(path string) (*task.Task, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not open task")
	}
	defer func() { _ = f.Close() }()
	start := time.Now()
	pb, err := task.ParseSAS(f)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse %q", path)
	}
	logrus.WithFields(logrus.Fields{
		"facts":   pb.NbFacts,
		"actions": len(pb.Actions),
		"took":    time.Since(start),
	}).Debug("parsed task")
	return pb, nil
}

// newHeuristic maps a selector to the corresponding estimator.
func newHeuristic(name string, pb *task.Task) (heuristic.Heuristic, error) {
	switch name {
	case "hmax":
		return heuristic.NewHMax(pb), nil
	case "lmcut":
		return heuristic.NewLMCut(pb), nil
	default:
		return nil, errors.Errorf("unsupported heuristic %q (want hmax or lmcut)", name)
	}
}

func solveCmd() *cobra.Command {
	var heuristicName string
	cmd := &cobra.Command{
		Use:   "solve [flags] file.sas",
		Short: "Find an optimal plan",
		Long: `Solve runs A* on the given task and prints an optimal plan, one action
name per line, followed by its total cost. If no plan exists, it prints
"Plan not found"; both outcomes are successes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pb, err := loadTask(args[0])
			if err != nil {
				return err
			}
			h, err := newHeuristic(heuristicName, pb)
			if err != nil {
				return err
			}
			start := time.Now()
			res := search.New(pb, h).Solve()
			logrus.WithFields(logrus.Fields{
				"status":    res.Status,
				"expanded":  res.Stats.Expanded,
				"generated": res.Stats.Generated,
				"evaluated": res.Stats.Evaluated,
				"reopened":  res.Stats.Reopened,
				"pruned":    res.Stats.Pruned,
				"took":      time.Since(start),
			}).Debug("search finished")
			if res.Status != search.Solved {
				fmt.Println("Plan not found")
				return nil
			}
			for _, name := range res.Plan {
				fmt.Println(name)
			}
			fmt.Println("Plan cost:", res.Cost)
			return nil
		},
	}
	cmd.Flags().StringVarP(&heuristicName, "heuristic", "H", "lmcut", "heuristic guiding the search (hmax or lmcut)")
	return cmd
}

// estimateCmd builds the standalone single-heuristic command for the given
// selector: it prints the heuristic value of the initial state, or "inf"
// when the goal is unreachable even under the delete relaxation.
func estimateCmd(name string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " file.sas",
		Short: "Print the " + name + " value of the initial state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pb, err := loadTask(args[0])
			if err != nil {
				return err
			}
			h, err := newHeuristic(name, pb)
			if err != nil {
				return err
			}
			fmt.Println(h.Estimate(pb.Init))
			return nil
		},
	}
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show file.sas",
		Short: "Print the STRIPS-like representation of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pb, err := loadTask(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Facts (%d):\n", pb.NbFacts)
			for f, name := range pb.Names {
				fmt.Printf("  %4d [var %d] %s\n", f, pb.Vars[f], name)
			}
			fmt.Printf("Initial state: %s\n", factNames(pb, pb.Init))
			fmt.Printf("Goal: %s\n", factNames(pb, pb.Goal))
			fmt.Printf("Actions (%d):\n", len(pb.Actions))
			for i := range pb.Actions {
				a := &pb.Actions[i]
				fmt.Printf("  %s (cost %d)\n", a.Name, a.Cost)
				fmt.Printf("    pre: %s\n", factNames(pb, a.Pre))
				fmt.Printf("    add: %s\n", factNames(pb, a.Add))
				fmt.Printf("    del: %s\n", factNames(pb, a.Del))
			}
			return nil
		},
	}
}

func factNames(pb *task.Task, fs []task.Fact) string {
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = pb.Names[f]
	}
	return strings.Join(names, ", ")
}
