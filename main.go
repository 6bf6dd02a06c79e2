package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gobsat/gobsat/solver"
)

var (
	verbose bool
	timeout time.Duration

	conflictLimit int64
	decisionLimit int64
	seed          int64

	globalPre      bool
	globalOrder    string
	bothPolarities bool
	noTouch        bool
	greedy         bool
	bcpShrink      bool
	noShrink       bool
	antecedents    string
	maxLen         int
	maxClauses     int
	noFilterTriv   bool
	noLearn        bool
	globalBudget   time.Duration
	recordPath     string
	schedulePath   string
)

func main() {
	cmd := &cobra.Command{
		Use:   "gobsat [flags] file.cnf",
		Short: "A CDCL SAT solver with global preprocessing",
		Long: "gobsat decides the satisfiability of a DIMACS CNF formula.\n" +
			"Exit code is 10 for SAT, 20 for UNSAT and 0 when inconclusive.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	flags := cmd.Flags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")
	flags.DurationVarP(&timeout, "timeout", "t", 0, "give up after this duration")
	flags.Int64Var(&conflictLimit, "conflicts", -1, "conflict budget, -1 for unlimited")
	flags.Int64Var(&decisionLimit, "decisions", -1, "decision budget, -1 for unlimited")
	flags.Int64Var(&seed, "seed", 0, "seed for randomized policies, 0 for time-based")

	flags.BoolVarP(&globalPre, "global", "g", false, "learn globally blocked clauses before search")
	flags.StringVar(&globalOrder, "global-order", "ascending", "probe order: ascending, frequency or random")
	flags.BoolVar(&bothPolarities, "both-polarities", false, "probe both polarities of the second literal")
	flags.BoolVar(&noTouch, "no-touch", false, "probe all variables instead of touched literals only")
	flags.BoolVar(&greedy, "greedy", false, "pick antecedents by greedy set cover")
	flags.BoolVar(&bcpShrink, "bcp", false, "shrink with binary clauses only")
	flags.BoolVar(&noShrink, "no-shrink", false, "emit raw candidate clauses without shrinking")
	flags.StringVar(&antecedents, "antecedents", "none", "antecedent order: none, implication or random")
	flags.IntVar(&maxLen, "max-len", 50, "discard derived clauses longer than this")
	flags.IntVar(&maxClauses, "max-clauses", 10, "cap on raw candidates per derivation")
	flags.BoolVar(&noFilterTriv, "no-filter-trivial", false, "keep clauses already implied by propagation")
	flags.BoolVar(&noLearn, "no-learn", false, "derive but do not add clauses to the database")
	flags.DurationVar(&globalBudget, "global-budget", 10*time.Second, "time budget of the global pass")
	flags.StringVar(&recordPath, "record", "", "record derived clauses to this file (and file_pr)")
	flags.StringVar(&schedulePath, "schedule", "", "drive the global pass with this assumption schedule")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gobsat: %v\n", err)
		os.Exit(1)
	}
}

func run(_ *cobra.Command, args []string) error {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return errors.Wrapf(err, "could not open %q", args[0])
	}
	defer f.Close()
	pb, err := solver.ParseCNF(f)
	if err != nil {
		return errors.Wrapf(err, "could not parse %q", args[0])
	}

	s := solver.New(pb)
	s.Verbose = verbose
	s.Logger = logger
	cleanup, err := configure(s)
	if err != nil {
		return err
	}

	start := time.Now()
	var status solver.Status
	if timeout > 0 {
		status = s.SolveTimeout(timeout)
	} else {
		status = s.Solve()
	}
	if verbose {
		verdict := color.New(color.FgYellow)
		switch status {
		case solver.Sat:
			verdict = color.New(color.FgGreen)
		case solver.Unsat:
			verdict = color.New(color.FgRed)
		}
		verdict.Fprintf(os.Stderr, "c %s in %v\n", status, time.Since(start))
	}
	s.OutputModel()
	cleanup()
	os.Exit(status.ExitCode())
	return nil
}

func configure(s *solver.Solver) (cleanup func(), err error) {
	cleanup = func() {}
	s.Options.ConflictLimit = conflictLimit
	s.Options.DecisionLimit = decisionLimit
	s.Options.Seed = seed

	s.Options.GlobalPreprocess = globalPre
	switch globalOrder {
	case "ascending":
		s.Options.GlobalOrder = solver.GlobalOrderAscending
	case "frequency":
		s.Options.GlobalOrder = solver.GlobalOrderFrequency
	case "random":
		s.Options.GlobalOrder = solver.GlobalOrderRandom
	default:
		return cleanup, errors.Errorf("unknown global order %q", globalOrder)
	}
	switch antecedents {
	case "none":
		s.Options.GlobalAntecedents = solver.AntecedentOrderNone
	case "implication":
		s.Options.GlobalAntecedents = solver.AntecedentOrderImplication
	case "random":
		s.Options.GlobalAntecedents = solver.AntecedentOrderRandom
	default:
		return cleanup, errors.Errorf("unknown antecedent order %q", antecedents)
	}
	s.Options.GlobalBothPolarities = bothPolarities
	s.Options.GlobalTouch = !noTouch
	s.Options.GlobalGreedy = greedy
	s.Options.GlobalBCPShrink = bcpShrink
	s.Options.GlobalNoShrink = noShrink
	s.Options.GlobalMaxLen = maxLen
	s.Options.GlobalMaxClauses = maxClauses
	s.Options.GlobalFilterTrivial = !noFilterTriv
	s.Options.GlobalLearn = !noLearn
	s.Options.GlobalTimeBudget = globalBudget

	if recordPath != "" {
		rec, err := solver.OpenRecorder(recordPath)
		if err != nil {
			return cleanup, err
		}
		s.AttachRecorder(rec)
		cleanup = func() { rec.Close() }
	}
	if schedulePath != "" {
		f, err := os.Open(schedulePath)
		if err != nil {
			return cleanup, errors.Wrapf(err, "could not open schedule %q", schedulePath)
		}
		defer f.Close()
		sched, err := solver.LoadSchedule(f)
		if err != nil {
			return cleanup, err
		}
		if sched.MaxVar() >= s.NbVars() {
			return cleanup, errors.Errorf("schedule mentions variable %d but the formula has %d", sched.MaxVar()+1, s.NbVars())
		}
		s.Schedule = sched
		s.Options.GlobalPreprocess = true
	}
	return cleanup, nil
}
