package main

import (
	"context"
	"flag"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/felixgeelhaar/pathway/internal/domain"
	"github.com/felixgeelhaar/pathway/internal/engagement"
)

// cmdStats shows a learner's progress summary
func cmdStats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	learnerID := fs.String("learner", "", "learner id (default from config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	id := *learnerID
	if id == "" {
		id = a.cfg.DefaultLearner
	}

	stats, err := a.svc.Stats(ctx, id, time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("Learner: %s\n", stats.LearnerID)
	fmt.Println("==================")
	fmt.Printf("Concepts seen:      %d\n", stats.ConceptsSeen)
	fmt.Printf("Average mastery:    %s %.1f/%.0f\n",
		renderProgressBar(stats.AverageMastery/domain.MaxMastery, 20), stats.AverageMastery, domain.MaxMastery)
	fmt.Printf("Reviews due:        %d\n", stats.DueReviews)
	fmt.Printf("Peak practice hour: %02d:00\n", stats.PeakHour)

	if stats.Goal != "" {
		fmt.Printf("\nGoal: %s\n", stats.Goal)
		fmt.Printf("Progress: %s %.0f%%\n", renderProgressBar(stats.GoalProgress, 20), stats.GoalProgress*100)
	}

	if len(stats.WeakConcepts) > 0 {
		fmt.Println("\nNeeds Attention")
		fmt.Println("---------------")
		for _, concept := range stats.WeakConcepts {
			fmt.Printf("  %s\n", concept)
		}
	}

	if len(stats.FlowTriggers) > 0 {
		fmt.Printf("\nFlow triggers: %s\n", strings.Join(stats.FlowTriggers, ", "))
	}

	fmt.Println("\nEngagement Styles")
	fmt.Println("-----------------")
	styles := engagement.Styles()
	sort.Slice(styles, func(i, j int) bool {
		return stats.StyleWeights[styles[i]] > stats.StyleWeights[styles[j]]
	})
	for _, style := range styles {
		w := stats.StyleWeights[style]
		fmt.Printf("%-26s %s %.0f%%\n", style, renderProgressBar(w, 20), w*100)
	}
	return nil
}

// cmdConcepts lists the concept graph
func cmdConcepts(args []string) error {
	fs := flag.NewFlagSet("concepts", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	graph := a.tables.Graph()
	fmt.Println("Concept Graph")
	fmt.Println("=============")
	for _, id := range graph.IDs() {
		c := graph.Get(id)
		fmt.Printf("%-16s level %d", c.ID, c.Level)
		if len(c.Prerequisites) > 0 {
			fmt.Printf("  (after %s)", strings.Join(c.Prerequisites, ", "))
		}
		fmt.Println()
	}
	return nil
}

// cmdLearners lists every learner with stored state
func cmdLearners(args []string) error {
	fs := flag.NewFlagSet("learners", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	ids, err := a.svc.ListLearners(ctx)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Println("No learners yet.")
		return nil
	}
	for _, id := range ids {
		fmt.Println(id)
	}
	return nil
}

// cmdConfig shows the resolved configuration
func cmdConfig() error {
	a, err := newApp(context.Background())
	if err != nil {
		return err
	}
	defer a.close()

	fmt.Println("Configuration")
	fmt.Println("=============")
	fmt.Printf("Storage backend: %s\n", a.cfg.StorageBackend)
	fmt.Printf("Data directory:  %s\n", a.cfg.DataDir)
	if a.cfg.ContentPath != "" {
		fmt.Printf("Content tables:  %s\n", a.cfg.ContentPath)
	} else {
		fmt.Println("Content tables:  built-in")
	}
	fmt.Printf("Default learner: %s\n", a.cfg.DefaultLearner)
	fmt.Printf("Debug logging:   %v\n", a.cfg.Debug)
	return nil
}
