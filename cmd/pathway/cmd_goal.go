package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/pathway/internal/goal"
)

// cmdGoal declares a learning goal from free-form text
func cmdGoal(args []string) error {
	fs := flag.NewFlagSet("goal", flag.ContinueOnError)
	learnerID := fs.String("learner", "", "learner id (default from config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	goalText := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if goalText == "" {
		return fmt.Errorf("missing goal text (try: pathway goal build a discord bot)")
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

	plan, err := a.svc.DeclareGoal(ctx, id, goalText, time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("Goal: %s\n", goalText)
	printPlan(plan)
	return nil
}

// cmdPlan shows the challenge plan for the declared goal
func cmdPlan(args []string) error {
	fs := flag.NewFlagSet("plan", flag.ContinueOnError)
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

	plan, err := a.svc.Plan(ctx, id, time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("Goal: %s\n", plan.GoalText)
	printPlan(plan)
	return nil
}

func printPlan(plan *goal.Plan) {
	if len(plan.Challenges) == 0 {
		fmt.Println("Nothing left to learn for this goal. Declare a bigger one!")
		return
	}

	fmt.Printf("Estimated effort: %.1f hours across %d concepts\n\n", plan.EstimatedHours, len(plan.Concepts))
	for i, ch := range plan.Challenges {
		fmt.Printf("%2d. %s (%s)\n", i+1, ch.Title, ch.ConceptID)
		if ch.Description != "" {
			fmt.Printf("    %s\n", ch.Description)
		}
	}
}
