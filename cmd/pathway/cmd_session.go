package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/felixgeelhaar/pathway/internal/affect"
)

// cmdAttempt records one challenge attempt
func cmdAttempt(args []string) error {
	fs := flag.NewFlagSet("attempt", flag.ContinueOnError)
	learnerID := fs.String("learner", "", "learner id (default from config)")
	concept := fs.String("concept", "", "concept the challenge exercised")
	success := fs.Bool("success", false, "whether the attempt succeeded")
	seconds := fs.Float64("seconds", 0, "time spent on the attempt")
	hints := fs.Int("hints", 0, "hints used during the attempt")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *concept == "" {
		return fmt.Errorf("missing -concept")
	}
	if *seconds < 0 {
		return fmt.Errorf("-seconds must not be negative")
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

	elapsed := time.Duration(*seconds * float64(time.Second))
	card, err := a.svc.ObserveAttempt(ctx, id, *concept, *success, elapsed, *hints, time.Now())
	if err != nil {
		return err
	}

	outcome := "missed"
	if *success {
		outcome = "solved"
	}
	fmt.Printf("Recorded: %s %s in %s with %d hint(s)\n", *concept, outcome, elapsed.Round(time.Second), *hints)
	if card.Due != nil {
		fmt.Printf("Next review: %s (%.1f day interval)\n", card.Due.Format("2006-01-02"), card.Interval)
	}
	return nil
}

// cmdAffect records one live affect sample
func cmdAffect(args []string) error {
	fs := flag.NewFlagSet("affect", flag.ContinueOnError)
	learnerID := fs.String("learner", "", "learner id (default from config)")
	dim := fs.String("dim", "", "dimension: frustration or engagement")
	value := fs.Float64("value", -1, "sample level in [0,1]")
	note := fs.String("note", "", "what the learner was doing")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dim == "" {
		return fmt.Errorf("missing -dim (frustration or engagement)")
	}
	if *value < 0 || *value > 1 {
		return fmt.Errorf("-value must be in [0,1]")
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

	if err := a.svc.ObserveAffect(ctx, id, affect.Dimension(*dim), *value, *note, time.Now()); err != nil {
		return err
	}
	fmt.Printf("Recorded: %s %.2f\n", *dim, *value)
	return nil
}

// cmdNext prints the single next-step recommendation
func cmdNext(args []string) error {
	fs := flag.NewFlagSet("next", flag.ContinueOnError)
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

	rec, err := a.svc.RecommendNext(ctx, id, time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("Next: %s", rec.Action)
	if rec.ConceptID != "" {
		fmt.Printf(" (%s)", rec.ConceptID)
	}
	fmt.Println()
	fmt.Printf("Why:  %s\n", rec.Reason)
	fmt.Printf("Confidence: %s %.0f%%\n", renderProgressBar(rec.Confidence, 20), rec.Confidence*100)
	return nil
}
