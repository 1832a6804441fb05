package main

import (
	"fmt"
	"os"
	"strings"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "attempt":
		err = cmdAttempt(os.Args[2:])
	case "affect":
		err = cmdAffect(os.Args[2:])
	case "next":
		err = cmdNext(os.Args[2:])
	case "goal":
		err = cmdGoal(os.Args[2:])
	case "plan":
		err = cmdPlan(os.Args[2:])
	case "stats":
		err = cmdStats(os.Args[2:])
	case "concepts":
		err = cmdConcepts(os.Args[2:])
	case "learners":
		err = cmdLearners(os.Args[2:])
	case "config":
		err = cmdConfig()
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Printf("pathway %s\n", Version)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Pathway - Personalized Learning Engine

Usage:
  pathway <command> [arguments]

Session Commands:
  attempt         Record a challenge attempt
  affect          Record a live frustration/engagement sample
  next            Get the next recommended step

Goal Commands:
  goal            Declare a learning goal ("pathway goal build a discord bot")
  plan            Show the challenge plan for the current goal

Insight Commands:
  stats           Show a learner's progress summary
  concepts        List the concept graph
  learners        List known learners

Other:
  config          Show current configuration
  help            Show this help message
  version         Show version information

Examples:
  pathway attempt -concept loops -success -seconds 45
  pathway affect -dim frustration -value 0.8
  pathway next
  pathway goal build a discord bot
  pathway stats`)
}

// renderProgressBar creates a visual progress bar
func renderProgressBar(value float64, width int) string {
	filled := int(value * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	empty := width - filled

	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", empty) + "]"
}
