package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	version_control "geo_buddy_go/config"
	"geo_buddy_go/tools/benchmark"
	"geo_buddy_go/tools/diff_expr"
	"geo_buddy_go/tools/sanity_check"
)

// printCustomHelp formats a custom help menu
func printCustomHelp() {
	fmt.Println(`GEO Buddy - Custom Help Menu
Usage:
  geo_buddy                 Interactive session (file prompt, search, compare)
  geo_buddy <tool> [options]

Tools:
  geo_compare		Welch's t-test and boxplot of one probe between two tissue groups
  probe_search		Find probe IDs by substring
  groups		List detected tissue groups and their sample counts
  init_config		Write the default config file, including the tissue rules
  check			Run diagnostic test

Global Flags:
  -h, -help		Show this help message
  -v, -version		Show version information

Benchmarking:
  -benchmark		Must be used in association with a tool.
			Displays computational resource usage and
			pertinent operating system information

Configuration:
  ~/.geo_buddy/config.yaml, or -config <file> on any tool.
  GEOBUDDY_* environment variables override file values.`,
	)
}

func printVersion() {
	fmt.Println("GEO Buddy - Version Information Menu")
	fmt.Println("Central Executable:")
	fmt.Printf("\tGEO Buddy:\t\t%s\n", version_control.Main_version)
	fmt.Printf("\nModular tools:\n")
	fmt.Printf("\tSeries Matrix Loader:\t%s\n", version_control.GEO_Matrix)
	fmt.Printf("\tGEO Compare:\t\t%s\n", version_control.GEO_Compare)
	fmt.Printf("\tProbe Search:\t\t%s\n", version_control.Probe_Search)
	fmt.Printf("\tSanity Check:\t\t%s\n", version_control.Sanity_check)
	fmt.Printf("\tBenchmark:\t\t%s\n", version_control.Benchmark)
	fmt.Println("")
}

// exit reports err the way every tool does and sets the status code.
func exit(err error) {
	switch {
	case err == nil:
		os.Exit(0)
	case errors.Is(err, flag.ErrHelp):
		os.Exit(0)
	case errors.Is(err, diff_expr.ErrUsage):
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// Main controller
func main() {

	// No arguments: interactive session
	if len(os.Args) < 2 {
		s, err := version_control.Load("")
		if err != nil {
			exit(err)
		}
		exit(diff_expr.Interactive(os.Stdin, os.Stdout, s))
	}

	// Scan for executable-specific help flags
	if len(os.Args) == 2 && (os.Args[1] == "-h" || os.Args[1] == "-help") {
		printCustomHelp()
		os.Exit(0)
	}

	// Version request
	for _, arg := range os.Args[1:] {
		if arg == "-v" || arg == "-version" {
			printVersion()
			os.Exit(0)
		}
	}

	toolName := os.Args[1]
	toolArgs := os.Args[2:]

	// Check for global -benchmark flag
	benchmarking := false
	var cleanedArgs []string
	for _, arg := range toolArgs {
		if arg == "-benchmark" {
			benchmarking = true
		} else {
			cleanedArgs = append(cleanedArgs, arg)
		}
	}

	// Tool execution wrapper
	run := func() error {
		switch toolName {
		case "geo_compare":
			return diff_expr.RunCompare(cleanedArgs, os.Stdout)
		case "probe_search":
			return diff_expr.RunSearch(cleanedArgs, os.Stdout)
		case "groups":
			return diff_expr.RunGroups(cleanedArgs, os.Stdout)
		case "init_config":
			return diff_expr.RunInitConfig(cleanedArgs, os.Stdout)
		case "check":
			sanity_check.Run(os.Stdout, cleanedArgs)
			return nil
		default:
			printCustomHelp()
			return fmt.Errorf("%w: unknown tool %q", diff_expr.ErrUsage, toolName)
		}
	}

	if benchmarking {
		label := fmt.Sprintf("geo_buddy %s %s", toolName, strings.Join(cleanedArgs, " "))
		exit(benchmark.Run(label, run))
	}
	exit(run())
}
