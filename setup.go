package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	envDestDir = "BOORUSCRAPE_DEST" // Default for the dest_dir argument.
	envJobs    = "BOORUSCRAPE_JOBS" // Default for -j.
)

type Config struct {
	Source  string        // Path of a post json file or a directory of them.
	DestDir string        // Destination directory to save posts to.
	Verbose bool          // True for verbose output.
	Jobs    int           // Number of jobs to run in parallel.
	Timeout time.Duration // Per-post download timeout. 0 means none.
}

// loadEnv reads variables from a .env file in the working directory, if
// there is one. Variables already set in the environment take precedence.
func loadEnv() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

func parseArgs(fs *flag.FlagSet, args []string) (*Config, error) {
	defaultJobs := 1
	if v := os.Getenv(envJobs); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %q", envJobs, v)
		}
		defaultJobs = n
	}

	verbose := fs.Bool("v", false, "verbose output")
	jobs := fs.Int("j", defaultJobs, "jobs")
	timeout := fs.Duration("t", 5*time.Minute, "per-post download timeout (0 for none)")

	fs.Usage = func() { usage(fs) }
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() < 1 {
		return nil, fmt.Errorf("missing required argument: source")
	}
	source := fs.Arg(0)

	destDir := fs.Arg(1)
	if destDir == "" {
		destDir = os.Getenv(envDestDir)
	}
	if destDir == "" {
		return nil, fmt.Errorf("missing required argument: dest_dir")
	}

	if *jobs < 1 {
		return nil, fmt.Errorf("jobs must be at least 1: have=%d", *jobs)
	}

	return &Config{
		Source:  source,
		DestDir: destDir,
		Verbose: *verbose,
		Jobs:    *jobs,
		Timeout: *timeout,
	}, nil
}

func usage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: %s [option]... <source> [dest_dir]\n", filepath.Base(os.Args[0]))
	fmt.Fprintf(fs.Output(), "Downloads booru posts described by json metadata files.\n")
	fmt.Fprintf(fs.Output(), "dest_dir defaults to $%s.\n", envDestDir)
	fs.PrintDefaults()
}
