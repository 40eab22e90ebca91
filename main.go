package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/ccollins476ad/booruscrape/download"
	log "github.com/sirupsen/logrus"
)

func printFatalError(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}

func main() {
	err := loadEnv()
	if err != nil {
		printFatalError(err)
		os.Exit(1)
	}

	cfg, err := parseArgs(flag.CommandLine, os.Args[1:])
	if err != nil {
		printFatalError(err)
		flag.CommandLine.Usage()
		os.Exit(1)
	}

	if cfg.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	posts, err := collectPosts(cfg.Source)
	if err != nil {
		printFatalError(err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// One client for every download so connections are reused.
	s := download.NewStore(cfg.DestDir, &http.Client{})

	err = processPosts(ctx, cfg, s, posts)
	if err != nil {
		printFatalError(err)
		stop()
		os.Exit(3)
	}
}
