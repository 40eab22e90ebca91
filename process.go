package main

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/ccollins476ad/booruscrape/booru"
	"github.com/ccollins476ad/booruscrape/download"
	"github.com/ccollins476ad/booruscrape/fileutil"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// collectPosts reads every post from source, which is either a json file or
// a directory searched recursively for json files.
func collectPosts(source string) ([]booru.Post, error) {
	var filenames []string

	if fileutil.IsDir(source) {
		err := filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(d.Name(), ".json") {
				filenames = append(filenames, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		filenames = []string{source}
	}

	var posts []booru.Post
	for _, filename := range filenames {
		ps, err := booru.ReadPosts(filename)
		if err != nil {
			return nil, err
		}
		log.Debugf("read %d posts: filename=%s", len(ps), filename)
		posts = append(posts, ps...)
	}

	return posts, nil
}

// processPosts calls processPost() for each post in the given slice, using
// cfg.Jobs goroutines. A failed post is logged and does not stop the others.
// It returns an error if any post failed.
func processPosts(ctx context.Context, cfg *Config, s *download.Store, posts []booru.Post) error {
	g := &errgroup.Group{}
	var failed atomic.Int32

	startGoroutines := func() {
		postChan := make(chan booru.Post)
		defer close(postChan)

		// Create a set of goroutines to download posts in parallel.
		for i := 0; i < cfg.Jobs; i++ {
			g.Go(func() error {
				for p := range postChan {
					err := processPost(ctx, cfg, s, p)
					if err != nil {
						log.WithError(err).Errorf("failed to download post: id=%d", p.ID)
						failed.Add(1)
					}
				}
				return nil
			})
		}

		for _, p := range posts {
			select {
			case <-ctx.Done():
				// Operation aborted. Return early to execute deferred channel
				// close.
				return

			case postChan <- p:
			}
		}
	}

	startGoroutines()

	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d posts failed", n, len(posts))
	}
	return nil
}

// processPost downloads a single post, bounded by the configured timeout.
func processPost(ctx context.Context, cfg *Config, s *download.Store, p booru.Post) error {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	log.Debugf("processing post: id=%d rating=%s", p.ID, p.Rating.Subfolder())

	desc, err := s.Download(ctx, p)
	if err != nil {
		return err
	}

	if desc.IsLocal {
		log.Debugf("skipping post %d: file already exists: %s", p.ID, desc.Filename)
	} else {
		log.Infof("downloaded %s", filepath.Join(s.DestDir(), desc.Filename))
	}

	return nil
}
