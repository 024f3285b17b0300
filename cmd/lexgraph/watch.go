package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/lexgraph/lexgraph"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

const workQueueBuffer = 500

func watchCmd() *cobra.Command {
	var workers int
	var rescanSchedule string

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Watch a directory and extract new or changed documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lg, err := newLexGraph()
			if err != nil {
				return err
			}
			defer lg.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return watch(ctx, cmd, lg, args[0], workers, rescanSchedule)
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 4, "number of extraction workers")
	cmd.Flags().StringVar(&rescanSchedule, "rescan", "@hourly", "cron schedule for full directory rescans")
	return cmd
}

// watch feeds file events into a bounded work queue consumed by a fixed pool
// of extraction workers. A periodic cron rescan picks up files the watcher
// missed.
func watch(ctx context.Context, cmd *cobra.Command, lg *lexgraph.LexGraph, dir string, workers int, rescanSchedule string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return err
	}

	queue := make(chan string, workQueueBuffer)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range queue {
				if err := processFile(cmd, lg, path); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "extraction failed for %s: %v\n", path, err)
				}
			}
		}()
	}

	enqueue := func(path string) {
		if !watchedExtensions[strings.ToLower(filepath.Ext(path))] {
			return
		}
		select {
		case queue <- path:
		default:
			fmt.Fprintf(cmd.ErrOrStderr(), "work queue full, dropping %s\n", path)
		}
	}

	rescan := func() {
		paths, err := collectFiles(dir)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "rescan failed: %v\n", err)
			return
		}
		for _, path := range paths {
			enqueue(path)
		}
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(rescanSchedule, rescan); err != nil {
		return fmt.Errorf("invalid rescan schedule %q: %w", rescanSchedule, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Initial pass over whatever is already in the directory.
	rescan()

	for {
		select {
		case <-ctx.Done():
			close(queue)
			wg.Wait()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				close(queue)
				wg.Wait()
				return nil
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
				if info, err := os.Stat(event.Name); err == nil && !info.IsDir() {
					enqueue(event.Name)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				continue
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)
		}
	}
}
