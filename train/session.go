// Package train generates labelled training positions by self-play: each
// worker plays randomized-opening games against itself with the searcher on
// a small per-move budget and records the searched score of every quiet
// position, tagged afterwards with the game outcome.
package train

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Config carries the training session tunables. Zero numeric values fall
// back to the defaults NewSession fills in. Logger must be a usable
// zerolog logger; pass zerolog.Nop() to silence the session.
type Config struct {
	Threads     int
	HashSizeMB  int
	TimePerMove time.Duration
	OutputDir   string
	Logger      zerolog.Logger
}

// Session owns a set of self-play workers and the stop signal they share.
// Workers share nothing else: each has its own transposition table, its own
// random source, and its own output file, merged only after all of them
// have joined.
type Session struct {
	config  Config
	log     zerolog.Logger
	stop    atomic.Bool
	group   *errgroup.Group
	workers []*worker
}

// NewSession builds a session from config, applying the defaults: one
// worker, 16 MB hash, 125 ms per move.
func NewSession(config Config) *Session {
	if config.Threads < 1 {
		config.Threads = 1
	}
	if config.HashSizeMB < 1 {
		config.HashSizeMB = 16
	}
	if config.TimePerMove <= 0 {
		config.TimePerMove = time.Second / 8
	}
	return &Session{config: config, log: config.Logger}
}

// Start opens the per-worker output files and launches the workers. A file
// that cannot be opened fails the whole start; a worker that fails later is
// fatal only to itself.
func (s *Session) Start() error {
	s.stop.Store(false)
	s.workers = s.workers[:0]
	for i := 0; i < s.config.Threads; i++ {
		var w, err = newWorker(i, &s.config)
		if err != nil {
			for _, started := range s.workers {
				started.close()
			}
			return fmt.Errorf("train: start worker %v: %w", i, err)
		}
		s.workers = append(s.workers, w)
	}
	s.log.Info().Int("threads", s.config.Threads).Msg("training-started")
	s.group = new(errgroup.Group)
	for _, w := range s.workers {
		var w = w
		s.group.Go(func() error {
			return w.run(&s.stop)
		})
	}
	return nil
}

// Stop signals the workers, waits for the game in flight on each to end,
// then merges the per-worker files into training_data.txt and removes them.
// The first worker error is returned after the merge so partial output from
// healthy workers is still collected.
func (s *Session) Stop() error {
	if s.group == nil {
		return nil
	}
	s.stop.Store(true)
	var workerErr = s.group.Wait()
	s.group = nil
	if workerErr != nil {
		s.log.Error().Err(workerErr).Msg("worker-failed")
	}
	for _, w := range s.workers {
		w.close()
		s.log.Info().Int("worker", w.id).Msg("worker-stopped")
	}
	var mergeErr = mergeTrainingData(s.config.OutputDir, len(s.workers), s.log)
	s.workers = nil
	if workerErr != nil {
		return workerErr
	}
	return mergeErr
}

func workerFileName(dir string, index int) string {
	return filepath.Join(dir, fmt.Sprintf("training_data%02d.txt", index))
}

func mergedFileName(dir string) string {
	return filepath.Join(dir, "training_data.txt")
}
