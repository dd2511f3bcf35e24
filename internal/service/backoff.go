// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"sync"
	"time"
)

// ErrBackoffCanceled is returned when the scheduler was invalidated while a
// retry was waiting.
var ErrBackoffCanceled = errors.New("backoff canceled")

// BackoffScheduler retries an action on a fixed ladder of jittered delays.
// Every wait belongs to a generation; Invalidate starts a new generation and
// wakes the waits of the old one, which then give up.
type BackoffScheduler struct {
	ladder []time.Duration
	jitter float64

	// random returns a value in [0, 1).
	random func() float64
	after  func(d time.Duration) <-chan time.Time

	mu         sync.Mutex
	generation uint64
	wake       chan struct{}
}

// NewBackoffScheduler creates a scheduler. jitter is the relative spread of
// each delay, 0.15 meaning +/-15%.
func NewBackoffScheduler(ladder []time.Duration, jitter float64) *BackoffScheduler {
	return &BackoffScheduler{
		ladder: slices.Clone(ladder),
		jitter: jitter,
		random: rand.Float64,
		after:  time.After,
		wake:   make(chan struct{}),
	}
}

// Generation returns the current cancellation generation.
func (s *BackoffScheduler) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Invalidate cancels every pending wait.
func (s *BackoffScheduler) Invalidate() {
	s.mu.Lock()
	s.generation++
	close(s.wake)
	s.wake = make(chan struct{})
	s.mu.Unlock()
}

// Steps returns the length of the ladder.
func (s *BackoffScheduler) Steps() int {
	return len(s.ladder)
}

// Delay returns the jittered delay before retry number attempt (0-based).
func (s *BackoffScheduler) Delay(attempt int) time.Duration {
	if len(s.ladder) == 0 {
		return 0
	}
	base := s.ladder[min(attempt, len(s.ladder)-1)]
	factor := 1 + s.jitter*(2*s.random()-1)

	return time.Duration(float64(base) * factor)
}

// Wait blocks for d unless ctx ends or generation gen is invalidated.
func (s *BackoffScheduler) Wait(ctx context.Context, gen uint64, d time.Duration) error {
	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		return ErrBackoffCanceled
	}
	wake := s.wake
	s.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-wake:
		return ErrBackoffCanceled
	case <-s.after(d):
	}

	if s.Generation() != gen {
		return ErrBackoffCanceled
	}
	return nil
}

// Retry runs op and, while retryable reports its error as transient, runs it
// again after each step of the ladder. onWait, if set, is told how long the
// next wait is. After the last step the final error is returned.
func (s *BackoffScheduler) Retry(ctx context.Context, retryable func(error) bool, onWait func(attempt int, d time.Duration), op func(ctx context.Context) error) error {
	gen := s.Generation()

	err := op(ctx)
	for attempt := 0; err != nil && retryable(err); attempt++ {
		if attempt >= len(s.ladder) {
			return err
		}

		d := s.Delay(attempt)
		if onWait != nil {
			onWait(attempt, d)
		}
		if werr := s.Wait(ctx, gen, d); werr != nil {
			return werr
		}

		err = op(ctx)
	}

	return err
}
