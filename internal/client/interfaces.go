// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client is a runnable client application.
type Client interface {
	// Run starts the client and blocks until ctx is done.
	Run(ctx context.Context) error
}

var _ Client = (*App)(nil)
