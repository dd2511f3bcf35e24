// Package workers runs the client's background loops: the auto-sync timer
// and the connectivity watcher.
package workers

import "context"

// Worker is a background loop. Run blocks until ctx is done.
type Worker interface {
	Run(ctx context.Context)
}
