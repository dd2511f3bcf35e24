// Package server runs the cloud backend's HTTP listener.
//
// It owns the listener lifecycle: startup, signal handling, and graceful
// shutdown that lets in-flight save writes finish.
package server
