package tui

import "github.com/MKhiriev/go-save-sync/models"

// stateMsg carries a controller state change into the program.
type stateMsg struct {
	state models.SyncState
}

type actionDoneMsg struct {
	action string
	err    error
}

type copiedMsg struct{}

type clearStatusMsg struct{}
