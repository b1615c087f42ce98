package dashboard

import "github.com/battletracker/battletracker/internal/monitor"

// SnapshotMsg carries a monitor's new state into the UI loop.
type SnapshotMsg struct {
	Snapshot monitor.Snapshot
}

// idsSavedMsg reports the result of persisting a new id list.
type idsSavedMsg struct {
	ids []string
	err error
}

// monitorsStartedMsg reports that the monitors for ids are running.
type monitorsStartedMsg struct {
	ids []string
}

// openedMsg reports the result of opening the project URL.
type openedMsg struct {
	url string
	err error
}

// statusMsg sets the transient status line.
type statusMsg string
