package dashboard

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/battletracker/battletracker/internal/monitor"
)

// Sender delivers messages into a running program. *tea.Program implements it.
type Sender interface {
	Send(msg tea.Msg)
}

// Bridge forwards monitor snapshots to the Bubble Tea program via Send, so
// all rendering happens on the program's loop. Snapshots that arrive before
// a program is attached are dropped. Safe for concurrent use.
type Bridge struct {
	mu     sync.RWMutex
	sender Sender
}

// NewBridge creates a bridge forwarding to sender, which may be nil until Attach.
func NewBridge(sender Sender) *Bridge {
	return &Bridge{sender: sender}
}

// Attach sets the program that receives snapshots.
func (b *Bridge) Attach(sender Sender) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sender = sender
}

// Snapshot forwards s. Its signature matches monitor.Env.OnChange.
func (b *Bridge) Snapshot(s monitor.Snapshot) {
	b.mu.RLock()
	sender := b.sender
	b.mu.RUnlock()

	if sender == nil {
		return
	}
	sender.Send(SnapshotMsg{Snapshot: s})
}
