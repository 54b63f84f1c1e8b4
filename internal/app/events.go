package app

import (
	"fmt"

	"github.com/bethropolis/fencedit/internal/event"
	"github.com/bethropolis/fencedit/internal/logger"
	"github.com/bethropolis/fencedit/internal/statusbar"
)

// statusHandlers keeps a status bar in step with session events.
type statusHandlers struct {
	statusBar *statusbar.StatusBar
}

// handleSessionBeganForStatus labels the status bar with the edited lines.
func (h statusHandlers) handleSessionBeganForStatus(e event.Event) bool {
	if data, ok := e.Data.(event.SessionBeganData); ok {
		h.statusBar.SetFileInfo(data.FilePath, false)
		h.statusBar.SetLabel(fmt.Sprintf("lines %d-%d", data.StartLine+1, data.EndLine+1))
	}
	return false // Not consumed
}

// handleNoticeForStatus shows a notice as a temporary message.
func (h statusHandlers) handleNoticeForStatus(e event.Event) bool {
	data, ok := e.Data.(event.NoticeData)
	if !ok {
		logger.Warnf("App: notice event with unexpected data type: %T", e.Data)
		return false
	}
	h.statusBar.SetTemporaryMessage("%s", data.Message)
	return false
}

// subscribe registers the handlers on m and returns a function removing them.
func (h statusHandlers) subscribe(m *event.Manager) func() {
	ids := []event.SubscriptionID{
		m.Subscribe(event.TypeSessionBegan, h.handleSessionBeganForStatus),
		m.Subscribe(event.TypeNotice, h.handleNoticeForStatus),
	}
	return func() {
		for _, id := range ids {
			m.Unsubscribe(id)
		}
	}
}
