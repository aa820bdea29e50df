package messaging

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/lumenpage/materials-cli/internal/tui/theme"
)

// MessageType represents different message types for status display
type MessageType int

// Message type constants
const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// StatusManager manages transient status messages and their display
type StatusManager interface {
	SetMessage(message string, msgType MessageType)
	ClearMessage()
	GetMessage() (string, MessageType, bool)
	RenderMessage() string
	HasMessage() bool
}

type statusManager struct {
	message     string
	messageType MessageType
}

// NewStatusManager creates a new status manager instance
func NewStatusManager() StatusManager {
	return &statusManager{}
}

// SetMessage sets a status message with type
func (sm *statusManager) SetMessage(message string, msgType MessageType) {
	sm.message = message
	sm.messageType = msgType

	logrus.Debugf("StatusManager: message=%q type=%d", message, msgType)
}

// ClearMessage clears the status message
func (sm *statusManager) ClearMessage() {
	sm.message = ""
}

// GetMessage returns the current message, type, and whether a message exists
func (sm *statusManager) GetMessage() (string, MessageType, bool) {
	return sm.message, sm.messageType, sm.message != ""
}

// HasMessage returns whether there is currently a status message
func (sm *statusManager) HasMessage() bool {
	return sm.message != ""
}

// RenderMessage renders the current status message with appropriate styling
func (sm *statusManager) RenderMessage() string {
	if !sm.HasMessage() {
		return ""
	}

	messageStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.GetMessageColor(int(sm.messageType)))).
		Bold(true)

	return messageStyle.Render(fmt.Sprintf("%s%s", theme.GetMessageIcon(int(sm.messageType)), sm.message))
}
