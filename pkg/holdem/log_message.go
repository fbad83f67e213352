package holdem

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const maxLogMessages = 50

// LogMessage is an entry in the table's event log
// A "{}" in the message stands for the first player in PlayerIDs
type LogMessage struct {
	UUID      string    `json:"uuid"`
	PlayerIDs []string  `json:"playerIds"`
	Message   string    `json:"message"`
	Time      time.Time `json:"time"`
}

func (t *Table) logf(playerIDs []string, format string, a ...interface{}) {
	msg := LogMessage{
		UUID:      uuid.New().String(),
		PlayerIDs: playerIDs,
		Message:   fmt.Sprintf(format, a...),
		Time:      time.Now(),
	}

	t.logs = append(t.logs, msg)
	if len(t.logs) > maxLogMessages {
		t.logs = append([]LogMessage(nil), t.logs[len(t.logs)-maxLogMessages:]...)
	}
}
