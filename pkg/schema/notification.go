package schema

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Notification is the payload published on every reconciliation
// channel: {operation, table?, key, data?}. ID is stamped on outbound
// notifications so a CONFIG->APPL->ASIC chain can be traced across
// daemon log lines; older readers that don't look for the field simply
// ignore it.
type Notification struct {
	ID        string          `json:"notification_id,omitempty"`
	Operation Operation       `json:"operation"`
	Table     string          `json:"table,omitempty"`
	Key       string          `json:"key"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// NewNotification builds a Notification with a fresh correlation id and
// data marshaled from v (v may be nil).
func NewNotification(op Operation, table, key string, v interface{}) (Notification, error) {
	n := Notification{
		ID:        uuid.NewString(),
		Operation: op,
		Table:     table,
		Key:       key,
	}
	if v != nil {
		data, err := json.Marshal(v)
		if err != nil {
			return Notification{}, err
		}
		n.Data = data
	}
	return n, nil
}

// ParseNotification decodes a raw pub/sub payload. Malformed JSON is
// reported to the caller, which is expected to log and drop the
// message rather than propagate the error further.
func ParseNotification(payload string) (Notification, error) {
	var n Notification
	if err := json.Unmarshal([]byte(payload), &n); err != nil {
		return Notification{}, err
	}
	return n, nil
}

// Encode renders the notification back to its wire form.
func (n Notification) Encode() (string, error) {
	b, err := json.Marshal(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
