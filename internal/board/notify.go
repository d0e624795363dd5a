package board

import "time"

// NotificationTTL is how long a notification stays visible.
const NotificationTTL = 3 * time.Second

// Level is a notification's severity.
type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

func (l Level) String() string {
	if l == LevelError {
		return "error"
	}
	return "success"
}

// Notification is a transient message (toast).
type Notification struct {
	ID      uint64
	Level   Level
	Message string
	At      time.Time
}

// Notifier collects notifications and expires them after NotificationTTL.
type Notifier struct {
	now    func() time.Time
	nextID uint64
	items  []Notification
}

// NewNotifier returns a notifier using now as its clock; nil means time.Now.
func NewNotifier(now func() time.Time) *Notifier {
	if now == nil {
		now = time.Now
	}
	return &Notifier{now: now}
}

func (n *Notifier) push(l Level, msg string) Notification {
	n.nextID++
	item := Notification{ID: n.nextID, Level: l, Message: msg, At: n.now()}
	n.items = append(n.items, item)
	return item
}

// Success records a success notification.
func (n *Notifier) Success(msg string) Notification { return n.push(LevelSuccess, msg) }

// Error records an error notification.
func (n *Notifier) Error(msg string) Notification { return n.push(LevelError, msg) }

// Active drops expired notifications and returns the rest, oldest first.
func (n *Notifier) Active() []Notification {
	cutoff := n.now().Add(-NotificationTTL)
	kept := n.items[:0]
	for _, item := range n.items {
		if item.At.After(cutoff) {
			kept = append(kept, item)
		}
	}
	n.items = kept
	return append([]Notification(nil), kept...)
}

// Dismiss removes the notification with id.
func (n *Notifier) Dismiss(id uint64) {
	for i, item := range n.items {
		if item.ID == id {
			n.items = append(n.items[:i], n.items[i+1:]...)
			return
		}
	}
}
