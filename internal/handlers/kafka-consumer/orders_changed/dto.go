package orders_changed

import "time"

type changedEvent struct {
	Source string    `json:"source"`
	Topic  string    `json:"topic"`
	At     time.Time `json:"at"`
}
