package entities

import "time"

type Notification struct {
	ID        int64
	Message   string
	CreatedAt time.Time
	Read      bool
}
