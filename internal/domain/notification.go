package domain

import "time"

type NotificationType string

const (
	NotificationTypeStatusUpdate NotificationType = "status_update"
	NotificationTypeNewJob       NotificationType = "new_job"
	NotificationTypeSystem       NotificationType = "system"
)

type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Read      bool             `json:"read"`
	Link      string           `json:"link,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}
