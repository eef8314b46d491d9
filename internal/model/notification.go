package model

type GetNotificationsRequest struct {
	Offset int `form:"offset"`
	Limit  int `form:"limit"`
}

type GetNotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
}

type MarkNotificationReadRequest struct {
	ID string `uri:"id"`
}

type MarkNotificationReadResponse struct{}

type MarkAllNotificationsReadRequest struct{}

type MarkAllNotificationsReadResponse struct{}

type GetNotificationUnreadCountRequest struct{}

type GetNotificationUnreadCountResponse struct {
	Count int64 `json:"count"`
}
