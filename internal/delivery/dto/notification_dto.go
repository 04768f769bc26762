package dto

type NotificationListQuery struct {
	UnreadOnly bool `url:"unread_only,omitempty" schema:"unread_only"`
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}
