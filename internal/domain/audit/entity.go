package audit

import "time"

type Action string

const (
	ActionCreate Action = "CREATE"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
	ActionLogin  Action = "LOGIN"
	ActionLogout Action = "LOGOUT"
	ActionExport Action = "EXPORT"
)

type Entry struct {
	UserID    string
	Username  string
	AppName   string
	Action    Action
	Text      string
	CreatedAt time.Time
}
