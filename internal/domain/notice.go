package domain

import "time"

// NoticeKind classifies a user-facing notice.
type NoticeKind string

// Notice kinds.
const (
	NoticeInfo    NoticeKind = "info"
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a non-fatal message for the user, shown as an alert or toast.
// Notices never interrupt the flow that raised them.
type Notice struct {
	ID      uint64
	Kind    NoticeKind
	Title   string
	Message string
	At      time.Time
}
