package model

// Message is the transient status line shown after a transition
type Message string

const (
	MessageNone     Message = ""
	MessageMatch    Message = "match"
	MessageNoMatch  Message = "no match"
	MessageTimesUp  Message = "time's up"
	MessageFinished Message = "finished"
)
