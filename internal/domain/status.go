package domain

import "time"

// StatusCheck is a client-reported liveness ping.
type StatusCheck struct {
	ID         string    `gorm:"primaryKey;size:64" json:"id"`
	ClientName string    `gorm:"size:128" json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}

// TableName Specify table name
func (StatusCheck) TableName() string {
	return "status_checks"
}
