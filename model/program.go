package model

import (
	"time"
)

// Program is a scheduled anganwadi activity entry.
// Title, Description, Date and Time are always populated on persisted
// records; Image is the public URL of the hosted banner image and may be
// empty. Date is free text from the admin form, expected to be a calendar
// date but not validated at write time.
type Program struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Date        string    `json:"date" gorm:"size:64;not null"`
	Time        string    `json:"time" gorm:"size:64;not null"`
	Image       string    `json:"image" gorm:"size:512"`
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime;index"`
}

// TableName keeps the table name explicit rather than relying on
// pluralization rules.
func (Program) TableName() string {
	return "programs"
}

// AdminLoginRequest is the payload for POST /admin-login.
type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// DashboardStats is the payload for GET /dashboard-stats.
// LastAdded carries the date field of the most recently created program,
// or "N/A" when no programs exist.
type DashboardStats struct {
	TotalPrograms  int64  `json:"totalPrograms"`
	ThisMonthCount int    `json:"thisMonthCount"`
	LastAdded      string `json:"lastAdded"`
}
