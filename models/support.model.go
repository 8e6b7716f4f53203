package models

import "gorm.io/gorm"

type SupportTicket struct {
	gorm.Model
	UserID      uint   `json:"user_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description" gorm:"type:text"`
	Status      string `json:"status" gorm:"default:'open'"`      // open, in_progress, resolved, closed
	Priority    string `json:"priority" gorm:"default:'medium'"`  // low, medium, high
	Category    string `json:"category" gorm:"default:'general'"` // general, hardware, software, access
	IsDeleted   bool   `json:"is_deleted" gorm:"default:false"`
}
