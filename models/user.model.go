package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name       string     `json:"name" gorm:"default:''"`
	Email      string     `json:"email" gorm:"unique;not null"`
	Role       string     `json:"role" gorm:"default:'EMPLOYEE'"` // EMPLOYEE, AGENT, ADMIN
	Department string     `json:"department" gorm:"default:''"`
	IsActive   bool       `json:"is_active" gorm:"default:true"`
	LastSeen   *time.Time `json:"last_seen"`
	IsDeleted  bool       `json:"is_deleted" gorm:"default:false"`
}
