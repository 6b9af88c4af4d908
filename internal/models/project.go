package models

import (
	"time"
)

type Project struct {
	ID               uint64    `gorm:"primarykey" json:"id"`
	OwnerID          uint64    `gorm:"not null;index" json:"ownerId"`
	Name             string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	ShortDescription string    `gorm:"type:varchar(255);not null" json:"shortDescription"`
	Description      string    `gorm:"type:text" json:"description"`
	Finished         time.Time `json:"finished"`
	RecentlyViewed   time.Time `gorm:"index" json:"recentlyViewed"`
	IsActive         bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`

	// Relations
	Owner   User            `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Members []ProjectMember `gorm:"foreignKey:ProjectID" json:"-"`
	Tasks   []Task          `gorm:"foreignKey:ProjectID" json:"-"`
}
