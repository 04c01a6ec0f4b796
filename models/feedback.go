package models

import "gorm.io/datatypes"

type Report struct {
	Base
	UserID      uint                        `gorm:"index;not null" json:"user_id"`
	User        *User                       `json:"-"`
	Title       string                      `gorm:"index;not null" json:"title"`
	Description string                      `gorm:"type:text" json:"description"`
	Images      datatypes.JSONSlice[string] `json:"images"`
	Status      string                      `gorm:"size:16;index" json:"status"`
}

type Contact struct {
	Base
	UserID  uint   `gorm:"index;not null" json:"user_id"`
	Subject string `json:"subject"`
	Message string `gorm:"type:text" json:"message"`
	Status  string `gorm:"size:16;index" json:"status"`
}
