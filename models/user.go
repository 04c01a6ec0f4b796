package models

import (
	"time"
)

type NotifySettings struct {
	IsChallenge bool `json:"isChallenge"`
	IsEating    bool `json:"isEating"`
	IsWorkout   bool `json:"isWorkout"`
	IsWater     bool `json:"isWater"`
	IsAdmin     bool `json:"isAdmin"`
	IsHealth    bool `json:"isHealth"`
}

// Allows reports whether notifications of type t should reach the user.
func (n NotifySettings) Allows(t NotificationType) bool {
	switch t {
	case NotifyChallenge:
		return n.IsChallenge
	case NotifyEating:
		return n.IsEating
	case NotifyWorkout:
		return n.IsWorkout
	case NotifyWater:
		return n.IsWater
	case NotifyAdmin:
		return n.IsAdmin
	case NotifyHealth:
		return n.IsHealth
	}
	return false
}

func DefaultNotifySettings() NotifySettings {
	return NotifySettings{true, true, true, true, true, true}
}

// GoalDetail is the calorie target produced by the recommendation endpoint.
type GoalDetail struct {
	StartDate  *time.Time `json:"startDate"`
	TargetDate *time.Time `json:"targetDate"`
	Days       int        `json:"days"`
	Goal       float64    `json:"goal"` // kcal
	Progress   float64    `json:"progress"`
	Status     string     `json:"status"`
}

type OTP struct {
	Code      string     `json:"-"`
	ExpiresAt *time.Time `json:"-"`
}

type User struct {
	ID                  uint             `gorm:"primaryKey" json:"id"`
	FullName            string           `json:"fullName"`
	Email               string           `gorm:"uniqueIndex;not null" json:"email"`
	Username            string           `gorm:"uniqueIndex;not null" json:"username"`
	Password            string           `gorm:"not null" json:"-"`
	DateOfBirth         *time.Time       `json:"date_of_birth"`
	Gender              string           `json:"gender"`
	Role                UserRole         `gorm:"index" json:"role"`
	Verify              UserVerifyStatus `gorm:"index" json:"verify"`
	Status              string           `gorm:"size:16" json:"status"`
	Avatar              string           `json:"avatar"`
	Height              float64          `json:"height"`
	Weight              float64          `json:"weight"`
	GoalWeight          float64          `json:"goal_weight"`
	Level               string           `json:"level"`
	ActivityLevel       string           `json:"activityLevel"`
	IsOnline            bool             `json:"isOnline"`
	EmailVerifyToken    string           `json:"-"`
	ForgotPasswordToken string           `json:"-"`
	NotifySettings      NotifySettings   `gorm:"embedded;embeddedPrefix:notify_" json:"myNotifySettings"`
	GoalDetail          GoalDetail       `gorm:"embedded;embeddedPrefix:goal_" json:"goalDetail"`
	OTP                 OTP              `gorm:"embedded;embeddedPrefix:otp_" json:"-"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

func (u *User) IsBanned() bool {
	return u.Status == UserStatusBan || u.Verify == Banned
}

// UserSummary is the public projection used when embedding a user in another response.
type UserSummary struct {
	ID       uint             `json:"id"`
	FullName string           `json:"fullName"`
	Email    string           `json:"email"`
	Username string           `json:"username"`
	Avatar   string           `json:"avatar"`
	Verify   UserVerifyStatus `json:"verify"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, FullName: u.FullName, Email: u.Email, Username: u.Username, Avatar: u.Avatar, Verify: u.Verify}
}
