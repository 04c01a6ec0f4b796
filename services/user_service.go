package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tuonghuynh11/HealthAppAPI/models"
	"github.com/tuonghuynh11/HealthAppAPI/utils"

	"gorm.io/gorm"
)

const msgCannotBanAdmin = "admin accounts cannot be banned"

type UserService struct {
	db      *gorm.DB
	storage utils.ObjectStorage
	now     func() time.Time
}

func NewUserService(db *gorm.DB, storage utils.ObjectStorage) *UserService {
	return &UserService{db: db, storage: storage, now: time.Now}
}

type UpdateMeRequest struct {
	FullName      *string  `json:"fullName" binding:"omitempty,min=1,max=100"`
	Username      *string  `json:"username" binding:"omitempty,min=3,max=50,alphanum"`
	DateOfBirth   *string  `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Gender        *string  `json:"gender" binding:"omitempty,oneof=Male Female"`
	Height        *float64 `json:"height" binding:"omitempty,gt=0,lte=300"`
	Weight        *float64 `json:"weight" binding:"omitempty,gt=0,lte=500"`
	GoalWeight    *float64 `json:"goal_weight" binding:"omitempty,gt=0,lte=500"`
	Level         *string  `json:"level" binding:"omitempty,oneof=Beginner Intermediate Advanced"`
	ActivityLevel *string  `json:"activityLevel" binding:"omitempty,oneof=sedentary light moderate active very_active"`
	// Avatar is a URL or a base64 data URI to upload.
	Avatar *string `json:"avatar"`
}

type NotifySettingsRequest struct {
	IsChallenge *bool `json:"isChallenge"`
	IsEating    *bool `json:"isEating"`
	IsWorkout   *bool `json:"isWorkout"`
	IsWater     *bool `json:"isWater"`
	IsAdmin     *bool `json:"isAdmin"`
	IsHealth    *bool `json:"isHealth"`
}

// Profile is the user plus derived body metrics.
type Profile struct {
	models.User
	Age         int     `json:"age"`
	BMI         float64 `json:"bmi"`
	BMICategory string  `json:"bmi_category,omitempty"`
}

var userList = listSpec{
	sortable:    columns("full_name", "email", "username", "created_at"),
	defaultSort: "created_at",
	defaultDesc: true,
}

// List is the admin user listing; search matches full name or email.
func (s *UserService) List(q SearchQuery) (*Page[models.User], error) {
	db := s.db.Model(&models.User{})
	if term := strings.ToLower(strings.TrimSpace(q.Search)); term != "" {
		like := "%" + term + "%"
		db = db.Where("(LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?)", like, like)
	}
	db = applyEnum(db, "status", q.Status)
	return paginate[models.User](db, userList, q)
}

func (s *UserService) profile(u *models.User) *Profile {
	p := &Profile{User: *u}
	if u.DateOfBirth != nil {
		p.Age = utils.CalculateAge(*u.DateOfBirth, s.now())
	}
	if bmi, err := utils.CalculateBMI(u.Height, u.Weight); err == nil {
		p.BMI = bmi
		p.BMICategory = utils.BMICategory(bmi)
	}
	return p
}

func (s *UserService) Me(c utils.Caller) (*Profile, error) {
	u, err := first[models.User](s.db, c.ID, msgUserNotFound)
	if err != nil {
		return nil, err
	}
	return s.profile(u), nil
}

// resolveAvatar uploads data URIs and passes plain URLs through.
func (s *UserService) resolveAvatar(ctx context.Context, v string) (string, error) {
	if !strings.HasPrefix(v, "data:") {
		return v, nil
	}
	if s.storage == nil {
		return "", utils.BadRequest("avatar upload is not configured")
	}
	body, contentType, err := utils.DecodeDataURI(v)
	if err != nil {
		return "", utils.BadRequest(err.Error())
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", utils.BadRequest("avatar must be an image")
	}
	url, err := s.storage.Put(ctx, utils.ObjectKey("avatars", utils.ExtensionFor(contentType)), body, contentType)
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}
	return url, nil
}

func (s *UserService) UpdateMe(ctx context.Context, c utils.Caller, req UpdateMeRequest) (*Profile, error) {
	if _, err := first[models.User](s.db, c.ID, msgUserNotFound); err != nil {
		return nil, err
	}
	p := Patch{}
	setIf(p, "full_name", req.FullName)
	setIf(p, "username", req.Username)
	setIf(p, "gender", req.Gender)
	setIf(p, "height", req.Height)
	setIf(p, "weight", req.Weight)
	setIf(p, "goal_weight", req.GoalWeight)
	setIf(p, "level", req.Level)
	setIf(p, "activity_level", req.ActivityLevel)
	if req.DateOfBirth != nil {
		dob, _ := time.Parse(time.DateOnly, *req.DateOfBirth)
		p["date_of_birth"] = dob
	}
	if req.Avatar != nil {
		url, err := s.resolveAvatar(ctx, *req.Avatar)
		if err != nil {
			return nil, err
		}
		p["avatar"] = url
	}
	if err := applyPatch[models.User](s.db, c.ID, p); err != nil {
		if isDuplicate(err) {
			return nil, utils.Conflict(msgUsernameExists)
		}
		return nil, err
	}
	return s.Me(c)
}

func (s *UserService) UpdateNotifySettings(c utils.Caller, req NotifySettingsRequest) (*models.NotifySettings, error) {
	p := Patch{}
	setIf(p, "notify_is_challenge", req.IsChallenge)
	setIf(p, "notify_is_eating", req.IsEating)
	setIf(p, "notify_is_workout", req.IsWorkout)
	setIf(p, "notify_is_water", req.IsWater)
	setIf(p, "notify_is_admin", req.IsAdmin)
	setIf(p, "notify_is_health", req.IsHealth)
	if err := applyPatch[models.User](s.db, c.ID, p); err != nil {
		return nil, err
	}
	u, err := first[models.User](s.db, c.ID, msgUserNotFound)
	if err != nil {
		return nil, err
	}
	return &u.NotifySettings, nil
}

// SaveGoal stores the calorie goal produced by the recommendation endpoint.
func (s *UserService) SaveGoal(userID uint, g models.GoalDetail) error {
	return s.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"goal_start_date":  g.StartDate,
		"goal_target_date": g.TargetDate,
		"goal_days":        g.Days,
		"goal_goal":        g.Goal,
		"goal_progress":    g.Progress,
		"goal_status":      g.Status,
	}).Error
}

// Ban marks the user banned and revokes every refresh token.
func (s *UserService) Ban(id uint) error {
	u, err := first[models.User](s.db, id, msgUserNotFound)
	if err != nil {
		return err
	}
	if u.IsAdmin() {
		return utils.BadRequest(msgCannotBanAdmin)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(u).Updates(map[string]any{"status": models.UserStatusBan, "is_online": false}).Error
		if err != nil {
			return err
		}
		return tx.Where("user_id = ?", id).Delete(&models.RefreshToken{}).Error
	})
}

func (s *UserService) Unban(id uint) error {
	if _, err := first[models.User](s.db, id, msgUserNotFound); err != nil {
		return err
	}
	return s.db.Model(&models.User{}).Where("id = ?", id).Update("status", models.UserStatusNormal).Error
}
