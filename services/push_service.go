package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/tuonghuynh11/HealthAppAPI/models"
	"github.com/tuonghuynh11/HealthAppAPI/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"gorm.io/gorm"
)

// Pusher sends a mobile push to every enabled device of a user.
type Pusher interface {
	PushToUser(ctx context.Context, userID uint, title, body string, data map[string]string) error
}

// SNSAPI is the subset of the SNS client used for device pushes.
type SNSAPI interface {
	CreatePlatformEndpoint(ctx context.Context, in *awssns.CreatePlatformEndpointInput, optFns ...func(*awssns.Options)) (*awssns.CreatePlatformEndpointOutput, error)
	Publish(ctx context.Context, in *awssns.PublishInput, optFns ...func(*awssns.Options)) (*awssns.PublishOutput, error)
}

type PushService struct {
	db             *gorm.DB
	sns            SNSAPI
	fcmPlatformArn string
}

func NewPushService(db *gorm.DB, client SNSAPI, fcmPlatformArn string) *PushService {
	return &PushService{db: db, sns: client, fcmPlatformArn: fcmPlatformArn}
}

type RegisterDeviceRequest struct {
	Platform string `json:"platform" binding:"required,oneof=android ios"`
	Token    string `json:"token" binding:"required"`
}

func tokenHash(tok string) string {
	h := sha256.Sum256([]byte(tok))
	return hex.EncodeToString(h[:])
}

func (p *PushService) platformArn(platform string) (string, error) {
	switch strings.ToLower(platform) {
	case "android", "ios":
		if p.fcmPlatformArn == "" {
			return "", errors.New("SNS_FCM_ARN not set")
		}
		return p.fcmPlatformArn, nil
	}
	return "", utils.BadRequest("unknown platform")
}

// RegisterDevice creates (or refreshes) the SNS endpoint for a device token.
func (p *PushService) RegisterDevice(ctx context.Context, userID uint, req RegisterDeviceRequest) (*models.UserDevice, error) {
	appArn, err := p.platformArn(req.Platform)
	if err != nil {
		return nil, err
	}
	out, err := p.sns.CreatePlatformEndpoint(ctx, &awssns.CreatePlatformEndpointInput{
		PlatformApplicationArn: aws.String(appArn),
		Token:                  aws.String(req.Token),
	})
	if err != nil {
		return nil, fmt.Errorf("create platform endpoint: %w", err)
	}

	hash := tokenHash(req.Token)
	var dev models.UserDevice
	err = p.db.Where("user_id = ? AND token_hash = ?", userID, hash).First(&dev).Error
	switch {
	case err == nil:
		dev.EndpointARN = aws.ToString(out.EndpointArn)
		dev.Platform = strings.ToLower(req.Platform)
		dev.Enabled = true
		dev.UpdatedAt = time.Now()
		if err := p.db.Save(&dev).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		dev = models.UserDevice{
			UserID:      userID,
			Platform:    strings.ToLower(req.Platform),
			TokenHash:   hash,
			EndpointARN: aws.ToString(out.EndpointArn),
			Enabled:     true,
		}
		if err := p.db.Create(&dev).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}
	return &dev, nil
}

// SetEnabled toggles push delivery for all of a user's devices.
func (p *PushService) SetEnabled(userID uint, enabled bool) error {
	return p.db.Model(&models.UserDevice{}).Where("user_id = ?", userID).Update("enabled", enabled).Error
}

// gcmPayload builds the SNS "json" message structure; the GCM value is itself a JSON string.
func gcmPayload(title, body string, data map[string]string) (string, error) {
	gcm, err := json.Marshal(map[string]any{
		"notification": map[string]string{"title": title, "body": body},
		"data":         data,
	})
	if err != nil {
		return "", err
	}
	raw, err := json.Marshal(map[string]string{"default": body, "GCM": string(gcm)})
	return string(raw), err
}

func (p *PushService) PushToUser(ctx context.Context, userID uint, title, body string, data map[string]string) error {
	var devices []models.UserDevice
	if err := p.db.Where("user_id = ? AND enabled = ?", userID, true).Find(&devices).Error; err != nil {
		return err
	}
	if len(devices) == 0 {
		return nil
	}
	msg, err := gcmPayload(title, body, data)
	if err != nil {
		return err
	}
	var errs []error
	for _, d := range devices {
		_, err := p.sns.Publish(ctx, &awssns.PublishInput{
			MessageStructure: aws.String("json"),
			Message:          aws.String(msg),
			TargetArn:        aws.String(d.EndpointARN),
		})
		if err != nil {
			log.Printf("sns publish to device %d: %v", d.ID, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
