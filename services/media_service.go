package services

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/tuonghuynh11/HealthAppAPI/utils"
)

const (
	MaxImageSize = 5 << 20 // Rekognition's inline image limit
	MaxVideoSize = 50 << 20

	msgUnsafeImage     = "image was rejected by moderation"
	msgNotAnImage      = "file is not an image"
	msgNotAVideo       = "file is not a video"
	msgMediaTooLarge   = "file is too large"
	msgMediaNotEnabled = "media storage is not configured"
)

// MediaService moderates images and stores media on object storage.
type MediaService struct {
	storage   utils.ObjectStorage
	moderator utils.ImageModerator
}

func NewMediaService(storage utils.ObjectStorage, moderator utils.ImageModerator) *MediaService {
	return &MediaService{storage: storage, moderator: moderator}
}

type MediaResult struct {
	URL    string   `json:"url"`
	Type   string   `json:"type"`
	Labels []string `json:"labels,omitempty"`
}

// sniff trusts the bytes over the client-declared type.
func sniff(body []byte) string {
	ct := http.DetectContentType(body)
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return ct
}

func (s *MediaService) UploadImage(ctx context.Context, body []byte) (*MediaResult, error) {
	if s.storage == nil {
		return nil, utils.BadRequest(msgMediaNotEnabled)
	}
	if len(body) > MaxImageSize {
		return nil, utils.BadRequest(msgMediaTooLarge)
	}
	ct := sniff(body)
	if !strings.HasPrefix(ct, "image/") {
		return nil, utils.BadRequest(msgNotAnImage)
	}
	if s.moderator != nil {
		labels, err := s.moderator.Moderate(ctx, body)
		if err != nil {
			return nil, err
		}
		if len(labels) > 0 {
			log.Printf("image rejected by moderation: %v", labels)
			return nil, utils.BadRequest(fmt.Sprintf("%s: %s", msgUnsafeImage, strings.Join(labels, ", ")))
		}
	}
	url, err := s.storage.Put(ctx, utils.ObjectKey("images", utils.ExtensionFor(ct)), body, ct)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	return &MediaResult{URL: url, Type: ct}, nil
}

// UploadVideo stores the file as-is; declared is used when sniffing is inconclusive.
func (s *MediaService) UploadVideo(ctx context.Context, body []byte, declared string) (*MediaResult, error) {
	if s.storage == nil {
		return nil, utils.BadRequest(msgMediaNotEnabled)
	}
	if len(body) > MaxVideoSize {
		return nil, utils.BadRequest(msgMediaTooLarge)
	}
	ct := sniff(body)
	if !strings.HasPrefix(ct, "video/") {
		ct = declared
	}
	if !strings.HasPrefix(ct, "video/") {
		return nil, utils.BadRequest(msgNotAVideo)
	}
	url, err := s.storage.Put(ctx, utils.ObjectKey("videos", utils.ExtensionFor(ct)), body, ct)
	if err != nil {
		return nil, fmt.Errorf("upload video: %w", err)
	}
	return &MediaResult{URL: url, Type: ct}, nil
}
