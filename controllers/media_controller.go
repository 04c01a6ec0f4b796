package controllers

import (
	"io"

	"github.com/tuonghuynh11/HealthAppAPI/services"
	"github.com/tuonghuynh11/HealthAppAPI/utils"

	"github.com/gin-gonic/gin"
)

type MediaController struct {
	Media *services.MediaService
}

func NewMediaController(s *services.MediaService) *MediaController {
	return &MediaController{Media: s}
}

// readFile loads a multipart field, refusing anything over max bytes.
func readFile(c *gin.Context, field string, max int64) ([]byte, string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, "", &utils.ValidationError{Errors: map[string]string{field: "is required"}}
	}
	if fh.Size > max {
		return nil, "", utils.BadRequest("file is too large")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	body, err := io.ReadAll(io.LimitReader(f, max+1))
	if err != nil {
		return nil, "", err
	}
	return body, fh.Header.Get("Content-Type"), nil
}

func (mc *MediaController) UploadImage(c *gin.Context) {
	body, _, err := readFile(c, "image", services.MaxImageSize)
	if err != nil {
		c.Error(err)
		return
	}
	out, err := mc.Media.UploadImage(c.Request.Context(), body)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Upload image success", out)
}

func (mc *MediaController) UploadVideo(c *gin.Context) {
	body, contentType, err := readFile(c, "video", services.MaxVideoSize)
	if err != nil {
		c.Error(err)
		return
	}
	out, err := mc.Media.UploadVideo(c.Request.Context(), body, contentType)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Upload video success", out)
}
