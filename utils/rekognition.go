package utils

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

type ImageModerator interface {
	// Moderate returns the moderation labels found in the image; empty means clean.
	Moderate(ctx context.Context, image []byte) ([]string, error)
}

type RekognitionModerator struct {
	client        *rekognition.Client
	minConfidence float32
}

func NewRekognitionModerator(ctx context.Context, region string) (*RekognitionModerator, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config for rekognition: %w", err)
	}
	return &RekognitionModerator{client: rekognition.NewFromConfig(cfg), minConfidence: 75}, nil
}

func (r *RekognitionModerator) Moderate(ctx context.Context, image []byte) ([]string, error) {
	out, err := r.client.DetectModerationLabels(ctx, &rekognition.DetectModerationLabelsInput{
		Image:         &types.Image{Bytes: image},
		MinConfidence: aws.Float32(r.minConfidence),
	})
	if err != nil {
		return nil, fmt.Errorf("detect moderation labels: %w", err)
	}
	labels := make([]string, 0, len(out.ModerationLabels))
	for _, l := range out.ModerationLabels {
		labels = append(labels, aws.ToString(l.Name))
	}
	return labels, nil
}
