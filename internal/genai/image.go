package genai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Aspect ratios understood by GenerateImage.
const (
	AspectSquare    = "1:1"
	AspectLandscape = "16:9"
	AspectPortrait  = "9:16"
)

// ImageRequest is one portrait request to the image-generation collaborator.
type ImageRequest struct {
	Prompt      string
	AspectRatio string
}

// Image is a generated picture as base64 data.
type Image struct {
	Data     string
	MIMEType string
}

// DataURI renders the image for direct use in an <img> tag.
func (i Image) DataURI() string {
	return "data:" + i.MIMEType + ";base64," + i.Data
}

// ImageGenerator produces an image from a natural-language prompt.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req ImageRequest) (Image, error)
}

// sizeForAspect maps an aspect ratio hint onto a supported image size.
func sizeForAspect(aspect string) openai.ImageGenerateParamsSize {
	switch aspect {
	case AspectLandscape:
		return openai.ImageGenerateParamsSize1792x1024
	case AspectPortrait:
		return openai.ImageGenerateParamsSize1024x1792
	default:
		return openai.ImageGenerateParamsSize1024x1024
	}
}

// GenerateImage requests a single base64-encoded PNG.
func (c *Client) GenerateImage(ctx context.Context, req ImageRequest) (Image, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "genai.GenerateImage")
	defer span.End()
	span.SetAttributes(
		attribute.String("genai.provider", "openai"),
		attribute.String("genai.model", c.imageModel),
		attribute.String("genai.aspect_ratio", req.AspectRatio),
	)

	params := openai.ImageGenerateParams{
		Prompt:         req.Prompt,
		Model:          c.imageModel,
		N:              openai.Int(1),
		Size:           sizeForAspect(req.AspectRatio),
		ResponseFormat: openai.ImageGenerateParamsResponseFormatB64JSON,
	}
	slog.Debug("Client.GenerateImage: requesting image", "model", c.imageModel, "size", params.Size)
	resp, err := c.images.Generate(ctx, params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "image generation failed")
		return Image{}, fmt.Errorf("image generation: %w", err)
	}
	for _, img := range resp.Data {
		if img.B64JSON != "" {
			return Image{Data: img.B64JSON, MIMEType: "image/png"}, nil
		}
	}
	span.SetStatus(codes.Error, ErrNoImageData.Error())
	return Image{}, ErrNoImageData
}
