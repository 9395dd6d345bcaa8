package llm

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/liminalpurple/sticker-gallery/internal/media"
)

const describePrompt = `Describe this sticker in one short sentence for a gallery's accessibility label.
Aim for ~15 words, max 30 words unless the image contains text.
Focus on: main subject, emotion/action, distinctive shapes/colors, art style.
IMPORTANT: If there is any text visible in the image, include it verbatim.
Output ONLY the description - no markdown, no headers, no formatting.`

// DescribeSticker generates an accessibility description for static sticker
// media using Claude vision. The MIME type is sniffed from the bytes.
func (c *Client) DescribeSticker(ctx context.Context, imageData []byte) (string, error) {
	if len(imageData) == 0 {
		return "", fmt.Errorf("image data is empty")
	}

	mimeType := media.DetectMimeType(imageData)
	if !isImageMimeType(mimeType) {
		return "", fmt.Errorf("media is not a describable image: %s", mimeType)
	}

	base64Image := base64.StdEncoding.EncodeToString(imageData)

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewImageBlockBase64(mimeType, base64Image),
				anthropic.NewTextBlock(describePrompt),
			),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate description: %w", err)
	}

	if len(message.Content) == 0 {
		return "", fmt.Errorf("no content in response")
	}
	if message.Content[0].Type != "text" {
		return "", fmt.Errorf("unexpected response type: %s", message.Content[0].Type)
	}

	return message.Content[0].Text, nil
}

// isImageMimeType checks whether the MIME type is an image Claude can read
func isImageMimeType(mimeType string) bool {
	switch mimeType {
	case "image/png", "image/jpeg", "image/gif", "image/webp":
		return true
	}
	return false
}
