package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Import for image format support
	_ "image/jpeg" // Import for image format support
	_ "image/png"  // Import for image format support

	_ "golang.org/x/image/webp" // Sticker media is usually webp
)

// Raster holds the metadata of a decoded static image.
type Raster struct {
	Width     int
	Height    int
	SizeBytes int64
	MimeType  string
}

// DecodeRaster validates static media bytes and extracts their metadata.
func DecodeRaster(data []byte) (*Raster, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return &Raster{
		Width:     cfg.Width,
		Height:    cfg.Height,
		SizeBytes: int64(len(data)),
		MimeType:  formatToMimeType(format),
	}, nil
}

// DetectMimeType sniffs the MIME type from raw media bytes.
func DetectMimeType(data []byte) string {
	if len(data) < 4 {
		return "application/octet-stream"
	}

	// PNG signature
	if data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47 {
		return "image/png"
	}

	// JPEG signature
	if data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF {
		return "image/jpeg"
	}

	// GIF signature
	if data[0] == 0x47 && data[1] == 0x49 && data[2] == 0x46 {
		return "image/gif"
	}

	// WebP signature
	if len(data) >= 12 && data[0] == 0x52 && data[1] == 0x49 && data[2] == 0x46 && data[3] == 0x46 &&
		data[8] == 0x57 && data[9] == 0x45 && data[10] == 0x42 && data[11] == 0x50 {
		return "image/webp"
	}

	return "application/octet-stream"
}

func formatToMimeType(format string) string {
	switch format {
	case "png":
		return "image/png"
	case "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return "image/" + format
	}
}
