package imaging

import (
	"image"
)

// Codec decodes fetched image bytes into a renderable image and re-encodes
// decoded images into a stable binary format for storage
type Codec interface {
	// GetFormatName returns the name of the storage encoding format
	GetFormatName() string

	// DecodeImage decodes image data
	DecodeImage(data []byte) (image.Image, error)
	// EncodeImage encodes the image into the storage format
	EncodeImage(img image.Image) ([]byte, error)
}
