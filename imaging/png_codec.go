package imaging

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"golang.org/x/xerrors"
)

// PNGCodec implements Codec.
// It decodes any registered image format (png, jpeg, gif) and re-encodes as
// PNG. PNG is used for storage since it is lossless, so a cached image renders
// the same as a freshly fetched one.
type PNGCodec struct {
	encoder *png.Encoder
}

// NewPNGCodec creates a new PNGCodec
func NewPNGCodec() Codec {
	return &PNGCodec{
		encoder: &png.Encoder{
			CompressionLevel: png.DefaultCompression,
		},
	}
}

// GetFormatName returns the name of the storage encoding format
func (codec *PNGCodec) GetFormatName() string {
	return "png"
}

// DecodeImage decodes image data
func (codec *PNGCodec) DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, xerrors.Errorf("failed to decode image data (%d bytes): %w", len(data), err)
	}

	return img, nil
}

// EncodeImage encodes the image into PNG
func (codec *PNGCodec) EncodeImage(img image.Image) ([]byte, error) {
	buffer := &bytes.Buffer{}
	err := codec.encoder.Encode(buffer, img)
	if err != nil {
		return nil, xerrors.Errorf("failed to encode image to png: %w", err)
	}

	return buffer.Bytes(), nil
}
