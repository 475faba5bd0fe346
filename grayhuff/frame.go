package grayhuff

import (
	"fmt"

	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"

	"github.com/cocosip/go-huffman-codec/codec"
)

// FrameCodec applies a Codec to every frame of DICOM pixel data
type FrameCodec struct {
	codec *Codec
}

// NewFrameCodec wraps c. A nil c uses a codec with default options.
func NewFrameCodec(c *Codec) *FrameCodec {
	if c == nil {
		c = New()
	}
	return &FrameCodec{codec: c}
}

// Encode compresses each frame of src into one container and appends it to dst
func (f *FrameCodec) Encode(src, dst imagetypes.PixelData, opts *Options) error {
	if src == nil || dst == nil {
		return fmt.Errorf("source and destination PixelData cannot be nil")
	}
	frameInfo, err := checkFrameInfo(src.GetFrameInfo())
	if err != nil {
		return err
	}

	var options codec.Options
	if opts != nil {
		options = opts
	}

	frameCount := src.FrameCount()
	for frameIndex := 0; frameIndex < frameCount; frameIndex++ {
		frameData, err := src.GetFrame(frameIndex)
		if err != nil {
			return fmt.Errorf("failed to get frame %d: %w", frameIndex, err)
		}
		if len(frameData) == 0 {
			return fmt.Errorf("frame %d pixel data is empty", frameIndex)
		}

		encoded, err := f.codec.Encode(codec.EncodeParams{
			PixelData:  frameData,
			Width:      int(frameInfo.Width),
			Height:     int(frameInfo.Height),
			Components: 1,
			BitDepth:   8,
			Options:    options,
		})
		if err != nil {
			return fmt.Errorf("huffman encode failed for frame %d: %w", frameIndex, err)
		}

		if err := dst.AddFrame(encoded); err != nil {
			return fmt.Errorf("failed to add encoded frame %d: %w", frameIndex, err)
		}
	}
	return nil
}

// Decode reconstructs each container frame of src and appends the pixels to dst
func (f *FrameCodec) Decode(src, dst imagetypes.PixelData) error {
	if src == nil || dst == nil {
		return fmt.Errorf("source and destination PixelData cannot be nil")
	}
	frameInfo, err := checkFrameInfo(src.GetFrameInfo())
	if err != nil {
		return err
	}

	frameCount := src.FrameCount()
	for frameIndex := 0; frameIndex < frameCount; frameIndex++ {
		frameData, err := src.GetFrame(frameIndex)
		if err != nil {
			return fmt.Errorf("failed to get frame %d: %w", frameIndex, err)
		}

		result, err := f.codec.Decode(frameData)
		if err != nil {
			return fmt.Errorf("huffman decode failed for frame %d: %w", frameIndex, err)
		}

		if result.Width != int(frameInfo.Width) || result.Height != int(frameInfo.Height) {
			return fmt.Errorf("decoded dimensions (%dx%d) don't match expected (%dx%d)",
				result.Width, result.Height, frameInfo.Width, frameInfo.Height)
		}

		if err := dst.AddFrame(result.PixelData); err != nil {
			return fmt.Errorf("failed to add decoded frame %d: %w", frameIndex, err)
		}
	}
	return nil
}

// checkFrameInfo accepts unsigned single-sample frames stored in one byte
func checkFrameInfo(frameInfo *imagetypes.FrameInfo) (*imagetypes.FrameInfo, error) {
	if frameInfo == nil {
		return nil, fmt.Errorf("failed to get frame info from source pixel data")
	}
	if frameInfo.SamplesPerPixel != 1 {
		return nil, fmt.Errorf("%w: %d samples per pixel", codec.ErrUnsupportedFormat, frameInfo.SamplesPerPixel)
	}
	if frameInfo.BitsAllocated != 8 || frameInfo.BitsStored == 0 || frameInfo.BitsStored > 8 {
		return nil, fmt.Errorf("%w: BitsAllocated=%d BitsStored=%d",
			codec.ErrUnsupportedFormat, frameInfo.BitsAllocated, frameInfo.BitsStored)
	}
	if frameInfo.PixelRepresentation != 0 {
		return nil, fmt.Errorf("%w: signed pixel data", codec.ErrUnsupportedFormat)
	}
	return frameInfo, nil
}
