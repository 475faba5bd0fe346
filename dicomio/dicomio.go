// Package dicomio reads 8-bit grayscale frames out of DICOM files.
package dicomio

import (
	"errors"
	"fmt"

	"github.com/cocosip/go-dicom/pkg/dicom/parser"
	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
	dicomimaging "github.com/cocosip/go-dicom/pkg/imaging"
	"github.com/cocosip/go-dicom/pkg/imaging/codec"

	"github.com/cocosip/go-huffman-codec/huffman"
)

var (
	// ErrUnsupportedPixelFormat is returned for pixel data that is not
	// single-sample with 8 bits allocated
	ErrUnsupportedPixelFormat = errors.New("unsupported pixel format")

	// ErrNoFrames is returned when the dataset carries no frames
	ErrNoFrames = errors.New("no frames in pixel data")
)

// Image is the pixel content of one DICOM file
type Image struct {
	TransferSyntax string
	BitsStored     int

	// Shifted is set when signed samples were offset by 2^(BitsStored-1)
	Shifted bool

	Frames []*huffman.Grid
}

// Format describes the sample layout of DICOM pixel data
type Format struct {
	Rows                int
	Cols                int
	SamplesPerPixel     int
	BitsAllocated       int
	BitsStored          int
	PixelRepresentation int
}

// Check accepts single-sample data with one byte per sample
func (f Format) Check() error {
	if f.Rows <= 0 || f.Cols <= 0 {
		return fmt.Errorf("%w: %dx%d", huffman.ErrInvalidDimensions, f.Rows, f.Cols)
	}
	if f.SamplesPerPixel != 1 {
		return fmt.Errorf("%w: %d samples per pixel", ErrUnsupportedPixelFormat, f.SamplesPerPixel)
	}
	if f.BitsAllocated != 8 || f.BitsStored < 1 || f.BitsStored > 8 {
		return fmt.Errorf("%w: BitsAllocated=%d BitsStored=%d", ErrUnsupportedPixelFormat, f.BitsAllocated, f.BitsStored)
	}
	if f.PixelRepresentation != 0 && f.PixelRepresentation != 1 {
		return fmt.Errorf("%w: PixelRepresentation=%d", ErrUnsupportedPixelFormat, f.PixelRepresentation)
	}
	return nil
}

// Load parses a DICOM file and returns one grid per frame.
// Encapsulated transfer syntaxes are transcoded to Explicit VR Little
// Endian first, which needs a decoder for that syntax registered with go-dicom.
func Load(path string) (*Image, error) {
	res, err := parser.ParseFile(path, parser.WithReadOption(parser.ReadAll))
	if err != nil {
		return nil, fmt.Errorf("parsing DICOM %s: %w", path, err)
	}

	ds := res.Dataset
	if res.TransferSyntax.IsEncapsulated() {
		tr := codec.NewTranscoder(res.TransferSyntax, transfer.ExplicitVRLittleEndian)
		ds, err = tr.Transcode(ds)
		if err != nil {
			return nil, fmt.Errorf("transcoding %s to explicit little endian: %w", path, err)
		}
	}

	pd, err := dicomimaging.CreatePixelData(ds)
	if err != nil {
		return nil, fmt.Errorf("reading pixel data of %s: %w", path, err)
	}

	info := pd.Info
	format := Format{
		Rows:                int(info.Height),
		Cols:                int(info.Width),
		SamplesPerPixel:     int(info.SamplesPerPixel),
		BitsAllocated:       int(info.BitsAllocated),
		BitsStored:          int(info.BitsStored),
		PixelRepresentation: int(info.PixelRepresentation),
	}
	frames, err := Frames(format, pd.FrameCount(), pd.GetFrame)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &Image{
		TransferSyntax: res.TransferSyntax.UID().UID(),
		BitsStored:     format.BitsStored,
		Shifted:        format.PixelRepresentation == 1,
		Frames:         frames,
	}, nil
}

// Frames converts count frames fetched through getFrame to grids of the given format.
// Signed samples are shifted into the unsigned range.
func Frames(format Format, count int, getFrame func(int) ([]byte, error)) ([]*huffman.Grid, error) {
	if err := format.Check(); err != nil {
		return nil, err
	}
	if count <= 0 {
		return nil, ErrNoFrames
	}

	size := format.Rows * format.Cols
	grids := make([]*huffman.Grid, 0, count)
	for i := 0; i < count; i++ {
		data, err := getFrame(i)
		if err != nil {
			return nil, fmt.Errorf("failed to get frame %d: %w", i, err)
		}
		// Native pixel data may carry a pad byte to reach even length
		if len(data) == size+1 {
			data = data[:size]
		}
		if format.PixelRepresentation == 1 {
			data = signedToUnsigned(data, format.BitsStored)
		}
		g, err := huffman.GridFromPixels(format.Rows, format.Cols, data)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		grids = append(grids, g)
	}
	return grids, nil
}
