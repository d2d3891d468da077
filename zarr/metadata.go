package zarr

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/TuSKan/go-zarr/internal/codec"
)

// metadataKey is the store key of the array descriptor.
const metadataKey = ".zarray"

// CompressorConfig is the numcodecs-style compressor configuration stored in
// array metadata. A nil CompressorConfig means no compression.
//
// The zlib codec uses Level; the blosc codec uses Cname, Clevel, Shuffle and
// Blocksize.
type CompressorConfig struct {
	ID        string `json:"id"`
	Cname     string `json:"cname,omitempty"`
	Clevel    int    `json:"clevel,omitempty"`
	Shuffle   int    `json:"shuffle,omitempty"`
	Blocksize int    `json:"blocksize,omitempty"`
	Level     int    `json:"level,omitempty"`
}

// Metadata is the Zarr v2 .zarray descriptor. It is immutable once written;
// an array is only changed by a full rewrite.
type Metadata struct {
	ZarrFormat int                 `json:"zarr_format"`
	Shape      []int               `json:"shape"`
	Chunks     []int               `json:"chunks"`
	DType      string              `json:"dtype"`
	Compressor *CompressorConfig   `json:"compressor"`
	Filters    []*CompressorConfig `json:"filters"`
	FillValue  any                 `json:"fill_value"`
	Order      string              `json:"order"`
}

// ParseMetadata parses and validates a stored .zarray document.
func ParseMetadata(data []byte) (*Metadata, error) {
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: decoding .zarray: %v", ErrMetadata, err)
	}
	if err := m.check(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMetadata, err)
	}
	return &m, nil
}

// Encode validates the descriptor and serializes it as a .zarray document.
// Non-finite float fill values are written as the strings "NaN", "Infinity"
// and "-Infinity" per the v2 spec.
func (m *Metadata) Encode() ([]byte, error) {
	if err := m.check(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	out := *m
	if f, ok := m.FillValue.(float64); ok {
		switch {
		case math.IsNaN(f):
			out.FillValue = "NaN"
		case math.IsInf(f, 1):
			out.FillValue = "Infinity"
		case math.IsInf(f, -1):
			out.FillValue = "-Infinity"
		}
	}

	data, err := json.Marshal(&out)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding .zarray: %v", ErrValidation, err)
	}
	return data, nil
}

// Validate reports whether the descriptor is well formed: matching ranks,
// positive extents, a supported dtype and order, a known compressor with
// in-range parameters, and a fill value representable in the dtype.
func (m *Metadata) Validate() error {
	if err := m.check(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

func (m *Metadata) check() error {
	if m.ZarrFormat != 2 {
		return fmt.Errorf("field zarr_format: unsupported version %d, expected 2", m.ZarrFormat)
	}

	if len(m.Shape) != len(m.Chunks) {
		return fmt.Errorf("field chunks: rank %d does not match shape rank %d", len(m.Chunks), len(m.Shape))
	}
	for d, n := range m.Shape {
		if n <= 0 {
			return fmt.Errorf("field shape: dimension %d is %d, must be positive", d, n)
		}
	}
	for d, n := range m.Chunks {
		if n <= 0 {
			return fmt.Errorf("field chunks: dimension %d is %d, must be positive", d, n)
		}
	}

	dt, err := ParseDType(m.DType)
	if err != nil {
		return fmt.Errorf("field dtype: %v", err)
	}

	switch m.Order {
	case "C", "F":
	default:
		return fmt.Errorf("field order: %q, must be \"C\" or \"F\"", m.Order)
	}

	if len(m.Filters) != 0 {
		return fmt.Errorf("field filters: filter chains are not supported")
	}

	if _, err := codec.New(m.codecParams(dt.Size)); err != nil {
		return fmt.Errorf("field compressor: %v", err)
	}

	if _, err := fillBytes(m.FillValue, dt); err != nil {
		return fmt.Errorf("field fill_value: %v", err)
	}

	return nil
}

// codecParams maps the compressor configuration onto codec parameters for
// the given element width.
func (m *Metadata) codecParams(elemSize int) codec.Params {
	if m.Compressor == nil {
		return codec.Params{TypeSize: elemSize}
	}
	p := codec.Params{
		ID:       m.Compressor.ID,
		Cname:    m.Compressor.Cname,
		Shuffle:  m.Compressor.Shuffle,
		TypeSize: elemSize,
	}
	if m.Compressor.ID == "blosc" {
		p.Level = m.Compressor.Clevel
	} else {
		p.Level = m.Compressor.Level
	}
	return p
}

// dtype parses the descriptor's dtype tag.
func (m *Metadata) dtype() (DType, error) {
	return ParseDType(m.DType)
}

// numElements returns the element count of the logical array.
func (m *Metadata) numElements() int {
	n := 1
	for _, d := range m.Shape {
		n *= d
	}
	return n
}

// chunkElements returns the element count of one full chunk buffer.
func (m *Metadata) chunkElements() int {
	n := 1
	for _, d := range m.Chunks {
		n *= d
	}
	return n
}

func (m *Metadata) colMajor() bool {
	return m.Order == "F"
}
