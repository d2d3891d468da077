// Fixture generator: writes the six reference codec configurations of a
// 4x4 float32 array (values 0..15, chunks 2x2) for conformance testing.
package main

import (
	"context"
	"encoding/binary"
	"flag"
	"math"
	"os"
	"path/filepath"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	_ "gocloud.dev/blob/fileblob"

	"github.com/TuSKan/go-zarr/zarr"
)

type variation struct {
	name       string
	compressor *zarr.CompressorConfig
}

var variations = []variation{
	{"uncompressed", nil},
	{"zlib", &zarr.CompressorConfig{ID: "zlib", Level: 1}},
	{"blosc_lz4", &zarr.CompressorConfig{ID: "blosc", Cname: "lz4", Clevel: 5, Shuffle: 0}},
	{"blosc_zstd", &zarr.CompressorConfig{ID: "blosc", Cname: "zstd", Clevel: 1, Shuffle: 0}},
	{"blosc_zstd_shuffle", &zarr.CompressorConfig{ID: "blosc", Cname: "zstd", Clevel: 1, Shuffle: 1}},
	{"blosc_zstd_bitshuffle", &zarr.CompressorConfig{ID: "blosc", Cname: "zstd", Clevel: 1, Shuffle: 2}},
}

func main() {
	dir := flag.String("dir", "data", "output directory for the generated arrays")
	flag.Parse()

	logger := level.NewFilter(log.NewLogfmtLogger(os.Stderr), level.AllowInfo())

	// 4x4 float32, row-major, values 0.0 through 15.0.
	data := make([]byte, 16*4)
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(float32(i)))
	}

	ctx := context.Background()
	for _, v := range variations {
		if err := generate(ctx, *dir, v, data); err != nil {
			level.Error(logger).Log("msg", "generation failed", "name", v.name, "err", err)
			os.Exit(1)
		}
		level.Info(logger).Log("msg", "generated", "array", v.name+".zarr")
	}
}

func generate(ctx context.Context, dir string, v variation, data []byte) error {
	path := filepath.Join(dir, v.name+".zarr")
	if err := os.RemoveAll(path); err != nil {
		return err
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	meta := &zarr.Metadata{
		ZarrFormat: 2,
		Shape:      []int{4, 4},
		Chunks:     []int{2, 2},
		DType:      "<f4",
		Compressor: v.compressor,
		FillValue:  float64(0),
		Order:      "C",
	}

	a, err := zarr.Create(ctx, "file://"+filepath.ToSlash(abs), meta)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Write(ctx, data)
}
