// Package export serializes enriched records and insight tables for the
// rendering layer. It is a thin serialization of the data model and not
// part of the algorithmic contract; compression is optional and chosen
// per call.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/vecscope/codec"
	"github.com/hupe1980/vecscope/insight"
	"github.com/hupe1980/vecscope/model"
)

// Compression selects the stream compression applied to exported bytes.
type Compression uint8

const (
	// CompressionNone writes plain bytes.
	CompressionNone Compression = iota
	// CompressionGzip writes a gzip stream.
	CompressionGzip
	// CompressionZstd writes a zstd stream.
	CompressionZstd
	// CompressionLZ4 writes an lz4 frame stream.
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// Options configures an export call. The zero value writes uncompressed
// JSON with the default codec.
type Options struct {
	Codec       codec.Codec
	Compression Compression
}

func (o Options) codec() codec.Codec {
	if o.Codec == nil {
		return codec.Default
	}
	return o.Codec
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func compressedWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case CompressionNone:
		return nopCloser{w}, nil
	case CompressionGzip:
		return gzip.NewWriter(w), nil
	case CompressionZstd:
		zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("zstd writer: %w", err)
		}
		return zw, nil
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported compression: %s", c)
	}
}

// WriteRecords encodes the enriched records with the configured codec and
// writes them through the configured compression.
func WriteRecords(w io.Writer, records []model.EnrichedRecord, o Options) error {
	return writeEncoded(w, records, o)
}

// WriteInsights encodes the insight table with the configured codec and
// writes it through the configured compression.
func WriteInsights(w io.Writer, insights []insight.ClusterInsight, o Options) error {
	return writeEncoded(w, insights, o)
}

func writeEncoded(w io.Writer, v any, o Options) error {
	data, err := o.codec().Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	cw, err := compressedWriter(w, o.Compression)
	if err != nil {
		return err
	}
	if _, err := cw.Write(data); err != nil {
		cw.Close()
		return fmt.Errorf("write: %w", err)
	}
	if err := cw.Close(); err != nil {
		return fmt.Errorf("close %s stream: %w", o.Compression, err)
	}

	return nil
}

// WriteRecordsCSV writes one row per enriched record with the columns the
// rendering layer consumes: id, x, y, cluster.
func WriteRecordsCSV(w io.Writer, records []model.EnrichedRecord, o Options) error {
	cw, err := compressedWriter(w, o.Compression)
	if err != nil {
		return err
	}

	csvw := csv.NewWriter(cw)
	if err := csvw.Write([]string{"id", "x", "y", "cluster"}); err != nil {
		cw.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.ID,
			strconv.FormatFloat(float64(rec.Point.X), 'g', -1, 32),
			strconv.FormatFloat(float64(rec.Point.Y), 'g', -1, 32),
			strconv.Itoa(rec.Cluster),
		}
		if err := csvw.Write(row); err != nil {
			cw.Close()
			return fmt.Errorf("write record %s: %w", rec.ID, err)
		}
	}
	csvw.Flush()
	if err := csvw.Error(); err != nil {
		cw.Close()
		return fmt.Errorf("flush csv: %w", err)
	}

	if err := cw.Close(); err != nil {
		return fmt.Errorf("close %s stream: %w", o.Compression, err)
	}

	return nil
}
