// Package snapshot converts hive state to and from the persisted blob.
//
// Blobs are framed as a 4-byte magic, a BLAKE3-256 checksum of the payload,
// and the LZ4-compressed JSON document. Plain JSON blobs without the frame
// are accepted on read for saves exported from the browser game.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pierrec/lz4/v4"
	"lukechampine.com/blake3"

	"github.com/osse101/BuzzHive_Go/internal/domain"
	"github.com/osse101/BuzzHive_Go/internal/hive"
)

// FormatTag opens every encoded snapshot and names the blob layout
const FormatTag = "BZH1"

const (
	magic        = FormatTag
	checksumSize = 32
	headerSize   = len(magic) + checksumSize
)

// Codec encodes and decodes hive snapshots
type Codec struct {
	tuning hive.Tuning
}

// NewCodec creates a codec that fills missing fields from tuning
func NewCodec(tuning hive.Tuning) *Codec {
	return &Codec{tuning: tuning}
}

// Encode serializes s into a framed blob
func (c *Codec) Encode(s domain.HiveState) ([]byte, error) {
	raw, err := json.Marshal(toDocument(s))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	var body bytes.Buffer
	zw := lz4.NewWriter(&body)
	if _, err := zw.Write(raw); err != nil {
		return nil, fmt.Errorf("failed to compress snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress snapshot: %w", err)
	}

	sum := blake3.Sum256(body.Bytes())
	out := make([]byte, 0, headerSize+body.Len())
	out = append(out, magic...)
	out = append(out, sum[:]...)
	out = append(out, body.Bytes()...)
	return out, nil
}

// Decode parses a blob into a complete state. Fields absent from the blob
// take their starting values; now stamps saves that carry no timestamp.
// Any blob that cannot be parsed returns an error wrapping domain.ErrSnapshotCorrupt.
func (c *Codec) Decode(blob []byte, now time.Time) (domain.HiveState, error) {
	raw, err := unframe(blob)
	if err != nil {
		return domain.HiveState{}, err
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.HiveState{}, fmt.Errorf("%w: %v", domain.ErrSnapshotCorrupt, err)
	}
	return doc.toState(c.tuning, now), nil
}

func unframe(blob []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(blob)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return trimmed, nil
	}

	if len(blob) < headerSize || string(blob[:len(magic)]) != magic {
		return nil, fmt.Errorf("%w: unrecognized header", domain.ErrSnapshotCorrupt)
	}

	body := blob[headerSize:]
	sum := blake3.Sum256(body)
	if !bytes.Equal(sum[:], blob[len(magic):headerSize]) {
		return nil, fmt.Errorf("%w: checksum mismatch", domain.ErrSnapshotCorrupt)
	}

	raw, err := io.ReadAll(lz4.NewReader(bytes.NewReader(body)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSnapshotCorrupt, err)
	}
	return raw, nil
}
