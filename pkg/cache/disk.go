package cache

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pierrec/lz4/v4"
)

// blobVersion is the on-disk format version. Blobs with a different version
// are treated as misses and removed.
const blobVersion = 1

// ErrCorruptBlob reports a cold-tier file that cannot be decoded.
var ErrCorruptBlob = errors.New("cache: corrupt blob")

// blobHeader is the JSON preamble of a cold-tier file. The value payload
// that follows it is lz4-compressed.
type blobHeader struct {
	Version    int               `json:"version"`
	Key        string            `json:"key"`
	CreatedAt  time.Time         `json:"created_at"`
	TTLSeconds int64             `json:"ttl_seconds"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// diskTier is the cold tier: one file per entry, sharded by the first two
// key characters to keep directory fan-out manageable.
type diskTier struct {
	dir string
	now func() time.Time
}

func newDiskTier(dir string) (*diskTier, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}
	return &diskTier{dir: dir, now: time.Now}, nil
}

func (d *diskTier) path(key string) string {
	return filepath.Join(d.dir, key[:2], key+".blob")
}

// get loads and decodes an entry. Expired or corrupt blobs are deleted and
// reported as a miss; a corrupt blob additionally reports its decode error.
func (d *diskTier) get(key string) (*Entry, bool, error) {
	raw, err := os.ReadFile(d.path(key))
	if err != nil {
		return nil, false, nil
	}

	e, err := decodeBlob(raw)
	if err != nil {
		_ = os.Remove(d.path(key))
		return nil, false, err
	}
	if e.Key != key {
		_ = os.Remove(d.path(key))
		return nil, false, fmt.Errorf("%w: key mismatch", ErrCorruptBlob)
	}
	if e.Expired(d.now()) {
		_ = os.Remove(d.path(key))
		return nil, false, nil
	}
	return e, true, nil
}

// put writes the entry atomically: encode to a temp file in the shard
// directory, then rename into place.
func (d *diskTier) put(e *Entry) error {
	shard := filepath.Join(d.dir, e.Key[:2])
	if err := os.MkdirAll(shard, 0o755); err != nil {
		return fmt.Errorf("creating cache shard: %w", err)
	}

	raw, err := encodeBlob(e)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(shard, e.Key+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating cache blob: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing cache blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing cache blob: %w", err)
	}
	if err := os.Rename(tmp.Name(), d.path(e.Key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("installing cache blob: %w", err)
	}
	return nil
}

func (d *diskTier) delete(key string) {
	_ = os.Remove(d.path(key))
}

// bytes walks the shard directories and sums blob sizes. Called from Stats
// only, so the walk cost stays off the request path.
func (d *diskTier) bytes() int64 {
	var total int64
	_ = filepath.WalkDir(d.dir, func(path string, entry os.DirEntry, err error) error {
		if err != nil || entry.IsDir() || filepath.Ext(path) != ".blob" {
			return nil
		}
		if info, ierr := entry.Info(); ierr == nil {
			total += info.Size()
		}
		return nil
	})
	return total
}

// sweep removes every expired blob and returns how many were dropped.
func (d *diskTier) sweep() (int, error) {
	removed := 0
	now := d.now()
	err := filepath.WalkDir(d.dir, func(path string, entry os.DirEntry, err error) error {
		if err != nil || entry.IsDir() || filepath.Ext(path) != ".blob" {
			return err
		}
		raw, rerr := os.ReadFile(path)
		if rerr != nil {
			return nil
		}
		e, derr := decodeBlob(raw)
		if derr != nil || e.Expired(now) {
			if os.Remove(path) == nil {
				removed++
			}
		}
		return nil
	})
	return removed, err
}

func encodeBlob(e *Entry) ([]byte, error) {
	hdr, err := json.Marshal(blobHeader{
		Version:    blobVersion,
		Key:        e.Key,
		CreatedAt:  e.CreatedAt,
		TTLSeconds: int64(e.TTL / time.Second),
		Metadata:   e.Metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding blob header: %w", err)
	}

	var buf bytes.Buffer
	var lenPrefix [4]byte
	binary.BigEndian.PutUint32(lenPrefix[:], uint32(len(hdr)))
	buf.Write(lenPrefix[:])
	buf.Write(hdr)

	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(e.Value); err != nil {
		return nil, fmt.Errorf("compressing blob: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compressing blob: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeBlob(raw []byte) (*Entry, error) {
	if len(raw) < 4 {
		return nil, ErrCorruptBlob
	}
	hdrLen := binary.BigEndian.Uint32(raw[:4])
	if int(hdrLen) > len(raw)-4 {
		return nil, ErrCorruptBlob
	}

	var hdr blobHeader
	if err := json.Unmarshal(raw[4:4+hdrLen], &hdr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptBlob, err)
	}
	if hdr.Version != blobVersion {
		return nil, fmt.Errorf("%w: version %d", ErrCorruptBlob, hdr.Version)
	}

	zr := lz4.NewReader(bytes.NewReader(raw[4+hdrLen:]))
	value, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptBlob, err)
	}

	return &Entry{
		Key:       hdr.Key,
		Value:     value,
		Metadata:  hdr.Metadata,
		CreatedAt: hdr.CreatedAt,
		TTL:       time.Duration(hdr.TTLSeconds) * time.Second,
	}, nil
}
