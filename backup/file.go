package backup

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
	"github.com/xyproto/unzip"

	"github.com/rustyeddy/tradebook/journal"
)

// WriteFile encodes the snapshot to path. A ".xz" extension selects xz
// compression, anything else gets plain JSON. The write goes through a temp
// file and rename so an interrupted export never clobbers an old backup.
func WriteFile(path string, snap Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".xz") {
		var buf bytes.Buffer
		w, err := xz.NewWriter(&buf)
		if err != nil {
			return fmt.Errorf("xz writer: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("compress snapshot: %w", err)
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("compress snapshot: %w", err)
		}
		data = buf.Bytes()
	}

	tmp := path + ".part"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// ReadFile decodes a snapshot from path. ".xz" files are decompressed and
// ".zip" archives (the usual shape of a shared backup) are extracted and
// searched for a snapshot; everything else is read as plain JSON.
func ReadFile(path string) (Snapshot, error) {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xz":
		data, err = readXZ(path)
	case ".zip":
		data, err = readZip(path)
	default:
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: read %s: %v", journal.ErrImport, path, err)
	}

	return Decode(data)
}

func readXZ(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := xz.NewReader(f)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}

func readZip(path string) ([]byte, error) {
	dir, err := os.MkdirTemp("", "tradebook-import-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	if err := unzip.Extract(path, dir); err != nil {
		return nil, err
	}

	var found string
	err = filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(p), ".json") {
			found = p
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == "" {
		return nil, fmt.Errorf("no snapshot .json inside archive")
	}
	return os.ReadFile(found)
}
