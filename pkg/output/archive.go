package output

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"

	"github.com/rt1we/go-raytracer/pkg/core"
	"github.com/rt1we/go-raytracer/pkg/renderer"
)

var archiveNameCleaner = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// ArchiveManifest describes the archive bundle layout so tooling can
// locate the artefacts
type ArchiveManifest struct {
	Version    int    `json:"version"`
	CreatedAt  string `json:"created_at"`
	EventsPath string `json:"events_path"`
	FramesPath string `json:"frames_path"`
}

// ArchiveWriter persists render results as a compressed bundle: raw
// framebuffers in a zstd stream, a snappy-compressed JSONL event log, and
// a manifest. Useful for diffing renders at full float precision, which
// 8-bit image formats cannot do.
type ArchiveWriter struct {
	mu          sync.Mutex
	dir         string
	eventFile   *os.File
	eventStream *snappy.Writer
	frameFile   *os.File
	frameStream *zstd.Encoder
}

// NewArchiveWriter prepares the archive directory and opens the
// compressed sinks
func NewArchiveWriter(root, name string) (*ArchiveWriter, ArchiveManifest, error) {
	if root == "" {
		return nil, ArchiveManifest{}, fmt.Errorf("archive root must be provided")
	}

	cleaned := archiveNameCleaner.ReplaceAllString(name, "")
	if cleaned == "" {
		cleaned = "render"
	}
	created := time.Now().UTC()
	folder := fmt.Sprintf("%s-%s", cleaned, created.Format("20060102T150405Z"))
	path := filepath.Join(root, folder)

	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, ArchiveManifest{}, err
	}

	eventsPath := filepath.Join(path, "events.jsonl.sz")
	framesPath := filepath.Join(path, "frames.bin.zst")
	manifestPath := filepath.Join(path, "manifest.json")

	eventFile, err := os.Create(eventsPath)
	if err != nil {
		return nil, ArchiveManifest{}, err
	}
	eventStream := snappy.NewBufferedWriter(eventFile)

	frameFile, err := os.Create(framesPath)
	if err != nil {
		eventFile.Close()
		return nil, ArchiveManifest{}, err
	}
	frameStream, err := zstd.NewWriter(frameFile)
	if err != nil {
		eventStream.Close()
		eventFile.Close()
		frameFile.Close()
		return nil, ArchiveManifest{}, err
	}

	manifest := ArchiveManifest{
		Version:    1,
		CreatedAt:  created.Format(time.RFC3339Nano),
		EventsPath: "events.jsonl.sz",
		FramesPath: "frames.bin.zst",
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err == nil {
		err = os.WriteFile(manifestPath, data, 0o644)
	}
	if err != nil {
		frameStream.Close()
		frameFile.Close()
		eventStream.Close()
		eventFile.Close()
		return nil, ArchiveManifest{}, err
	}

	return &ArchiveWriter{
		dir:         path,
		eventFile:   eventFile,
		eventStream: eventStream,
		frameFile:   frameFile,
		frameStream: frameStream,
	}, manifest, nil
}

// Directory returns the directory backing the archive bundle
func (w *ArchiveWriter) Directory() string {
	return w.dir
}

// AppendEvent writes one JSON line to the compressed event log
func (w *ArchiveWriter) AppendEvent(eventType string, payload any) error {
	record := struct {
		CapturedAt string `json:"captured_at"`
		Type       string `json:"type"`
		Payload    any    `json:"payload"`
	}{
		CapturedAt: time.Now().UTC().Format(time.RFC3339Nano),
		Type:       eventType,
		Payload:    payload,
	}

	line, err := json.Marshal(record)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.eventStream.Write(line); err != nil {
		return err
	}
	if _, err := w.eventStream.Write([]byte("\n")); err != nil {
		return err
	}
	return w.eventStream.Flush()
}

// AppendFramebuffer writes a full-precision framebuffer to the zstd
// stream: width and height as uint32, then float32 RGB triples in
// row-major order, all little-endian
func (w *ArchiveWriter) AppendFramebuffer(fb *renderer.Framebuffer) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	header := make([]byte, 8)
	binary.LittleEndian.PutUint32(header[0:4], uint32(fb.Width))
	binary.LittleEndian.PutUint32(header[4:8], uint32(fb.Height))
	if _, err := w.frameStream.Write(header); err != nil {
		return err
	}

	buf := make([]byte, len(fb.Pixels)*12)
	for i, p := range fb.Pixels {
		binary.LittleEndian.PutUint32(buf[i*12:], floatBits(p.X))
		binary.LittleEndian.PutUint32(buf[i*12+4:], floatBits(p.Y))
		binary.LittleEndian.PutUint32(buf[i*12+8:], floatBits(p.Z))
	}
	_, err := w.frameStream.Write(buf)
	return err
}

// Close flushes all buffers and releases file handles, surfacing the
// first failure
func (w *ArchiveWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var firstErr error
	if err := w.eventStream.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := w.eventFile.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := w.frameStream.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := w.frameFile.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// ReadFramebuffers decodes every framebuffer from a frames.bin.zst file
// written by AppendFramebuffer
func ReadFramebuffers(path string) ([]*renderer.Framebuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()

	var frames []*renderer.Framebuffer
	for {
		header := make([]byte, 8)
		if _, err := io.ReadFull(dec, header); err != nil {
			if err == io.EOF {
				return frames, nil
			}
			return nil, fmt.Errorf("frame header: %w", err)
		}

		width := int(binary.LittleEndian.Uint32(header[0:4]))
		height := int(binary.LittleEndian.Uint32(header[4:8]))
		if width <= 0 || height <= 0 || width*height > 1<<28 {
			return nil, fmt.Errorf("implausible frame dimensions %dx%d", width, height)
		}

		buf := make([]byte, width*height*12)
		if _, err := io.ReadFull(dec, buf); err != nil {
			return nil, fmt.Errorf("frame pixels: %w", err)
		}

		fb := renderer.NewFramebuffer(width, height)
		for i := range fb.Pixels {
			fb.Pixels[i] = core.NewVec3(
				bitsFloat(binary.LittleEndian.Uint32(buf[i*12:])),
				bitsFloat(binary.LittleEndian.Uint32(buf[i*12+4:])),
				bitsFloat(binary.LittleEndian.Uint32(buf[i*12+8:])),
			)
		}
		frames = append(frames, fb)
	}
}
