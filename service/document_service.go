// file: service/document_service.go

package service

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"office-graph-api/document"
	"office-graph-api/logger"
	"office-graph-api/model"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrFileNotFound      = errors.New("file not found")
)

const fileTimestamp = "20060102T150405"

// GeneratedFile describes a document written to the output directory.
type GeneratedFile struct {
	Name   string
	Path   string
	Format model.Format
}

// DocumentService turns request content into office files on local disk.
type DocumentService struct {
	outputDir string
	emitters  map[model.Format]document.Emitter
	text      ITextGenerator
	now       func() time.Time

	mu     sync.RWMutex
	latest map[model.Format]GeneratedFile
}

func NewDocumentService(outputDir string, emitters map[model.Format]document.Emitter, text ITextGenerator) *DocumentService {
	return &DocumentService{
		outputDir: outputDir,
		emitters:  emitters,
		text:      text,
		now:       time.Now,
		latest:    make(map[model.Format]GeneratedFile),
	}
}

// ResolveFormat maps a requested format name onto a supported Format.
func (s *DocumentService) ResolveFormat(name string) (model.Format, error) {
	f, ok := model.ParseFormat(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
	if _, ok := s.emitters[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
	return f, nil
}

// Compose builds the document content. Sections win over body; when both
// are empty and a prompt is given, the body is generated from it first.
func (s *DocumentService) Compose(ctx context.Context, title, body, prompt string, sections []model.Section) (model.Document, error) {
	doc := model.Document{Title: title}
	switch {
	case len(sections) > 0:
		doc.Sections = sections
	case strings.TrimSpace(body) != "":
		doc.Sections = []model.Section{{Body: body}}
	case strings.TrimSpace(prompt) != "":
		if s.text == nil {
			return model.Document{}, ErrGenerationUnavailable
		}
		generated, err := s.text.Generate(ctx, prompt, 0)
		if err != nil {
			return model.Document{}, err
		}
		doc.Sections = []model.Section{{Body: generated}}
	}
	return doc, nil
}

// Generate renders doc in format f and writes it under a name no other
// request can produce: <kind>_<timestamp>_<8 hex>.<ext>.
func (s *DocumentService) Generate(f model.Format, doc model.Document) (*GeneratedFile, error) {
	emitter, ok := s.emitters[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
	}

	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	name := s.fileName(f)
	path := filepath.Join(s.outputDir, name)

	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", name, err)
	}

	w := bufio.NewWriter(out)
	err = emitter.Emit(w, doc)
	if err == nil {
		err = w.Flush()
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write %s: %w", name, err)
	}

	file := GeneratedFile{Name: name, Path: path, Format: f}
	s.mu.Lock()
	s.latest[f] = file
	s.mu.Unlock()

	logger.Log.WithFields(logrus.Fields{
		"file_name": name,
		"format":    f,
		"sections":  len(doc.Sections),
	}).Info("Document generated")
	return &file, nil
}

// Render emits doc in format f into memory without touching the output
// directory. The returned name follows the same scheme as Generate.
func (s *DocumentService) Render(f model.Format, doc model.Document) (string, *bytes.Buffer, error) {
	emitter, ok := s.emitters[f]
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
	}

	name := s.fileName(f)
	var buf bytes.Buffer
	if err := emitter.Emit(&buf, doc); err != nil {
		return "", nil, fmt.Errorf("failed to render %s: %w", name, err)
	}

	logger.Log.WithFields(logrus.Fields{
		"file_name": name,
		"format":    f,
		"bytes":     buf.Len(),
	}).Info("Document rendered")
	return name, &buf, nil
}

// fileName is <kind>_<UTC timestamp>_<8 hex>.<ext>.
func (s *DocumentService) fileName(f model.Format) string {
	return fmt.Sprintf("%s_%s_%s.%s", f.Kind(), s.now().UTC().Format(fileTimestamp), strings.ReplaceAll(uuid.NewString(), "-", "")[:8], f)
}

// Lookup resolves a bare file name inside the output directory.
func (s *DocumentService) Lookup(name string) (*GeneratedFile, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return nil, ErrFileNotFound
	}

	path := filepath.Join(s.outputDir, name)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, ErrFileNotFound
	}

	f, _ := model.ParseFormat(strings.TrimPrefix(filepath.Ext(name), "."))
	return &GeneratedFile{Name: name, Path: path, Format: f}, nil
}

// Latest returns the most recent file generated in format f by this process.
func (s *DocumentService) Latest(f model.Format) (*GeneratedFile, error) {
	s.mu.RLock()
	file, ok := s.latest[f]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrFileNotFound
	}
	if _, err := os.Stat(file.Path); err != nil {
		return nil, ErrFileNotFound
	}
	return &file, nil
}
