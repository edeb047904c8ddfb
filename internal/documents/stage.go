// Package documents stages the supporting files attached to an application.
// The stage is an unordered set keyed by document category: uploading into a
// category that already holds a document evicts the old entry, so there is
// never more than one document per category.
package documents

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Category identifies one of the fixed document slots the application offers.
type Category string

const (
	CategoryPropertyDeed Category = "Property Deed"
	CategorySitePlan     Category = "Site Plan"
	CategoryPoolDesign   Category = "Pool Design"
)

// Categories returns the closed category set in display order.
func Categories() []Category {
	return []Category{CategoryPropertyDeed, CategorySitePlan, CategoryPoolDesign}
}

// KnownCategory reports whether cat belongs to the fixed category set.
func KnownCategory(cat Category) bool {
	for _, c := range Categories() {
		if c == cat {
			return true
		}
	}
	return false
}

// ErrUploadRead marks a failed attempt to read an uploaded file. The upload
// is dropped; any documents already staged in other categories are untouched.
var ErrUploadRead = errors.New("document upload could not be read")

// Document is one staged upload. Content is the raw file payload; Preview is
// a data URL set only for image files.
type Document struct {
	ID         string
	Name       string
	Category   Category
	Content    []byte
	Preview    string
	UploadedAt time.Time
}

// Stage holds the staged documents for the active application. Safe for use
// from concurrent file-read completions: replacement is last-writer-wins per
// category.
type Stage struct {
	mu      sync.Mutex
	entries map[Category]Document
	now     func() time.Time
	newID   func() string
}

// Option customizes a Stage during construction.
type Option func(*Stage)

// WithClock overrides the upload timestamp clock (primarily for tests).
func WithClock(clock func() time.Time) Option {
	return func(s *Stage) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the identity generator (primarily for tests).
func WithIDGenerator(gen func() string) Option {
	return func(s *Stage) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// NewStage creates an empty document stage.
func NewStage(opts ...Option) *Stage {
	s := &Stage{
		entries: make(map[Category]Document),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upload reads the file at path and stages it under category, replacing any
// document the category already holds.
func (s *Stage) Upload(category Category, path string) (Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %s: %v", ErrUploadRead, filepath.Base(path), err)
	}
	return s.Put(category, filepath.Base(path), content)
}

// Put stages an already-read payload under category. The previous entry for
// the category, if any, is evicted.
func (s *Stage) Put(category Category, name string, content []byte) (Document, error) {
	if !KnownCategory(category) {
		return Document{}, fmt.Errorf("documents: unknown category %q", category)
	}
	doc := Document{
		ID:         s.newID(),
		Name:       name,
		Category:   category,
		Content:    content,
		Preview:    imagePreview(name, content),
		UploadedAt: s.now(),
	}
	s.mu.Lock()
	s.entries[category] = doc
	s.mu.Unlock()
	return doc, nil
}

// Remove deletes the document with the given identity. Unknown identities
// are a no-op.
func (s *Stage) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for category, doc := range s.entries {
		if doc.ID == id {
			delete(s.entries, category)
			return
		}
	}
}

// Count returns the number of staged documents.
func (s *Stage) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Get returns the document staged under category, if any.
func (s *Stage) Get(category Category) (Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.entries[category]
	return doc, ok
}

// List returns the staged documents in category display order.
func (s *Stage) List() []Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	var docs []Document
	for _, category := range Categories() {
		if doc, ok := s.entries[category]; ok {
			docs = append(docs, doc)
		}
	}
	return docs
}

// CategoriesPresent returns the names of categories that hold a document,
// in display order. This is what the validation request carries; file bytes
// never leave the stage.
func (s *Stage) CategoriesPresent() []string {
	var present []string
	for _, doc := range s.List() {
		present = append(present, string(doc.Category))
	}
	return present
}

// Reset discards every staged document.
func (s *Stage) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[Category]Document)
}

var imageExtensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// imagePreview builds an inline data URL for image files so the review
// screen can show a thumbnail. Non-image files get no preview.
func imagePreview(name string, content []byte) string {
	mime, ok := imageExtensions[strings.ToLower(filepath.Ext(name))]
	if !ok {
		return ""
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(content)
}
