// Package library holds the phrase documents served by phrasebook serve.
package library

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/five82/phrasebook/internal/phrases"
)

// Pattern matches servable document names.
const Pattern = "phrases-*.json"

// Document is one validated phrase collection on disk.
type Document struct {
	Name    string
	Body    []byte
	ETag    string
	Phrases int
	ModTime time.Time
}

// ValidName reports whether name is a bare file name matching Pattern.
func ValidName(name string) bool {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return false
	}
	ok, err := filepath.Match(Pattern, name)
	return err == nil && ok
}

// ETag returns the strong entity tag for body.
func ETag(body []byte) string {
	sum := sha256.Sum256(body)
	return `"` + hex.EncodeToString(sum[:]) + `"`
}

// LoadDir reads every document matching Pattern in dir. Documents that fail
// to parse are skipped, named in failed, and reported in the joined error
// alongside the documents that did load.
func LoadDir(dir string) (docs map[string]Document, failed []string, err error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, nil, fmt.Errorf("open data dir: %w", err)
	}
	matches, err := filepath.Glob(filepath.Join(dir, Pattern))
	if err != nil {
		return nil, nil, fmt.Errorf("scan data dir: %w", err)
	}
	sort.Strings(matches)

	docs = make(map[string]Document, len(matches))
	var errs []error
	for _, path := range matches {
		doc, err := loadFile(path)
		if err != nil {
			failed = append(failed, filepath.Base(path))
			errs = append(errs, err)
			continue
		}
		docs[doc.Name] = doc
	}
	return docs, failed, errors.Join(errs...)
}

func loadFile(path string) (Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Document{}, fmt.Errorf("stat %s: %w", filepath.Base(path), err)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	coll, err := phrases.Decode(body)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return Document{
		Name:    filepath.Base(path),
		Body:    body,
		ETag:    ETag(body),
		Phrases: coll.Len(),
		ModTime: info.ModTime(),
	}, nil
}

// Snapshot is the library state at one reload.
type Snapshot struct {
	Documents           map[string]Document
	LastLoaded          time.Time
	LastError           error
	ConsecutiveFailures int
}

// Names returns the document names in sorted order.
func (s Snapshot) Names() []string {
	names := make([]string, 0, len(s.Documents))
	for name := range s.Documents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Store coordinates concurrent reloads and lookups.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored documents. A nil docs map with a non-nil err
// keeps the previous documents but records the failure.
func (s *Store) Update(docs map[string]Document, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(docs, err)
}

// Replace stores docs like Update, but a name listed in failed keeps its
// previous document so a file caught mid-write goes on serving its last
// good version.
func (s *Store) Replace(docs map[string]Document, failed []string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if docs != nil && len(failed) > 0 {
		docs = cloneDocs(docs)
		for _, name := range failed {
			prev, ok := s.snapshot.Documents[name]
			if _, loaded := docs[name]; ok && !loaded {
				docs[name] = prev
			}
		}
	}
	s.apply(docs, err)
}

func (s *Store) apply(docs map[string]Document, err error) {
	s.snapshot.LastLoaded = time.Now()
	if docs == nil && err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Documents = cloneDocs(docs)
	s.snapshot.LastError = err
	if err != nil {
		s.snapshot.ConsecutiveFailures++
	} else {
		s.snapshot.ConsecutiveFailures = 0
	}
}

// Lookup returns the named document.
func (s *Store) Lookup(name string) (Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.snapshot.Documents[name]
	return doc, ok
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Documents = cloneDocs(s.snapshot.Documents)
	return snap
}

func cloneDocs(docs map[string]Document) map[string]Document {
	dup := make(map[string]Document, len(docs))
	for k, v := range docs {
		dup[k] = v
	}
	return dup
}
