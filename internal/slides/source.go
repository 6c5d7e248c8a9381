package slides

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Slide is one page of a presentation, addressable as an image file.
type Slide struct {
	Index int    // Position in the deck (0-based), the stable ordering key
	Path  string // Image file path
	MIME  string // "image/jpeg" or "image/png"
}

// Source supplies an ordered sequence of slide images from a folder and maps
// slide indices back to human-readable labels. How the images got there
// (manual export, deck conversion) is not its concern.
type Source struct {
	dir    string
	slides []Slide
}

// NewSource scans a directory for slide images in lexical filename order.
// A .pptx path is recognized and answered with export guidance rather than a
// bare failure: automatic deck conversion needs OS-level automation that this
// tool does not ship.
func NewSource(path string) (*Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("input path: %w", err)
	}

	if !info.IsDir() {
		if strings.EqualFold(filepath.Ext(path), ".pptx") {
			return nil, fmt.Errorf(
				"%s is a PowerPoint file; export its slides as images (File > Export > PNG/JPEG) and run deckaudit on that folder", path)
		}
		return nil, fmt.Errorf("input path %s is not a directory", path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read slide folder: %w", err)
	}

	var slides []Slide
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		mime, ok := mimeForExt(filepath.Ext(entry.Name()))
		if !ok {
			continue
		}
		slides = append(slides, Slide{
			Path: filepath.Join(path, entry.Name()),
			MIME: mime,
		})
	}

	// Lexical order matches how exported decks name their slides
	// (slide_01.jpg, slide_02.jpg, ...)
	sort.Slice(slides, func(i, j int) bool { return slides[i].Path < slides[j].Path })
	for i := range slides {
		slides[i].Index = i
	}

	return &Source{dir: path, slides: slides}, nil
}

// Dir returns the scanned folder path
func (s *Source) Dir() string {
	return s.dir
}

// Slides returns the ordered slide sequence
func (s *Source) Slides() []Slide {
	return s.slides
}

// Count returns the number of slides
func (s *Source) Count() int {
	return len(s.slides)
}

// Label maps a slide index to a human-readable label for reports
func (s *Source) Label(index int) string {
	if index < 0 || index >= len(s.slides) {
		return fmt.Sprintf("slide %d", index)
	}
	return filepath.Base(s.slides[index].Path)
}

// Labels returns one label per slide in order
func (s *Source) Labels() []string {
	labels := make([]string, len(s.slides))
	for i := range s.slides {
		labels[i] = s.Label(i)
	}
	return labels
}

// Read loads the raw image bytes for one slide
func (s *Source) Read(index int) ([]byte, error) {
	if index < 0 || index >= len(s.slides) {
		return nil, fmt.Errorf("slide index %d out of range", index)
	}
	data, err := os.ReadFile(s.slides[index].Path)
	if err != nil {
		return nil, fmt.Errorf("read slide %d: %w", index, err)
	}
	return data, nil
}

func mimeForExt(ext string) (string, bool) {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return "image/jpeg", true
	case ".png":
		return "image/png", true
	default:
		return "", false
	}
}
