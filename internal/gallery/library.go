package gallery

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matjam/lazyimg/internal/imaging"
	"github.com/matjam/lazyimg/internal/respimg"
	"github.com/matjam/lazyimg/internal/types"
)

var ErrNotFound = errors.New("image not found")

type entry struct {
	descriptor respimg.Descriptor
	format     string
}

type variantKey struct {
	name   string
	width  int
	format types.Format
}

type variant struct {
	data   []byte
	format types.Format
}

// Library is the set of images served from one directory, with their
// descriptors, placeholders and resized variants cached in memory.
type Library struct {
	sync.Mutex
	dir              string
	images           []string // file names in display order
	entries          map[string]*entry
	variants         map[variantKey]variant
	placeholderWidth int
	shuffle          bool
}

func NewLibrary(dir string, placeholderWidth int) *Library {
	if placeholderWidth <= 0 {
		placeholderWidth = respimg.DefaultPlaceholderWidth
	}
	return &Library{
		dir:              dir,
		entries:          make(map[string]*entry),
		variants:         make(map[variantKey]variant),
		placeholderWidth: placeholderWidth,
	}
}

// SetShuffle makes every following Scan randomise the display order.
func (l *Library) SetShuffle(shuffle bool) {
	l.Lock()
	defer l.Unlock()
	l.shuffle = shuffle
}

// Scan reads the directory and replaces the image list with every decodable
// file in it.
func (l *Library) Scan() error {
	files, err := os.ReadDir(l.dir)
	if err != nil {
		return fmt.Errorf("error reading images directory: %w", err)
	}

	images := make([]string, 0, len(files))
	for _, f := range files {
		if f.IsDir() || !imaging.IsImageFile(f.Name()) {
			continue
		}
		images = append(images, f.Name())
	}

	l.Lock()
	defer l.Unlock()
	l.images = images
	l.entries = make(map[string]*entry)
	l.variants = make(map[variantKey]variant)
	if l.shuffle {
		l.shuffleLocked()
	}

	log.Infof("Found %d images in %s", len(images), l.dir)
	return nil
}

func (l *Library) Dir() string {
	return l.dir
}

func (l *Library) Images() []string {
	l.Lock()
	defer l.Unlock()
	return append([]string(nil), l.images...)
}

func (l *Library) Shuffle() {
	l.Lock()
	defer l.Unlock()
	l.shuffleLocked()
}

func (l *Library) shuffleLocked() {
	rand.Shuffle(len(l.images), func(i, j int) {
		l.images[i], l.images[j] = l.images[j], l.images[i]
	})
}

// Src is the URL the gallery serves name under.
func Src(name string) string {
	return "/img/" + url.PathEscape(name)
}

func (l *Library) path(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", ErrNotFound
	}

	l.Lock()
	defer l.Unlock()
	for _, img := range l.images {
		if img == name {
			return filepath.Join(l.dir, name), nil
		}
	}
	return "", ErrNotFound
}

// Descriptor returns the descriptor of name, including an inline
// placeholder thumbnail.
func (l *Library) Descriptor(name string) (respimg.Descriptor, error) {
	e, err := l.entry(name)
	if err != nil {
		return respimg.Descriptor{}, err
	}
	return e.descriptor, nil
}

func (l *Library) entry(name string) (*entry, error) {
	l.Lock()
	e, ok := l.entries[name]
	l.Unlock()
	if ok {
		return e, nil
	}

	path, err := l.path(name)
	if err != nil {
		return nil, err
	}

	img, format, err := imaging.Load(path)
	if err != nil {
		return nil, err
	}

	d := respimg.Descriptor{
		Src:    Src(name),
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}
	if d.Placeholder, err = imaging.Placeholder(img, l.placeholderWidth); err != nil {
		log.Warnf("Failed to build placeholder for %s: %v", name, err)
	}

	e = &entry{descriptor: d, format: format}
	l.Lock()
	l.entries[name] = e
	l.Unlock()

	log.Debugf("described %s (%dx%d %s)", name, d.Width, d.Height, format)
	return e, nil
}

// Variant returns name scaled to width pixels (0 for the natural size) and
// encoded as close to format as the server can manage. Requests that produce
// the same bytes share one cache entry: widths at or above the natural width
// collapse to 0 and the key holds the format actually encoded.
func (l *Library) Variant(name string, width int, format types.Format) ([]byte, types.Format, error) {
	e, err := l.entry(name)
	if err != nil {
		return nil, "", err
	}

	if width < 0 || width >= e.descriptor.Width {
		width = 0
	}
	out := imaging.OutputFormat(format, e.format)
	key := variantKey{name: name, width: width, format: out}

	l.Lock()
	v, ok := l.variants[key]
	l.Unlock()
	if ok {
		return v.data, v.format, nil
	}

	path, err := l.path(name)
	if err != nil {
		return nil, "", err
	}

	img, _, err := imaging.Load(path)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.ScaleToWidth(img, width), out); err != nil {
		return nil, "", err
	}

	l.Lock()
	l.variants[key] = variant{data: buf.Bytes(), format: out}
	l.Unlock()

	return buf.Bytes(), out, nil
}
