package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"arrowgraph/internal/diag"
	"arrowgraph/internal/diagram"
	"arrowgraph/internal/lint"
	"arrowgraph/internal/source"
)

// Bump when lintPayload or the lint rules change.
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит результаты линта по хешу содержимого файла.
// Safe for concurrent use; a nil *DiskCache is a valid, disabled cache.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

type notePayload struct {
	Start uint32 `msgpack:"s"`
	End   uint32 `msgpack:"e"`
	Msg   string `msgpack:"m"`
}

type diagnosticPayload struct {
	Severity diag.Severity `msgpack:"sev"`
	Code     diag.Code     `msgpack:"code"`
	Message  string        `msgpack:"msg"`
	Start    uint32        `msgpack:"s"`
	End      uint32        `msgpack:"e"`
	Notes    []notePayload `msgpack:"notes,omitempty"`
}

// lintPayload is what one cache entry holds.
type lintPayload struct {
	Schema      uint16              `msgpack:"schema"`
	Diagnostics []diagnosticPayload `msgpack:"diags"`
	Lines       int                 `msgpack:"lines"`
	Blank       int                 `msgpack:"blank"`
	Comments    int                 `msgpack:"comments"`
	Edges       int                 `msgpack:"edges"`
	Invalid     int                 `msgpack:"invalid"`
	Graph       diagram.Graph       `msgpack:"graph"`
}

// OpenDiskCache returns the cache under $XDG_CACHE_HOME/<app> (or ~/.cache/<app>).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache returns a cache rooted at dir, creating it if needed.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir reports where entries are stored.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// cacheKey mixes the schema, file hash and the options that change lint output.
func cacheKey(file *source.File, opts lint.Options) [32]byte {
	var hdr [4]byte
	binary.LittleEndian.PutUint16(hdr[:2], diskCacheSchemaVersion)
	if opts.NoWarnings {
		hdr[2] = 1
	}
	if opts.WarningsAsErrors {
		hdr[3] = 1
	}
	h := sha256.New()
	h.Write(hdr[:])
	h.Write(file.Hash[:])
	var key [32]byte
	copy(key[:], h.Sum(nil))
	return key
}

func (c *DiskCache) pathFor(key [32]byte) string {
	hexKey := hex.EncodeToString(key[:])
	// два символа на подкаталог, чтобы не держать тысячи файлов в одном
	return filepath.Join(c.dir, "lint", hexKey[:2], hexKey+".mp")
}

func (c *DiskCache) put(key [32]byte, payload *lintPayload) (err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// атомарная замена
	return os.Rename(f.Name(), p)
}

func (c *DiskCache) get(key [32]byte, out *lintPayload) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// lookup returns the cached payload for file, if any. Corrupt entries count as misses.
func (c *DiskCache) lookup(file *source.File, opts lint.Options) (*lintPayload, bool) {
	if c == nil {
		return nil, false
	}
	var payload lintPayload
	ok, err := c.get(cacheKey(file, opts), &payload)
	if err != nil || !ok {
		return nil, false
	}
	return &payload, true
}

func (c *DiskCache) store(file *source.File, opts lint.Options, bag *diag.Bag, sum lint.Summary) error {
	if c == nil {
		return nil
	}
	payload := &lintPayload{
		Schema:      diskCacheSchemaVersion,
		Diagnostics: make([]diagnosticPayload, 0, bag.Len()),
		Lines:       sum.Lines,
		Blank:       sum.Blank,
		Comments:    sum.Comments,
		Edges:       sum.Edges,
		Invalid:     sum.Invalid,
		Graph:       sum.Graph,
	}
	for _, d := range bag.Items() {
		dp := diagnosticPayload{
			Severity: d.Severity,
			Code:     d.Code,
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			dp.Notes = append(dp.Notes, notePayload{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		payload.Diagnostics = append(payload.Diagnostics, dp)
	}
	return c.put(cacheKey(file, opts), payload)
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "lint"))
}

// restore rebuilds diagnostics against the file's current id.
func (p *lintPayload) restore(id source.FileID) *diag.Bag {
	bag := diag.NewBag(0)
	for _, dp := range p.Diagnostics {
		d := &diag.Diagnostic{
			Severity: dp.Severity,
			Code:     dp.Code,
			Message:  dp.Message,
			Primary:  source.Span{File: id, Start: dp.Start, End: dp.End},
		}
		for _, n := range dp.Notes {
			d.Notes = append(d.Notes, diag.Note{Span: source.Span{File: id, Start: n.Start, End: n.End}, Msg: n.Msg})
		}
		bag.Add(d)
	}
	return bag
}

func (p *lintPayload) summary() lint.Summary {
	g := p.Graph
	if g.Nodes == nil {
		g.Nodes = []diagram.Node{}
	}
	if g.Edges == nil {
		g.Edges = []diagram.Edge{}
	}
	return lint.Summary{
		Lines:    p.Lines,
		Blank:    p.Blank,
		Comments: p.Comments,
		Edges:    p.Edges,
		Invalid:  p.Invalid,
		Graph:    g,
	}
}
