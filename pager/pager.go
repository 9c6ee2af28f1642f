// Package pager implements a lazily populated, never evicting page cache on
// top of a random access file. Pages are loaded on first touch and written
// back only when explicitly flushed.
package pager

import (
	"fmt"
	stdio "io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/spy16/rowdb/io"
	"github.com/spy16/rowdb/row"
)

// OpenFile opens (or creates) the named file and returns a pager for it. If
// the path is ":memory:" the pager is backed by an ephemeral in-memory file.
// If 'opts' is nil, DefaultOptions are used.
func OpenFile(filePath string, opts *Options) (*Pager, error) {
	if opts == nil {
		o := DefaultOptions
		opts = &o
	}
	opts.init()

	f, err := io.OpenFile(filePath, opts.fileFlag(), opts.FileMode)
	if err != nil {
		return nil, err
	}

	p, err := Open(f, opts)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return p, nil
}

// Open returns a pager for an already open file. The pager takes ownership
// of the file and closes it on Close.
func Open(file io.File, opts *Options) (*Pager, error) {
	if opts == nil {
		o := DefaultOptions
		opts = &o
	}
	opts.init()

	size, err := file.Size()
	if err != nil {
		return nil, err
	}

	if opts.MMap {
		if err := file.MMap(); err != nil {
			return nil, err
		}
	}

	p := &Pager{
		file:     file,
		log:      opts.Log.WithField("file", file.Name()),
		pageSize: opts.PageSize,
		maxPages: opts.MaxPages,
		readOnly: opts.ReadOnly,
		fileLen:  size,
	}
	if p.maxPages > 0 {
		p.pages = make([]*Page, 0, p.maxPages)
	}

	p.log.WithFields(logrus.Fields{
		"bytes":     size,
		"page_size": p.pageSize,
	}).Debug("pager opened")
	return p, nil
}

// Pager owns the backing file and every page buffer it has allocated. A
// Pager is NOT safe for concurrent use.
type Pager struct {
	file     io.File
	log      logrus.FieldLogger
	pageSize int
	maxPages int
	readOnly bool
	closed   bool

	// fileLen tracks the file length as extended by flushes.
	fileLen int64

	// pages is indexed by page number; nil entries are not loaded yet.
	pages []*Page

	// i/o tracking
	loads        int
	allocs       int
	flushes      int
	bytesFlushed int64
}

// GetPage returns the buffer for the page with given number, loading it
// from the file on first reference. Pages past the end of the file come
// back zero filled. The same *Page is returned for every call with the
// same number.
func (p *Pager) GetPage(pageNum int) (*Page, error) {
	if p.closed {
		return nil, os.ErrClosed
	} else if pageNum < 0 || (p.maxPages > 0 && pageNum >= p.maxPages) {
		return nil, errors.Wrapf(ErrPageOutOfBounds, "page %d (max %d)", pageNum, p.maxPages)
	}

	if pg := p.cached(pageNum); pg != nil {
		return pg, nil
	}

	pg := &Page{
		num:  pageNum,
		data: make([]byte, p.pageSize),
	}
	p.allocs++

	if int64(pageNum) < p.filePages() {
		if err := p.load(pg); err != nil {
			return nil, err
		}
	}

	if pageNum >= len(p.pages) {
		p.pages = append(p.pages, make([]*Page, pageNum+1-len(p.pages))...)
	}
	p.pages[pageNum] = pg
	return pg, nil
}

// Flush writes the first n bytes of the cached page to the file at the
// page's offset. The buffer remains cached.
func (p *Pager) Flush(pageNum int, n int) error {
	if p.closed {
		return os.ErrClosed
	} else if p.readOnly {
		return errors.Wrapf(io.ErrReadOnly, "flush page %d", pageNum)
	}

	pg := p.cached(pageNum)
	if pg == nil {
		return errors.Wrapf(ErrPageNotCached, "flush page %d", pageNum)
	} else if n < 0 || n > p.pageSize {
		return errors.Wrapf(ErrInvalidFlushSize, "flush page %d: %d bytes (page size %d)",
			pageNum, n, p.pageSize)
	}

	off := p.offset(pageNum)
	if _, err := p.file.WriteAt(pg.data[:n], off); err != nil {
		return errors.Wrapf(err, "write page %d at offset %d", pageNum, off)
	}

	if end := off + int64(n); end > p.fileLen {
		p.fileLen = end
	}
	p.flushes++
	p.bytesFlushed += int64(n)

	p.log.WithFields(logrus.Fields{
		"page":  pageNum,
		"bytes": n,
	}).Debug("page flushed")
	return nil
}

// Release drops the cached buffer for the page without writing it. The
// next GetPage for the number loads it again.
func (p *Pager) Release(pageNum int) {
	if pageNum >= 0 && pageNum < len(p.pages) {
		p.pages[pageNum] = nil
	}
}

// Cached returns true if the page with given number is resident.
func (p *Pager) Cached(pageNum int) bool { return p.cached(pageNum) != nil }

// PageSize returns the size of one page used by pager.
func (p *Pager) PageSize() int { return p.pageSize }

// MaxPages returns the page ceiling, 0 if unbounded.
func (p *Pager) MaxPages() int { return p.maxPages }

// FileLength returns the length of the backing file as known to the
// pager: its size at open, extended by any flushes since.
func (p *Pager) FileLength() int64 { return p.fileLen }

// Close releases every cached buffer without writing it, syncs and closes
// the underlying file. Callers flush what they want persisted first.
func (p *Pager) Close() error {
	if p.closed {
		return nil
	}

	dropped := p.residentCount()
	p.pages = nil
	p.closed = true

	p.log.WithFields(logrus.Fields{
		"dropped": dropped,
		"bytes":   p.fileLen,
	}).Debug("pager closing")

	if err := p.file.Sync(); err != nil {
		_ = p.file.Close()
		return errors.Wrapf(err, "sync %s", p.file.Name())
	}
	if err := p.file.Close(); err != nil {
		return errors.Wrapf(err, "close %s", p.file.Name())
	}
	return nil
}

// Stats returns i/o stats collected by this pager.
func (p *Pager) Stats() Stats {
	return Stats{
		Name:         p.file.Name(),
		PageSize:     p.pageSize,
		MaxPages:     p.maxPages,
		FileSize:     p.fileLen,
		Cached:       p.residentCount(),
		Loads:        p.loads,
		Allocs:       p.allocs,
		Flushes:      p.flushes,
		BytesFlushed: p.bytesFlushed,
		ReadOnly:     p.readOnly,
		Closed:       p.closed,
	}
}

func (p *Pager) String() string {
	if p.closed {
		return "Pager{closed=true}"
	}

	return fmt.Sprintf(
		"Pager{file='%s', readOnly=%t, pageSize=%d, cached=%d, fileLen=%d}",
		p.file.Name(), p.readOnly, p.pageSize, p.residentCount(), p.fileLen,
	)
}

func (p *Pager) load(pg *Page) error {
	off := p.offset(pg.num)
	n, err := p.file.ReadAt(pg.data, off)
	if err != nil && err != stdio.EOF && err != stdio.ErrUnexpectedEOF {
		return errors.Wrapf(err, "read page %d at offset %d", pg.num, off)
	}
	p.loads++

	p.log.WithFields(logrus.Fields{
		"page":  pg.num,
		"bytes": n,
	}).Debug("page loaded")
	return nil
}

func (p *Pager) cached(pageNum int) *Page {
	if pageNum < 0 || pageNum >= len(p.pages) {
		return nil
	}
	return p.pages[pageNum]
}

func (p *Pager) residentCount() int {
	c := 0
	for _, pg := range p.pages {
		if pg != nil {
			c++
		}
	}
	return c
}

// filePages is the number of pages the file currently spans, counting a
// trailing partial page.
func (p *Pager) filePages() int64 {
	return row.CeilDiv(p.fileLen, int64(p.pageSize))
}

func (p *Pager) offset(pageNum int) int64 {
	return int64(pageNum) * int64(p.pageSize)
}
