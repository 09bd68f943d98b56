package dataset

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arloliu/olsfit/compress"
	"github.com/arloliu/olsfit/encoding"
	"github.com/arloliu/olsfit/endian"
	"github.com/arloliu/olsfit/errs"
	"github.com/arloliu/olsfit/internal/hash"
	"github.com/arloliu/olsfit/internal/pool"
)

// Handle identifies a dataset held by a Store.
type Handle string

// ParseHandle validates a handle received from a client.
func ParseHandle(s string) (Handle, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", errs.ErrDatasetNotFound, s)
	}

	return Handle(id.String()), nil
}

// Info describes a stored dataset.
type Info struct {
	Handle         Handle    `json:"id"`
	Name           string    `json:"name"`
	Rows           int       `json:"rows"`
	Columns        []string  `json:"columns"`
	NumericColumns []string  `json:"numeric_columns"`
	Fingerprint    uint64    `json:"fingerprint"`
	Compression    string    `json:"compression"`
	RawBytes       int64     `json:"raw_bytes"`
	StoredBytes    int64     `json:"stored_bytes"`
	CreatedAt      time.Time `json:"created_at"`
}

// storedColumn holds the compressed payload of one column: little-endian
// float64 values when numeric, length-prefixed cells otherwise.
type storedColumn struct {
	name    string
	numeric bool
	payload []byte
}

type entry struct {
	info    Info
	columns []storedColumn
}

// Store keeps parsed tables in memory under random handles.
//
// Numeric columns are encoded as little-endian float64 values and text columns as
// length-prefixed cells, both compressed with the Store's codec. Get decodes a
// fresh Table on every call, so callers never share state with the Store or with
// each other. A Store is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	codec   compress.Codec
	engine  endian.EndianEngine
	entries map[Handle]*entry
	now     func() time.Time
}

// NewStore creates an empty Store. A nil codec stores payloads uncompressed.
func NewStore(codec compress.Codec) *Store {
	if codec == nil {
		codec = compress.NewNoOpCompressor()
	}

	return &Store{
		codec:   codec,
		engine:  endian.GetLittleEndianEngine(),
		entries: make(map[Handle]*entry),
		now:     time.Now,
	}
}

// Codec returns the codec used for column payloads.
func (s *Store) Codec() compress.Codec {
	return s.codec
}

// Put stores a copy of t under a new handle. name overrides t.Name when non-empty.
//
// Returns errs.ErrCellTooLong if a text cell is longer than encoding.MaxTextLength.
func (s *Store) Put(name string, t *Table) (Handle, error) {
	if t == nil || t.rows == 0 {
		return "", errs.ErrEmptyTable
	}
	if name == "" {
		name = t.Name
	}

	e := &entry{
		info: Info{
			Name:           name,
			Rows:           t.rows,
			Columns:        t.Columns(),
			NumericColumns: t.NumericColumns(),
			Fingerprint:    Fingerprint(t),
			Compression:    s.codec.Type().String(),
		},
		columns: make([]storedColumn, len(t.columns)),
	}

	for i, c := range t.columns {
		raw, payload, err := s.encode(c)
		if err != nil {
			return "", fmt.Errorf("failed to encode column %q: %w", c.name, err)
		}
		e.columns[i] = storedColumn{name: c.name, numeric: c.numeric, payload: payload}
		e.info.RawBytes += int64(raw)
		e.info.StoredBytes += int64(len(payload))
	}

	h := Handle(uuid.NewString())
	e.info.Handle = h
	e.info.CreatedAt = s.now()

	s.mu.Lock()
	s.entries[h] = e
	s.mu.Unlock()

	return h, nil
}

// Get decodes the dataset stored under h.
//
// Returns errs.ErrDatasetNotFound for an unknown handle and errs.ErrInvalidPayload
// if a column payload cannot be decoded.
func (s *Store) Get(h Handle) (*Table, error) {
	e, err := s.lookup(h)
	if err != nil {
		return nil, err
	}

	cols := make([]column, len(e.columns))
	for i, sc := range e.columns {
		c, err := s.decode(sc, e.info.Rows)
		if err != nil {
			return nil, fmt.Errorf("%w: column %q: %w", errs.ErrInvalidPayload, sc.name, err)
		}
		cols[i] = c
	}

	t := newTable(cols, e.info.Rows)
	t.Name = e.info.Name

	return t, nil
}

// Info returns the metadata of the dataset stored under h.
func (s *Store) Info(h Handle) (Info, error) {
	e, err := s.lookup(h)
	if err != nil {
		return Info{}, err
	}

	return cloneInfo(e.info), nil
}

// Delete removes the dataset stored under h.
func (s *Store) Delete(h Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[h]; !ok {
		return fmt.Errorf("%w: %s", errs.ErrDatasetNotFound, h)
	}
	delete(s.entries, h)

	return nil
}

// List returns the metadata of every dataset, oldest first.
func (s *Store) List() []Info {
	s.mu.RLock()
	infos := make([]Info, 0, len(s.entries))
	for _, e := range s.entries {
		infos = append(infos, cloneInfo(e.info))
	}
	s.mu.RUnlock()

	slices.SortFunc(infos, func(a, b Info) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}

		return cmp.Compare(a.Handle, b.Handle)
	})

	return infos
}

// Len returns the number of stored datasets.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

func (s *Store) lookup(h Handle) (*entry, error) {
	s.mu.RLock()
	e, ok := s.entries[h]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatasetNotFound, h)
	}

	return e, nil
}

// encode returns the raw encoded size and the compressed payload of a column.
func (s *Store) encode(c column) (int, []byte, error) {
	var raw []byte
	if c.numeric {
		buf := pool.GetColumnBuffer()
		defer pool.PutColumnBuffer(buf)

		buf.Grow(len(c.values) * endian.Float64Size)
		buf.B = endian.AppendFloat64s(s.engine, buf.B, c.values)
		raw = buf.Bytes()
	} else {
		enc := encoding.NewVarStringEncoder()
		defer enc.Release()

		if err := enc.WriteSlice(c.cells); err != nil {
			return 0, nil, err
		}
		raw = enc.Bytes()
	}

	payload, err := s.codec.Compress(raw)
	if err != nil {
		return 0, nil, err
	}

	return len(raw), payload, nil
}

func (s *Store) decode(sc storedColumn, rows int) (column, error) {
	raw, err := s.codec.Decompress(sc.payload)
	if err != nil {
		return column{}, err
	}

	if !sc.numeric {
		cells, err := encoding.DecodeVarStrings(raw, rows)
		if err != nil {
			return column{}, err
		}

		return column{name: sc.name, cells: cells}, nil
	}

	values, err := endian.Float64s(s.engine, raw)
	if err != nil {
		return column{}, err
	}
	if len(values) != rows {
		return column{}, fmt.Errorf("got %d values, want %d", len(values), rows)
	}

	return column{name: sc.name, numeric: true, values: values}, nil
}

// Fingerprint hashes the column names and numeric values of t.
//
// Table.Name and the content of text columns do not contribute.
func Fingerprint(t *Table) uint64 {
	h := hash.NewHasher().Uint64(uint64(t.rows))
	for _, c := range t.columns {
		h.String(c.name)
		if c.numeric {
			h.Floats(c.values)
		}
	}

	return h.Sum64()
}

func cloneInfo(info Info) Info {
	info.Columns = slices.Clone(info.Columns)
	info.NumericColumns = slices.Clone(info.NumericColumns)

	return info
}
