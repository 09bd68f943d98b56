package dataset

import (
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/olsfit/compress"
	"github.com/arloliu/olsfit/encoding"
	"github.com/arloliu/olsfit/errs"
)

func sampleTable(t *testing.T) *Table {
	t.Helper()

	tbl, err := ParseCSV(strings.NewReader("x,y,city\n1,2,Oslo\n2,,Rome\n3,5,Lima\n4,4,Kyiv\n5,5,Nuuk\n"))
	require.NoError(t, err)
	tbl.Name = "sample.csv"

	return tbl
}

func TestStore_RoundTripEveryCodec(t *testing.T) {
	for _, typ := range []compress.Type{compress.TypeNone, compress.TypeZstd, compress.TypeS2, compress.TypeLZ4} {
		t.Run(typ.String(), func(t *testing.T) {
			codec, err := compress.GetCodec(typ)
			require.NoError(t, err)

			store := NewStore(codec)
			src := sampleTable(t)

			h, err := store.Put("", src)
			require.NoError(t, err)
			_, err = ParseHandle(string(h))
			require.NoError(t, err)

			got, err := store.Get(h)
			require.NoError(t, err)
			require.Equal(t, "sample.csv", got.Name)
			require.Equal(t, src.Rows(), got.Rows())
			require.Equal(t, src.Columns(), got.Columns())
			require.Equal(t, src.NumericColumns(), got.NumericColumns())

			xs, ys, err := got.Pair("x", "y", MissingReject)
			require.NoError(t, err)
			require.Equal(t, []float64{1, 2, 3, 4, 5}, xs)
			require.True(t, math.IsNaN(ys[1]), "missing values survive storage")
			require.Equal(t, Fingerprint(src), Fingerprint(got))
			require.Equal(t, src.columns[2].cells, got.columns[2].cells, "text cells survive storage")

			info, err := store.Info(h)
			require.NoError(t, err)
			require.Equal(t, h, info.Handle)
			require.Equal(t, typ.String(), info.Compression)
			// Two numeric columns of 5 float64s plus five 4-letter cells with a 1-byte prefix.
			require.Equal(t, int64(2*5*8+5*5), info.RawBytes)
			require.Positive(t, info.StoredBytes)
		})
	}
}

func TestStore_GetIsolated(t *testing.T) {
	store := NewStore(nil)
	h, err := store.Put("named.csv", sampleTable(t))
	require.NoError(t, err)

	first, err := store.Get(h)
	require.NoError(t, err)
	require.Equal(t, "named.csv", first.Name)
	first.columns[0].values[0] = 99

	second, err := store.Get(h)
	require.NoError(t, err)
	xs, err := second.Column("x")
	require.NoError(t, err)
	require.Equal(t, 1.0, xs[0])

	info, err := store.Info(h)
	require.NoError(t, err)
	info.NumericColumns[0] = "mutated"

	again, err := store.Info(h)
	require.NoError(t, err)
	require.Equal(t, []string{"x", "y"}, again.NumericColumns)
}

func TestStore_NotFound(t *testing.T) {
	store := NewStore(compress.NewZstdCompressor())

	_, err := store.Get("missing")
	require.ErrorIs(t, err, errs.ErrDatasetNotFound)

	_, err = store.Info("missing")
	require.ErrorIs(t, err, errs.ErrDatasetNotFound)

	require.ErrorIs(t, store.Delete("missing"), errs.ErrDatasetNotFound)

	_, err = ParseHandle("not-a-uuid")
	require.ErrorIs(t, err, errs.ErrDatasetNotFound)
}

func TestStore_Delete(t *testing.T) {
	store := NewStore(compress.NewS2Compressor())
	h, err := store.Put("", sampleTable(t))
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())

	require.NoError(t, store.Delete(h))
	require.Zero(t, store.Len())

	_, err = store.Get(h)
	require.ErrorIs(t, err, errs.ErrDatasetNotFound)
}

func TestStore_PutEmpty(t *testing.T) {
	store := NewStore(nil)

	_, err := store.Put("x", nil)
	require.ErrorIs(t, err, errs.ErrEmptyTable)

	_, err = store.Put("x", &Table{})
	require.ErrorIs(t, err, errs.ErrEmptyTable)
}

func TestStore_PutCellTooLong(t *testing.T) {
	long := strings.Repeat("z", encoding.MaxTextLength+1)
	tbl, err := NewTable([]string{"x", "y", "note"}, [][]string{{"1", "2", "ok"}, {"2", "3", long}})
	require.NoError(t, err)

	store := NewStore(nil)
	_, err = store.Put("long.csv", tbl)
	require.ErrorIs(t, err, errs.ErrCellTooLong)
	require.ErrorIs(t, err, errs.ErrMalformedFile)
	require.Zero(t, store.Len())
}

func TestStore_ListOrder(t *testing.T) {
	store := NewStore(nil)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	store.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	first, err := store.Put("first.csv", sampleTable(t))
	require.NoError(t, err)
	second, err := store.Put("second.csv", sampleTable(t))
	require.NoError(t, err)

	infos := store.List()
	require.Len(t, infos, 2)
	require.Equal(t, first, infos[0].Handle)
	require.Equal(t, second, infos[1].Handle)
	require.Equal(t, infos[0].Fingerprint, infos[1].Fingerprint, "same content, same fingerprint")
}

func TestStore_Corrupted(t *testing.T) {
	store := NewStore(compress.NewLZ4Compressor())
	h, err := store.Put("", sampleTable(t))
	require.NoError(t, err)

	store.entries[h].columns[0].payload = []byte{0x9, 0x1}

	_, err = store.Get(h)
	require.ErrorIs(t, err, errs.ErrInvalidPayload)
}

func TestFingerprint(t *testing.T) {
	a := sampleTable(t)
	b := sampleTable(t)
	b.Name = "other.csv"
	require.Equal(t, Fingerprint(a), Fingerprint(b))

	c, err := ParseCSV(strings.NewReader("x,y,city\n1,2,Oslo\n2,,Rome\n3,5,Lima\n4,4,Kyiv\n5,6,Nuuk\n"))
	require.NoError(t, err)
	require.NotEqual(t, Fingerprint(a), Fingerprint(c))

	renamed, err := ParseCSV(strings.NewReader("u,y,city\n1,2,Oslo\n2,,Rome\n3,5,Lima\n4,4,Kyiv\n5,5,Nuuk\n"))
	require.NoError(t, err)
	require.NotEqual(t, Fingerprint(a), Fingerprint(renamed))
}

func TestStore_Concurrent(t *testing.T) {
	store := NewStore(compress.NewZstdCompressor())
	src := sampleTable(t)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			h, err := store.Put("", src)
			if err != nil {
				t.Error(err)
				return
			}
			if _, err := store.Get(h); err != nil {
				t.Error(err)
			}
			_ = store.List()
		}()
	}
	wg.Wait()

	require.Equal(t, 16, store.Len())
}
