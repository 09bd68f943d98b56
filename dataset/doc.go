// Package dataset turns uploaded CSV and XLSX files into tables of named columns
// and keeps them in an in-memory Store.
//
// A column is numeric when every non-empty cell parses as a float64; empty cells
// of a numeric column are missing values and read as NaN. Regression inputs are
// extracted with Table.Pair, which applies a MissingPolicy:
//
//	t, err := dataset.Parse("heights.csv", r)
//	if err != nil {
//	    return err
//	}
//	x, y, err := t.DefaultPair()
//	xs, ys, err := t.Pair(x, y, dataset.MissingDrop)
//
// The Store keeps numeric columns as little-endian float64 payloads compressed with
// a compress.Codec and hands out opaque handles.
package dataset
