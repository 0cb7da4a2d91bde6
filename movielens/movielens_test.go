// Package movielens_test exercises dialect sniffing and end-to-end
// dataset assembly over small synthetic collections.
package movielens_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/recdata/dataset"
	"github.com/katalvlaran/recdata/movielens"
	"github.com/katalvlaran/recdata/vocab"
)

// write100K lays out a two-movie, two-user ml-100k style collection.
func write100K(t *testing.T, dir string) {
	t.Helper()
	item1 := "1|Toy Story (1995)|01-Jan-1995||http://x|" + flagRow("0100010000000000000")
	item2 := "2|Heat (1995)|01-Jan-1995||http://x|" + flagRow("0000000000000000000")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "u.item"),
		[]byte(item1+"\n"+item2+"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "u.data"),
		[]byte("1\t1\t5\t874965758\n1\t2\t3\t874965759\n2\t1\t4\t874965760\n"), 0o644))
}

// flagRow turns a compact 0/1 string into pipe-separated flag fields.
func flagRow(bits string) string {
	out := ""
	for i, b := range bits {
		if i > 0 {
			out += "|"
		}
		out += string(b)
	}
	return out
}

// writeDat lays out an ml-1m style collection.
func writeDat(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "movies.dat"),
		[]byte("1::Toy Story (1995)::Animation|Children's|Comedy\n2::Heat (1995)::Action|Crime\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ratings.dat"),
		[]byte("1::1::5::978300760\n2::2::3.5::978300761\n"), 0o644))
}

// writeCSV lays out a modern headered collection.
func writeCSV(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "movies.csv"),
		[]byte("movieId,title,genres\n1,Toy Story (1995),Adventure|Animation\n2,\"Heat (1995)\",(no genres listed)\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ratings.csv"),
		[]byte("userId,movieId,rating,timestamp\n1,1,4.0,964982703\n1,2,4.5,964982704\n"), 0o644))
}

// TestSniffFormats ensures each marker file maps to its dialect.
func TestSniffFormats(t *testing.T) {
	cases := []struct {
		write  func(*testing.T, string)
		format movielens.Format
	}{
		{write100K, movielens.Format100K},
		{writeDat, movielens.FormatDat},
		{writeCSV, movielens.FormatCSV},
	}
	for _, tc := range cases {
		dir := t.TempDir()
		tc.write(t, dir)
		src, err := movielens.Open(dir)
		require.NoError(t, err)
		require.Equal(t, tc.format, src.Format())
		require.NoError(t, src.Close())
	}
}

// TestOpenUnknownFormat ensures an empty directory is rejected.
func TestOpenUnknownFormat(t *testing.T) {
	_, err := movielens.Open(t.TempDir())
	require.ErrorIs(t, err, movielens.ErrUnknownFormat)
}

// TestOpenNestedDirectory ensures the sniffer descends into a single
// top-level folder, the layout zip archives unpack to.
func TestOpenNestedDirectory(t *testing.T) {
	root := t.TempDir()
	inner := filepath.Join(root, "ml-100k")
	require.NoError(t, os.Mkdir(inner, 0o755))
	write100K(t, inner)

	src, err := movielens.Open(root)
	require.NoError(t, err)
	defer src.Close()
	require.Equal(t, movielens.Format100K, src.Format())
}

// TestOpenZipArchive ensures the original distribution archive form works
// end to end.
func TestOpenZipArchive(t *testing.T) {
	dir := t.TempDir()
	writeDat(t, dir)

	path := filepath.Join(t.TempDir(), "ml-1m.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for _, name := range []string{"movies.dat", "ratings.dat"} {
		data, rerr := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, rerr)
		w, werr := zw.Create("ml-1m/" + name)
		require.NoError(t, werr)
		_, werr = w.Write(data)
		require.NoError(t, werr)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	ds, err := movielens.Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, ds.Interactions().Len())
}

// TestDataset100K checks classes, attributes and interactions built from
// the flag-column dialect.
func TestDataset100K(t *testing.T) {
	dir := t.TempDir()
	write100K(t, dir)

	ds, err := movielens.Load(dir)
	require.NoError(t, err)

	items, err := ds.Items()
	require.NoError(t, err)
	require.Equal(t, 2, items.Len())

	title, err := items.Attribute(movielens.AttrTitle)
	require.NoError(t, err)
	v, err := title.Value("1")
	require.NoError(t, err)
	require.Equal(t, "Toy Story (1995)", v.Str())

	year, err := items.Attribute(movielens.AttrYear)
	require.NoError(t, err)
	y, err := year.Value("2")
	require.NoError(t, err)
	require.Equal(t, int64(1995), y.Int())

	genres, err := items.Attribute(movielens.AttrGenres)
	require.NoError(t, err)
	cell, err := genres.List("1")
	require.NoError(t, err)
	require.Equal(t, "Action", cell[0].Str()) // flag column 1
	require.Equal(t, "Comedy", cell[1].Str()) // flag column 5

	users, err := ds.Users()
	require.NoError(t, err)
	require.Equal(t, 2, users.Len())
	require.Equal(t, 3, ds.Interactions().Len())
}

// TestDatasetCSVUncatalogedItem ensures rated-but-uncataloged items are
// still registered, with null attributes.
func TestDatasetCSVUncatalogedItem(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "movies.csv"),
		[]byte("movieId,title,genres\n1,Toy Story (1995),Adventure\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ratings.csv"),
		[]byte("userId,movieId,rating,timestamp\n1,1,4.0,10\n1,99,2.0,11\n"), 0o644))

	ds, err := movielens.Load(dir)
	require.NoError(t, err)
	items, err := ds.Items()
	require.NoError(t, err)
	require.Equal(t, 2, items.Len())
	require.Contains(t, items.IDs(), vocab.ID("99"))

	title, err := items.Attribute(movielens.AttrTitle)
	require.NoError(t, err)
	_, err = title.Value("99")
	require.ErrorIs(t, err, dataset.ErrMissingValue)
}

// TestBadRecordRejected ensures malformed rating lines surface
// ErrBadRecord with file position context.
func TestBadRecordRejected(t *testing.T) {
	dir := t.TempDir()
	write100K(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "u.data"),
		[]byte("1\t1\tfive\t874965758\n"), 0o644))

	_, err := movielens.Load(dir)
	require.ErrorIs(t, err, movielens.ErrBadRecord)
}
