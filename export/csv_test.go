package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	rssimap "github.com/milosgajdos/go-rssimap"
	"github.com/milosgajdos/go-rssimap/grid"
	"github.com/milosgajdos/go-rssimap/pipeline"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestWriteCSV(t *testing.T) {
	assert := assert.New(t)

	g := mat.NewDense(2, 3, []float64{
		-70, -69.5, -71.125,
		-65.25, -80, -60.000001,
	})

	var buf bytes.Buffer
	assert.NoError(WriteCSV(&buf, g))

	want := "0,1,2\n-70,-69.5,-71.125\n-65.25,-80,-60.000001\n"
	assert.Equal(want, buf.String())

	assert.Error(WriteCSV(&buf, nil))
}

func TestReadCSV(t *testing.T) {
	assert := assert.New(t)

	g := mat.NewDense(3, 2, []float64{
		-70.12345678901234, -69.5,
		-0.1, -79.99999999999999,
		-65, -61.3,
	})

	var buf bytes.Buffer
	assert.NoError(WriteCSV(&buf, g))

	got, err := ReadCSV(&buf)
	assert.NoError(err)
	assert.True(mat.Equal(g, got))

	testCases := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"header only", "0,1\n"},
		{"ragged", "0,1\n-70,-71\n-72\n"},
		{"not a number", "0,1\n-70,abc\n"},
	}

	for _, tc := range testCases {
		got, err := ReadCSV(strings.NewReader(tc.in))
		assert.Nil(got, tc.name)
		assert.Error(err, tc.name)
	}
}

func TestReadCSVNonFinite(t *testing.T) {
	assert := assert.New(t)

	testCases := []struct {
		in  string
		msg string
	}{
		{"0,1\n-70,+Inf\n-71,-72\n", "row 0 col 1"},
		{"0,1\n-70,-71\nNaN,-72\n", "row 1 col 0"},
		{"0,1\n-70,-71\n-72,-inf\n", "row 1 col 1"},
	}

	for _, tc := range testCases {
		got, err := ReadCSV(strings.NewReader(tc.in))
		assert.Nil(got, tc.in)
		assert.ErrorIs(err, rssimap.ErrInvalidInput, tc.in)
		assert.ErrorContains(err, tc.msg, tc.in)
	}
}

func TestSave(t *testing.T) {
	assert := assert.New(t)

	spec, err := grid.New(2500)
	assert.NoError(err)
	p, err := pipeline.New(spec, pipeline.WithSeed(1))
	assert.NoError(err)
	res, err := p.Run(context.Background())
	assert.NoError(err)

	dir := filepath.Join(t.TempDir(), "output")
	raw, filtered, err := Save(dir, res)
	assert.NoError(err)
	assert.Equal(filepath.Join(dir, RawFile), raw)
	assert.Equal(filepath.Join(dir, FilteredFile), filtered)

	g, err := ReadFile(raw)
	assert.NoError(err)
	assert.True(mat.Equal(res.Raw, g))

	g, err = ReadFile(filtered)
	assert.NoError(err)
	assert.True(mat.Equal(res.Filtered, g))

	data, err := os.ReadFile(filtered)
	assert.NoError(err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(lines, grid.DefaultRows+1)
	assert.Equal("0,1,2,3,4,5,6,7,8,9", lines[0])

	_, _, err = Save(dir, nil)
	assert.Error(err)

	_, err = ReadFile(filepath.Join(dir, "missing.csv"))
	assert.Error(err)
}
