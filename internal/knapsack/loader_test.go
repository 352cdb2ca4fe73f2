package knapsack_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"knapsack/internal/knapsack"
)

func TestParse_Pairs(t *testing.T) {
	data := "4\n10\n60 10\n100 20\n120 30\n80 15\n"
	inst, err := knapsack.Parse([]byte(data), knapsack.FormatAuto)
	require.NoError(t, err)
	require.Equal(t, 4, inst.Len())
	require.Equal(t, 10, inst.Capacity())
	require.Equal(t, []int{60, 100, 120, 80}, inst.Profits())
	require.Equal(t, []int{10, 20, 30, 15}, inst.Weights())
}

func TestParse_PairsStopsAtBlankLine(t *testing.T) {
	data := "4\n10\n60 10\n100 20\n\n120 30\n"
	inst, err := knapsack.Parse([]byte(data), knapsack.FormatPairs)
	require.NoError(t, err)
	require.Equal(t, 2, inst.Len())
}

func TestParse_OversizedHeader(t *testing.T) {
	data := []byte("1000000000000000000\n10\n1 2\n")
	for _, f := range []knapsack.Format{knapsack.FormatPairs, knapsack.FormatAuto, knapsack.FormatArrays} {
		require.NotPanics(t, func() {
			_, err := knapsack.Parse(data, f)
			require.ErrorIs(t, err, knapsack.ErrInvalidInstance, f)
		})
	}

	_, err := knapsack.Parse([]byte("5\n10\n1 2\n3 4\n"), knapsack.FormatPairs)
	require.ErrorIs(t, err, knapsack.ErrInvalidInstance)
}

func TestParse_TwoItemsAmbiguous(t *testing.T) {
	data := []byte("2\n10\n5 6\n3 4\n")

	auto, err := knapsack.Parse(data, knapsack.FormatAuto)
	require.NoError(t, err)
	require.Equal(t, []int{5, 3}, auto.Profits())
	require.Equal(t, []int{6, 4}, auto.Weights())

	arrays, err := knapsack.Parse(data, knapsack.FormatArrays)
	require.NoError(t, err)
	require.Equal(t, []int{5, 6}, arrays.Profits())
	require.Equal(t, []int{3, 4}, arrays.Weights())
}

func TestParse_Arrays(t *testing.T) {
	data := "3\n50\n10 20 30\n5 15 25\n"
	inst, err := knapsack.Parse([]byte(data), knapsack.FormatAuto)
	require.NoError(t, err)
	require.Equal(t, []int{10, 20, 30}, inst.Profits())
	require.Equal(t, []int{5, 15, 25}, inst.Weights())

	_, err = knapsack.Parse([]byte("3\n50\n10 20 30\n5 15\n"), knapsack.FormatArrays)
	require.True(t, errors.Is(err, knapsack.ErrInvalidInstance))

	_, err = knapsack.Parse([]byte("4\n50\n10 20 30\n5 15 25\n"), knapsack.FormatArrays)
	require.True(t, errors.Is(err, knapsack.ErrInvalidInstance))
}

func TestParse_JSON(t *testing.T) {
	items := `{"capacity": 10, "items": [{"profit": 60, "weight": 10}, {"profit": 100, "weight": 20}]}`
	inst, err := knapsack.Load(strings.NewReader(items), knapsack.FormatAuto)
	require.NoError(t, err)
	require.Equal(t, []int{60, 100}, inst.Profits())

	arrays := `{"capacity": 7, "profits": [1, 2, 3], "weights": [4, 5, 6]}`
	inst, err = knapsack.Parse([]byte(arrays), knapsack.FormatJSON)
	require.NoError(t, err)
	require.Equal(t, 7, inst.Capacity())
	require.Equal(t, []int{4, 5, 6}, inst.Weights())

	_, err = knapsack.Parse([]byte(`{"capacity": 7, "profits": [1.5], "weights": [1]}`), knapsack.FormatJSON)
	require.True(t, errors.Is(err, knapsack.ErrInvalidInstance))

	_, err = knapsack.Parse([]byte(`{"profits": [1], "weights": [1]}`), knapsack.FormatJSON)
	require.True(t, errors.Is(err, knapsack.ErrInvalidInstance))

	_, err = knapsack.Parse([]byte(`{"capacity": 1, "profits": [1, 2], "weights": [1]}`), knapsack.FormatJSON)
	require.True(t, errors.Is(err, knapsack.ErrInvalidInstance))
}

func TestParse_Errors(t *testing.T) {
	_, err := knapsack.Parse([]byte("x\n10\n"), knapsack.FormatPairs)
	require.True(t, errors.Is(err, knapsack.ErrInvalidInstance))

	_, err = knapsack.Parse([]byte("1\n10\n1 2 3\n"), knapsack.FormatPairs)
	require.True(t, errors.Is(err, knapsack.ErrInvalidInstance))

	_, err = knapsack.ParseFormat("xml")
	require.True(t, errors.Is(err, knapsack.ErrUnknownFormat))

	f, err := knapsack.ParseFormat(" JSON ")
	require.NoError(t, err)
	require.Equal(t, knapsack.FormatJSON, f)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	require.NoError(t, os.WriteFile(path, []byte("2\n5\n3 4\n5 6\n"), 0o644))

	inst, err := knapsack.LoadFile(path, knapsack.FormatPairs)
	require.NoError(t, err)
	require.Equal(t, []int{3, 5}, inst.Profits())

	_, err = knapsack.LoadFile(filepath.Join(t.TempDir(), "missing.txt"), knapsack.FormatAuto)
	require.Error(t, err)
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	err := knapsack.WriteReport(&buf, scenario(), knapsack.Solution{true, false, false, false})
	require.NoError(t, err)
	want := "Items selected:\nItem 1 - Profit: 60, Weight: 10\nTotal weight: 10\nTotal Profit: 60\n"
	require.Equal(t, want, buf.String())

	require.Error(t, knapsack.WriteReport(&buf, scenario(), knapsack.NewSolution(2)))
}
