package fetcher

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForEachRow_HeaderPassedToEveryCallback(t *testing.T) {
	input := "name,county\nacme,Albany\nwidget,Rensselaer\n"

	var rows [][]string
	err := ForEachRow(context.Background(), strings.NewReader(input), CSVOptions{}, func(header, record []string) error {
		assert.Equal(t, []string{"name", "county"}, header)
		rows = append(rows, append([]string(nil), record...))
		return nil
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"acme", "Albany"}, rows[0])
}

func TestForEachRow_TrimSpace(t *testing.T) {
	input := "name , county \n acme , Albany \n"

	err := ForEachRow(context.Background(), strings.NewReader(input), CSVOptions{TrimSpace: true}, func(header, record []string) error {
		assert.Equal(t, []string{"name", "county"}, header)
		assert.Equal(t, []string{"acme", "Albany"}, record)
		return nil
	})
	require.NoError(t, err)
}

func TestForEachRow_VariableFieldCounts(t *testing.T) {
	input := "a,b\n1\n2,3,4\n"

	var lengths []int
	err := ForEachRow(context.Background(), strings.NewReader(input), CSVOptions{}, func(_, record []string) error {
		lengths = append(lengths, len(record))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, lengths)
}

func TestForEachRow_ErrStopEndsIterationCleanly(t *testing.T) {
	input := "a\n1\n2\n3\n"

	var seen int
	err := ForEachRow(context.Background(), strings.NewReader(input), CSVOptions{}, func(_, _ []string) error {
		seen++
		if seen == 2 {
			return ErrStop
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, seen)
}

func TestForEachRow_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ForEachRow(ctx, strings.NewReader("a\n1\n"), CSVOptions{}, func(_, _ []string) error {
		t.Fatal("callback must not run after cancellation")
		return nil
	})
	require.Error(t, err)
}

func TestHeaderIndex_CaseInsensitive(t *testing.T) {
	idx := HeaderIndex([]string{"Program Type", " Site Class ", "COUNTY"})
	assert.Equal(t, 0, idx["program type"])
	assert.Equal(t, 1, idx["site class"])
	assert.Equal(t, 2, idx["county"])
}

func TestColumn(t *testing.T) {
	idx := HeaderIndex([]string{"a", "b", "c"})
	record := []string{"1", "2"}

	assert.Equal(t, "1", Column(record, idx, "A"))
	assert.Equal(t, "2", Column(record, idx, "b"))
	assert.Equal(t, "", Column(record, idx, "c"), "short record yields empty string")
	assert.Equal(t, "", Column(record, idx, "missing"))
}
