package storage

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadRun(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	series := []float32{0, 0.5, -0.25, 1e-7}
	runID, err := st.Save(RunMetadata{
		Scenario: "double-slit",
		Width:    256,
		Height:   256,
		Steps:    400,
		Boundary: "cpml",
		Metrics:  map[string]float64{"energy": 1.25},
	}, series)
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	meta, err := st.LoadMeta(runID)
	require.NoError(t, err)
	assert.Equal(t, runID, meta.ID)
	assert.Equal(t, "double-slit", meta.Scenario)
	assert.Equal(t, 1.25, meta.Metrics["energy"])

	loaded, err := st.LoadSeries(runID)
	require.NoError(t, err)
	assert.Equal(t, series, loaded)
}

func TestListSortsNewestFirst(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	_, err := st.Save(RunMetadata{Scenario: "a"}, []float32{1})
	require.NoError(t, err)
	_, err = st.Save(RunMetadata{Scenario: "b"}, []float32{2})
	require.NoError(t, err)

	runs, err := st.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.False(t, runs[0].Timestamp.Before(runs[1].Timestamp))
}

func TestListMissingDir(t *testing.T) {
	st := New(t.TempDir() + "/does-not-exist")
	runs, err := st.List()
	assert.NoError(t, err)
	assert.Empty(t, runs)
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	runID, err := st.Save(RunMetadata{Scenario: "lens"}, []float32{0.1, 0.2})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, st.Export(runID, &buf))

	var doc struct {
		ID     string    `json:"id"`
		Series []float32 `json:"series"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, runID, doc.ID)
	assert.Equal(t, []float32{0.1, 0.2}, doc.Series)
}

func TestLoadMissingRun(t *testing.T) {
	st := New(t.TempDir())
	_, err := st.LoadMeta("nope")
	assert.Error(t, err)
	_, err = st.LoadSeries("nope")
	assert.Error(t, err)
}
