package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Oelderoth/LightWeaver-Module/scene"
)

func writeSlot(t *testing.T, root string, slot string, body string) {
	dir := filepath.Join(root, slot)
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scene.yaml"), []byte(body), 0600))
}

func TestScenarioSlots(t *testing.T) {
	root := t.TempDir()
	writeSlot(t, root, "0", "source: {type: Solid, uid: 1, color: '#ff0000'}")
	writeSlot(t, root, "10", "source: {type: Solid, uid: 2, color: '#00ff00'}")
	writeSlot(t, root, "30", "source: {type: Solid, uid: 3, color: '#0000ff'}")
	require.NoError(t, os.WriteFile(filepath.Join(root, "README"), []byte("not a slot"), 0600))

	s := newScenario(root, 1, 25*time.Hour)
	require.Nil(t, s.load())
	require.Len(t, s.slots, 3)

	start := s.startTime
	assert.Equal(t, filepath.Join(root, "0"), s.slotDir(start))
	assert.Equal(t, filepath.Join(root, "0"), s.slotDir(start.Add(9*time.Second)))
	assert.Equal(t, filepath.Join(root, "10"), s.slotDir(start.Add(10*time.Second)))
	assert.Equal(t, filepath.Join(root, "10"), s.slotDir(start.Add(29*time.Second)))
	assert.Equal(t, filepath.Join(root, "30"), s.slotDir(start.Add(time.Hour)))
}

func TestScenarioCompress(t *testing.T) {
	root := t.TempDir()
	writeSlot(t, root, "0", "source: {type: Solid, uid: 1, color: '#ff0000'}")
	writeSlot(t, root, "5", "source: {type: Solid, uid: 1, color: '#ff0000'}")
	writeSlot(t, root, "100", "source: {type: Solid, uid: 3, color: '#0000ff'}")

	s := newScenario(root, 1, 10*time.Second)
	require.Nil(t, s.load())

	// The duplicate slot is removed and the dead air after the first slot is cut to 10 seconds
	require.Len(t, s.slots, 2)
	assert.Equal(t, 0, s.slots[0].secondSlot)
	assert.Equal(t, 10, s.slots[1].secondSlot)
}

func TestScenarioServesScenes(t *testing.T) {
	root := t.TempDir()
	writeSlot(t, root, "0", "source: {type: Solid, uid: 1, color: '#ff0000'}")

	s := newScenario(root, 1, 25*time.Hour)
	require.Nil(t, s.load())

	server := httptest.NewServer(s)
	defer server.Close()

	resp, errGo := http.Get(server.URL + "/scene.yaml")
	require.NoError(t, errGo)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, errGo := io.ReadAll(resp.Body)
	require.NoError(t, errGo)

	doc, errGo := scene.Decode(body)
	require.NoError(t, errGo)
	assert.Equal(t, uint32(1), doc.Source.UID())
}

func TestScenarioEmpty(t *testing.T) {
	s := newScenario(t.TempDir(), 1, 25*time.Hour)
	assert.NotNil(t, s.load())
	assert.Equal(t, "", s.slotDir(time.Now()))
}
