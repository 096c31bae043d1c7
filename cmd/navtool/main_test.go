package main

import (
	"bytes"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorustyt/fenav/navmesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMesh = "testdata/ushape.hjson"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c := RootCmd()
	c.SetOut(&out)
	c.SetErr(&out)
	c.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := c.Execute()
	return out.String(), err
}

func TestParseVec3(t *testing.T) {
	v, err := parseVec3("1.5, 2, -3")
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), v[0])
	assert.Equal(t, float32(2), v[1])
	assert.Equal(t, float32(-3), v[2])

	v, err = parseVec3("4,5")
	require.NoError(t, err)
	assert.Equal(t, float32(4), v[0])
	assert.Equal(t, float32(0), v[1])
	assert.Equal(t, float32(5), v[2])

	_, err = parseVec3("1")
	assert.Error(t, err)
	_, err = parseVec3("a,b,c")
	assert.Error(t, err)
}

func TestInfo(t *testing.T) {
	out, err := run(t, "info", sampleMesh)
	require.NoError(t, err)
	assert.Contains(t, out, "vertices:  12")
	assert.Contains(t, out, "polygons:  5")
	assert.Contains(t, out, "links:     8")
	assert.Contains(t, out, "problems:  0")
}

func TestPath(t *testing.T) {
	out, err := run(t, "--config", "testdata/navtool.yaml", "path", sampleMesh, "--from", "0.5,0,1.5", "--to", "2.5,0,1.5", "--agent", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "status:    Success")
	assert.Contains(t, out, "corridor:  [3 0 1 2 4]")
	assert.Contains(t, out, "cost:      4.000")
	assert.Equal(t, float32(0.2), appConfig.Pathfinder.WaypointTolerance)
}

func TestPathOffMesh(t *testing.T) {
	out, err := run(t, "path", sampleMesh, "--from", "1.5,0,1.5", "--to", "2.5,0,1.5")
	assert.Error(t, err)
	assert.Contains(t, out, "FailureNoPath")
}

func TestPathRequiresPositions(t *testing.T) {
	_, err := run(t, "path", sampleMesh, "--from", "0.5,0,0.5")
	assert.Error(t, err)
}

func TestConvertRoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"u.navbin", "u.navpb", "u.navmp", "u.json"} {
		dst := filepath.Join(dir, name)
		_, err := run(t, "convert", sampleMesh, dst)
		require.NoError(t, err, name)

		out, err := run(t, "info", "--strict", dst)
		require.NoError(t, err, name)
		assert.Contains(t, out, "polygons:  5", name)
		assert.Contains(t, out, "links:     8", name)
	}
}

func TestConvertHelpListsFormats(t *testing.T) {
	short := ConvertCmd().Short
	for _, ext := range []string{navmesh.ExtBinary, navmesh.ExtProto, navmesh.ExtMsgpack, navmesh.ExtHjson, navmesh.ExtJSON} {
		assert.Contains(t, short, ext)
	}
}

func TestConvertUnknownExtension(t *testing.T) {
	_, err := run(t, "convert", sampleMesh, filepath.Join(t.TempDir(), "u.obj"))
	assert.Error(t, err)
}

func TestDraw(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "u.png")
	out, err := run(t, "draw", sampleMesh, dst, "--width", "200", "--ids", "--font-size", "9", "--grid", "--from", "0.5,1.5", "--to", "2.5,1.5")
	require.NoError(t, err)
	assert.Contains(t, out, "(200x144)")

	f, err := os.Open(dst)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 144, img.Bounds().Dy())
}

func TestSchema(t *testing.T) {
	out, err := run(t, "schema")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Navigation Mesh", doc["title"])
	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "vertices")
	assert.Contains(t, props, "polygons")
	assert.ElementsMatch(t, []any{"vertices", "polygons"}, doc["required"])
}

func TestBadConfig(t *testing.T) {
	_, err := run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "info", sampleMesh)
	assert.Error(t, err)
}
