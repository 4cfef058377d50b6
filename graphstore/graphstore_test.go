package graphstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFillsEmptyID(t *testing.T) {
	g, err := New(4, 3)
	require.NoError(t, err)
	defer g.Close()

	for u := int32(0); u < g.N(); u++ {
		for _, id := range g.Row(u) {
			require.Equal(t, EmptyID, id)
		}
	}
}

func TestNewRejectsNonPositiveDims(t *testing.T) {
	_, err := New(0, 3)
	require.Error(t, err)
	_, err = New(3, 0)
	require.Error(t, err)
}

func TestRowsAreDisjoint(t *testing.T) {
	g, err := New(3, 2)
	require.NoError(t, err)
	defer g.Close()

	g.Row(0)[0] = 10
	g.Row(1)[0] = 20
	require.Equal(t, int32(10), g.At(0, 0))
	require.Equal(t, int32(20), g.At(1, 0))
}

func TestGraphInfoValidate(t *testing.T) {
	ok := GraphInfo{N: 100, R: 8, RInit: 16, RKNNG: 32}
	require.NoError(t, ok.Validate())

	bad := GraphInfo{N: 100, R: 16, RInit: 8, RKNNG: 32}
	require.Error(t, bad.Validate())

	zero := GraphInfo{N: 0, R: 8, RInit: 16, RKNNG: 32}
	require.Error(t, zero.Validate())
}

func TestReverseEdgeCountsStoredClampsToK(t *testing.T) {
	counts := ReverseEdgeCounts{0, 5, 2}
	require.Equal(t, int32(0), counts.Stored(0, 4))
	require.Equal(t, int32(4), counts.Stored(1, 4))
	require.Equal(t, int32(2), counts.Stored(2, 4))
}

func TestSaveKNNGThenLoadKNNGRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.knng")

	g, err := New(5, 3)
	require.NoError(t, err)
	defer g.Close()
	for u := int32(0); u < g.N(); u++ {
		row := g.Row(u)
		for j := range row {
			row[j] = (u + int32(j) + 1) % g.N()
		}
	}

	require.NoError(t, g.SaveKNNG(path))

	loaded, err := LoadKNNG(path)
	require.NoError(t, err)
	defer loaded.Close()

	require.Equal(t, g.N(), loaded.N())
	require.Equal(t, g.K(), loaded.K())
	for u := int32(0); u < g.N(); u++ {
		require.Equal(t, g.Row(u), loaded.Row(u))
	}
}

func TestSaveKNNGIsByteStableAcrossReload(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.knng")
	second := filepath.Join(dir, "second.knng")

	g, err := New(6, 4)
	require.NoError(t, err)
	defer g.Close()
	for u := int32(0); u < g.N(); u++ {
		row := g.Row(u)
		for j := range row {
			if (u+int32(j))%3 == 0 {
				row[j] = EmptyID
				continue
			}
			row[j] = (u * 7 + int32(j)) % g.N()
		}
	}
	require.NoError(t, g.SaveKNNG(first))

	loaded, err := LoadKNNG(first)
	require.NoError(t, err)
	defer loaded.Close()
	require.NoError(t, loaded.SaveKNNG(second))

	b1, err := os.ReadFile(first)
	require.NoError(t, err)
	b2, err := os.ReadFile(second)
	require.NoError(t, err)
	require.Equal(t, b1, b2)
}

func TestLoadKNNGFbinReadsHandAssembledFile(t *testing.T) {
	dir := t.TempDir()
	fbinPath := filepath.Join(dir, "in.fbin")

	// Hand-assemble a minimal fbin file: N=2, K=2, flat row-major ids.
	buf := make([]byte, 8+2*2*4)
	putU32 := func(off int, v uint32) {
		buf[off] = byte(v)
		buf[off+1] = byte(v >> 8)
		buf[off+2] = byte(v >> 16)
		buf[off+3] = byte(v >> 24)
	}
	putU32(0, 2) // N
	putU32(4, 2) // K
	putU32(8, 1)
	putU32(12, 0xFFFFFFFF) // EmptyID
	putU32(16, 0)
	putU32(20, 1)
	require.NoError(t, os.WriteFile(fbinPath, buf, 0o644))

	g, err := LoadKNNGFbin(fbinPath)
	require.NoError(t, err)
	defer g.Close()

	require.Equal(t, int32(2), g.N())
	require.Equal(t, int32(2), g.K())
	require.Equal(t, []int32{1, EmptyID}, g.Row(0))
	require.Equal(t, []int32{0, 1}, g.Row(1))
}

func TestSaveNSGWritesEntryPointFromEps(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.nsg")

	g, err := New(3, 2)
	require.NoError(t, err)
	defer g.Close()
	g.SetEps([]int32{2})
	g.Row(0)[0], g.Row(0)[1] = 1, 2
	g.Row(1)[0], g.Row(1)[1] = 0, 2
	g.Row(2)[0], g.Row(2)[1] = 0, 1

	require.NoError(t, g.SaveNSG(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(b), 8)
	k := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	ep := uint32(b[4]) | uint32(b[5])<<8 | uint32(b[6])<<16 | uint32(b[7])<<24
	require.Equal(t, uint32(2), k)
	require.Equal(t, uint32(2), ep)
}

func TestLoadKNNGRejectsShortFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "short.knng")
	require.NoError(t, os.WriteFile(path, []byte{1, 2}, 0o644))

	_, err := LoadKNNG(path)
	require.Error(t, err)
}

func TestPrefetchDoesNotPanic(t *testing.T) {
	g, err := New(10, 4)
	require.NoError(t, err)
	defer g.Close()
	require.NotPanics(t, func() { g.Prefetch(0, 4) })
}
