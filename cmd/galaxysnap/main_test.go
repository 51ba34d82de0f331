package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWritesPNG(t *testing.T) {
	dir := t.TempDir()
	preset := filepath.Join(dir, "small.toml")
	require.NoError(t, os.WriteFile(preset, []byte("[galaxy]\ncount = 10000\n[star_field]\ncount = 100\n"), 0o644))

	out := filepath.Join(dir, "out.png")
	require.NoError(t, run(options{config: preset, out: out, width: 160, height: 90, scale: 2, seed: 1}))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 180, img.Bounds().Dy())

	lit := false
	for y := 0; y < 180 && !lit; y++ {
		for x := 0; x < 320; x++ {
			if r, g, b, _ := img.At(x, y).RGBA(); r+g+b > 0 {
				lit = true
				break
			}
		}
	}
	assert.True(t, lit)
}

func TestRunRejectsBadPreset(t *testing.T) {
	dir := t.TempDir()
	preset := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(preset, []byte("[galaxy]\nspin = \"fast\"\n"), 0o644))
	assert.Error(t, run(options{config: preset, out: filepath.Join(dir, "out.png"), scale: 1}))
}

func TestRunClampsOutOfRangePreset(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"branches.toml": "[galaxy]\ncount = 10000\nbranches = 0\n[star_field]\ncount = 100\n",
		"count.toml":    "[galaxy]\ncount = -5\n[star_field]\ncount = -5\n",
	} {
		preset := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(preset, []byte(body), 0o644))
		out := filepath.Join(dir, name+".png")
		require.NotPanics(t, func() {
			require.NoError(t, run(options{config: preset, out: out, width: 32, height: 24, scale: 1, seed: 1}))
		}, name)
		assert.FileExists(t, out)
	}
}
