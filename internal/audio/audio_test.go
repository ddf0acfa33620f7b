package audio

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func peak(pcm []int16) int {
	m := 0
	for _, s := range pcm {
		v := int(s)
		if v < 0 {
			v = -v
		}
		m = max(m, v)
	}
	return m
}

func TestSynthesizeIsDeterministic(t *testing.T) {
	for _, e := range Effects() {
		a, err := Synthesize(e)
		require.NoError(t, err, e.Key())
		b, err := Synthesize(e)
		require.NoError(t, err, e.Key())
		assert.Equal(t, a, b, e.Key())
		assert.NotEmpty(t, a, e.Key())
	}
}

func TestEffectLengths(t *testing.T) {
	tests := map[Effect]int{
		StepGrass: 3969,
		Hit:       3307,
		Swing:     1543,
		Pickup:    2646,
		Craft:     8820,
		LevelUp:   11025,
		Death:     17640,
		Click:     1323,
		Eat:       2205,
		Drink:     3969,
	}
	for e, n := range tests {
		pcm, err := Synthesize(e)
		require.NoError(t, err)
		assert.InDelta(t, n, len(pcm), 1, e.Key())
	}
}

func TestFootstepsNormalizedPerSurface(t *testing.T) {
	tests := []struct {
		e   Effect
		vol float64
	}{
		{StepGrass, 0.30},
		{StepDirt, 0.28},
		{StepStone, 0.26},
	}
	for _, tc := range tests {
		pcm, err := Synthesize(tc.e)
		require.NoError(t, err)
		assert.InDelta(t, tc.vol*full, float64(peak(pcm)), 1.5, tc.e.Key())
	}

	grass, _ := Synthesize(StepGrass)
	stone, _ := Synthesize(StepStone)
	assert.NotEqual(t, grass, stone)
}

func TestAmbientLoop(t *testing.T) {
	a := Ambient()
	require.InDelta(t, SampleRate*AmbientSeconds, len(a), 1)
	assert.Equal(t, a, Ambient(), "fixed seed")
	assert.Zero(t, a[0], "faded in")
	assert.Zero(t, a[len(a)-1], "faded out")
	p := float64(peak(a))
	assert.LessOrEqual(t, p, math.Ceil(ambientPeak*full))
	assert.Greater(t, p, 0.3*full)
}

func TestBuildBankDisablesFailingEffect(t *testing.T) {
	broken := func(e Effect) ([]int16, error) {
		if e == Hit {
			return nil, errors.New("boom")
		}
		return Synthesize(e)
	}
	b, err := buildBank(context.Background(), nil, broken)
	require.NoError(t, err)
	assert.Nil(t, b.Effect(Hit))
	assert.NotNil(t, b.Effect(Swing))
	assert.Equal(t, len(Effects())-1, b.Len())
	assert.NotEmpty(t, b.Loop())
}

func TestBuildBankCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := BuildBank(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func testBank(t *testing.T) *Bank {
	t.Helper()
	b := NewBank()
	b.set(StepGrass, []int16{1000, 1000, 1000, 1000})
	b.set(Click, []int16{2000, 2000})
	return b
}

func TestMixerDropsRepeatedAmbientEffects(t *testing.T) {
	m := NewMixer(testBank(t))
	m.Play(StepGrass)
	m.Play(StepGrass)
	assert.Equal(t, 1, m.Active())

	m.Play(Click)
	m.Play(Click)
	assert.Equal(t, 3, m.Active(), "clicks interrupt")

	m.Play(Hit)
	assert.Equal(t, 3, m.Active(), "silent effect ignored")

	last, n := m.Last()
	assert.Equal(t, Click, last)
	assert.Equal(t, 3, n)
}

func TestMixerMixAndRetire(t *testing.T) {
	m := NewMixer(testBank(t))
	m.ToggleBGM()
	m.Play(StepGrass)
	m.Play(Click)

	out := make([]int16, 3)
	m.Mix(out)
	assert.InDelta(t, 1950, int(out[0]), 1)
	assert.InDelta(t, 650, int(out[2]), 1)
	assert.Equal(t, 1, m.Active(), "click finished")

	m.Mix(out)
	assert.Zero(t, m.Active())
}

func TestMixerMuteAndClamp(t *testing.T) {
	b := NewBank()
	b.set(Hit, []int16{30000})
	b.set(Swing, []int16{30000})
	m := NewMixer(b)
	m.ToggleBGM()
	m.SetSFXVolume(4)
	sfx, _, _, _ := m.Levels()
	assert.Equal(t, 1.0, sfx)

	m.Play(Hit)
	m.Play(Swing)
	out := make([]int16, 1)
	m.Mix(out)
	assert.Equal(t, int16(full), out[0])

	assert.False(t, m.ToggleSFX())
	m.Play(Hit)
	assert.Zero(t, m.Active())
}

func TestWriteWAVRoundTrip(t *testing.T) {
	pcm, err := Synthesize(Pickup)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "pickup.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteWAV(f, pcm))
	require.NoError(t, f.Close())

	r, err := os.Open(path)
	require.NoError(t, err)
	defer r.Close()
	d := wav.NewDecoder(r)
	require.True(t, d.IsValidFile())
	buf, err := d.FullPCMBuffer()
	require.NoError(t, err)
	assert.Equal(t, uint32(SampleRate), d.SampleRate)
	assert.Equal(t, uint16(1), d.NumChans)
	require.Len(t, buf.Data, len(pcm))
	assert.Equal(t, int(pcm[100]), buf.Data[100])
}

func TestExportBankSkipsSilent(t *testing.T) {
	b := testBank(t)
	dir := filepath.Join(t.TempDir(), "sfx")
	paths, err := ExportBank(b, dir)
	require.NoError(t, err)
	assert.Len(t, paths, 2)
	assert.FileExists(t, filepath.Join(dir, "step_grass.wav"))
	assert.NoFileExists(t, filepath.Join(dir, "ambient.wav"))
}

func TestParseEffect(t *testing.T) {
	for _, e := range Effects() {
		got, err := ParseEffect(e.Key())
		require.NoError(t, err)
		assert.Equal(t, e, got)
	}
	_, err := ParseEffect("kazoo")
	assert.Error(t, err)
}
