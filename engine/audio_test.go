package engine

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToneStreamerLengthAndRange(t *testing.T) {
	rate := beep.SampleRate(8000)
	s := newToneStreamer(tone{440, 880, 50 * time.Millisecond, waveSquare}, rate)

	buf := make([][2]float64, 1000)
	n, ok := s.Stream(buf)
	assert.True(t, ok)
	assert.Equal(t, rate.N(50*time.Millisecond), n)
	for _, sample := range buf[:n] {
		assert.LessOrEqual(t, sample[0], 1.0)
		assert.GreaterOrEqual(t, sample[0], -1.0)
	}

	n, ok = s.Stream(buf)
	assert.False(t, ok)
	assert.Zero(t, n)
	assert.NoError(t, s.Err())
}

func TestMelodyStreamerNeverDrains(t *testing.T) {
	s := newMelodyStreamer(Classy8Bit, beep.SampleRate(8000))
	require.NotNil(t, s)

	buf := make([][2]float64, 4096)
	for range 20 {
		n, ok := s.Stream(buf)
		require.True(t, ok)
		require.Equal(t, len(buf), n)
	}
	assert.Nil(t, newMelodyStreamer(MusicPreset(99), beep.SampleRate(8000)))
}

func TestSfxPresetsAllSynthesize(t *testing.T) {
	for preset := Click; preset <= Switch1; preset++ {
		assert.NotNil(t, newSfxStreamer(preset, DefaultSampleRate), preset.String())
	}
	assert.Nil(t, newSfxStreamer(SfxPreset(99), DefaultSampleRate))
}

func TestAudioManagerMixesAndDrains(t *testing.T) {
	audio := NewAudioManager(DefaultAudioOptions())

	audio.PlayMusic(Classy8Bit, 0.1)
	audio.PlaySfx(Minimize2, 0.2)
	assert.Equal(t, 2, audio.Voices())
	assert.Equal(t, 1, audio.SfxPlayed())

	preset, playing := audio.Music()
	assert.True(t, playing)
	assert.Equal(t, Classy8Bit, preset)

	// The sfx finishes; the looping music stays.
	audio.Pump(time.Second)
	assert.Equal(t, 1, audio.Voices())

	audio.PlayMusic(MysteriousMagic, 0.1)
	audio.Pump(10 * time.Millisecond)
	assert.Equal(t, 1, audio.Voices(), "replaced track leaves the mixer")

	audio.StopMusic()
	audio.Pump(10 * time.Millisecond)
	assert.Zero(t, audio.Voices())
	_, playing = audio.Music()
	assert.False(t, playing)

	audio.PlaySfx(SfxPreset(99), 1)
	assert.Equal(t, 1, audio.SfxPlayed())
}

func TestAudioManagerGain(t *testing.T) {
	opts := DefaultAudioOptions()
	opts.MasterVolume = 0.5
	opts.SfxVolume = 0.5
	audio := NewAudioManager(opts)
	assert.InDelta(t, 0.05, audio.gain(0.2, opts.SfxVolume), 1e-6)

	audio.SetMuted(true)
	assert.Zero(t, audio.gain(0.2, opts.SfxVolume))

	audio.Close()
	assert.Zero(t, audio.Voices())
}

func TestNoteFreq(t *testing.T) {
	assert.InDelta(t, 440.0, noteFreq(69), 1e-9)
	assert.InDelta(t, 880.0, noteFreq(81), 1e-9)
}
