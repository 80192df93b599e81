package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Audio is the sound interface game logic talks to.
type Audio interface {
	// PlayMusic replaces the current track with preset, looping until stopped.
	PlayMusic(preset MusicPreset, volume float32)
	StopMusic()
	// PlaySfx starts a one-shot sound effect on top of whatever is playing.
	PlaySfx(preset SfxPreset, volume float32)
}

// NopAudio discards every request.
type NopAudio struct{}

func (NopAudio) PlayMusic(MusicPreset, float32) {}
func (NopAudio) StopMusic()                     {}
func (NopAudio) PlaySfx(SfxPreset, float32)     {}

const DefaultSampleRate = beep.SampleRate(44100)

type AudioOptions struct {
	SampleRate   beep.SampleRate
	MasterVolume float64
	MusicVolume  float64
	SfxVolume    float64
	Muted        bool
}

// DefaultAudioOptions plays everything at the volume the caller asks for.
func DefaultAudioOptions() AudioOptions {
	return AudioOptions{
		SampleRate:   DefaultSampleRate,
		MasterVolume: 1,
		MusicVolume:  1,
		SfxVolume:    1,
	}
}

// AudioManager synthesizes the music and sfx presets into a beep.Mixer.
// Without an open speaker the mixer is only drained by Pump.
type AudioManager struct {
	mu          sync.Mutex
	opts        AudioOptions
	mixer       *beep.Mixer
	music       *beep.Ctrl
	musicPreset MusicPreset
	sfxPlayed   int
	speakerOpen bool
	scratch     [][2]float64
}

func NewAudioManager(opts AudioOptions) *AudioManager {
	if opts.SampleRate <= 0 {
		opts.SampleRate = DefaultSampleRate
	}
	return &AudioManager{
		opts:  opts,
		mixer: &beep.Mixer{},
	}
}

// OpenSpeaker initializes the system speaker and starts it pulling from the mixer.
func (a *AudioManager) OpenSpeaker() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.speakerOpen {
		return nil
	}
	rate := a.opts.SampleRate
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(a.mixer)
	a.speakerOpen = true
	return nil
}

// Close stops all sounds and releases the speaker if one was opened.
func (a *AudioManager) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.lockSpeaker()
	if a.music != nil {
		a.music.Streamer = nil
		a.music = nil
	}
	a.mixer.Clear()
	a.unlockSpeaker()

	if a.speakerOpen {
		speaker.Close()
		a.speakerOpen = false
	}
}

func (a *AudioManager) PlayMusic(preset MusicPreset, volume float32) {
	streamer := newMelodyStreamer(preset, a.opts.SampleRate)
	if streamer == nil {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.lockSpeaker()
	defer a.unlockSpeaker()
	if a.music != nil {
		// A Ctrl with no streamer drains immediately and the mixer drops it.
		a.music.Streamer = nil
	}
	a.music = &beep.Ctrl{Streamer: newVolume(streamer, a.gain(volume, a.opts.MusicVolume))}
	a.musicPreset = preset
	a.mixer.Add(a.music)
}

func (a *AudioManager) StopMusic() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.music == nil {
		return
	}
	a.lockSpeaker()
	a.music.Streamer = nil
	a.unlockSpeaker()
	a.music = nil
}

func (a *AudioManager) PlaySfx(preset SfxPreset, volume float32) {
	streamer := newSfxStreamer(preset, a.opts.SampleRate)
	if streamer == nil {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.sfxPlayed++
	a.lockSpeaker()
	a.mixer.Add(newVolume(streamer, a.gain(volume, a.opts.SfxVolume)))
	a.unlockSpeaker()
}

// SetMuted silences everything started from now on.
func (a *AudioManager) SetMuted(muted bool) {
	a.mu.Lock()
	a.opts.Muted = muted
	a.mu.Unlock()
}

// Music returns the current track and whether one is playing.
func (a *AudioManager) Music() (MusicPreset, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.musicPreset, a.music != nil
}

// SfxPlayed counts PlaySfx calls with a known preset.
func (a *AudioManager) SfxPlayed() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sfxPlayed
}

// Voices is the number of streamers currently in the mixer.
func (a *AudioManager) Voices() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lockSpeaker()
	defer a.unlockSpeaker()
	return a.mixer.Len()
}

// Pump streams d worth of samples out of the mixer and discards them, letting
// finished sounds leave the mixer when no speaker is attached.
func (a *AudioManager) Pump(d time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.speakerOpen {
		return
	}

	n := a.opts.SampleRate.N(d)
	if cap(a.scratch) < 512 {
		a.scratch = make([][2]float64, 512)
	}
	for n > 0 {
		chunk := a.scratch[:min(n, len(a.scratch))]
		a.mixer.Stream(chunk)
		n -= len(chunk)
	}
}

func (a *AudioManager) gain(volume float32, channel float64) float64 {
	if a.opts.Muted {
		return 0
	}
	return float64(volume) * channel * a.opts.MasterVolume
}

func (a *AudioManager) lockSpeaker() {
	if a.speakerOpen {
		speaker.Lock()
	}
}

func (a *AudioManager) unlockSpeaker() {
	if a.speakerOpen {
		speaker.Unlock()
	}
}
