package engine

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

type waveType int

const (
	waveSine waveType = iota
	waveSquare
	waveTriangle
	waveNoise
)

func (w waveType) sample(phase float64) float64 {
	switch w {
	case waveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case waveTriangle:
		return 4*math.Abs(phase-0.5) - 1
	case waveNoise:
		return rand.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// noteFreq returns the frequency of a MIDI note, A4 (69) = 440Hz.
func noteFreq(midi int) float64 {
	return 440 * math.Pow(2, float64(midi-69)/12)
}

// tone is a frequency glide from -> to over duration.
type tone struct {
	from, to float64
	duration time.Duration
	wave     waveType
}

// toneStreamer plays a single tone with a short linear attack and release.
type toneStreamer struct {
	tone    tone
	rate    beep.SampleRate
	total   int
	attack  int
	release int
	pos     int
	phase   float64
}

func newToneStreamer(t tone, rate beep.SampleRate) *toneStreamer {
	total := rate.N(t.duration)
	return &toneStreamer{
		tone:    t,
		rate:    rate,
		total:   total,
		attack:  min(rate.N(5*time.Millisecond), total/2),
		release: min(rate.N(40*time.Millisecond), total/2),
	}
}

func (s *toneStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		progress := float64(s.pos) / float64(s.total)
		freq := s.tone.from + (s.tone.to-s.tone.from)*progress

		vol := 1.0
		if s.pos < s.attack {
			vol = float64(s.pos) / float64(s.attack)
		} else if remaining := s.total - s.pos; remaining < s.release {
			vol = float64(remaining) / float64(s.release)
		}

		val := s.tone.wave.sample(s.phase) * vol
		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *toneStreamer) Err() error { return nil }

var sfxTones = map[SfxPreset][]tone{
	Click:         {{2000, 1800, 30 * time.Millisecond, waveSquare}},
	Confirmation1: {{660, 660, 80 * time.Millisecond, waveSquare}, {990, 990, 140 * time.Millisecond, waveSquare}},
	EnemyHit:      {{300, 90, 180 * time.Millisecond, waveNoise}},
	Impact1:       {{160, 40, 200 * time.Millisecond, waveTriangle}},
	Jingle1:       {{noteFreq(72), noteFreq(72), 90 * time.Millisecond, waveSquare}, {noteFreq(76), noteFreq(76), 90 * time.Millisecond, waveSquare}, {noteFreq(79), noteFreq(79), 180 * time.Millisecond, waveSquare}},
	Minimize1:     {{1200, 400, 160 * time.Millisecond, waveTriangle}},
	Minimize2:     {{900, 220, 220 * time.Millisecond, waveSquare}},
	Switch1:       {{500, 500, 40 * time.Millisecond, waveSquare}, {750, 750, 40 * time.Millisecond, waveSquare}},
}

// newSfxStreamer returns a finite streamer for preset, or nil for an unknown preset.
func newSfxStreamer(preset SfxPreset, rate beep.SampleRate) beep.Streamer {
	tones, ok := sfxTones[preset]
	if !ok {
		return nil
	}
	streamers := make([]beep.Streamer, len(tones))
	for i, t := range tones {
		streamers[i] = newToneStreamer(t, rate)
	}
	return beep.Seq(streamers...)
}

// melody is a looping note sequence. A rest is written as -1.
type melody struct {
	notes []int
	step  time.Duration
	wave  waveType
}

var musicMelodies = map[MusicPreset]melody{
	Classy8Bit: {
		notes: []int{72, 76, 79, 76, 72, 76, 79, 84, 77, 81, 84, 81, 79, 74, 71, -1},
		step:  180 * time.Millisecond,
		wave:  waveSquare,
	},
	MysteriousMagic: {
		notes: []int{57, 60, 64, 63, 57, 60, 65, 64, 57, 61, 64, 67, 65, 64, 60, -1},
		step:  320 * time.Millisecond,
		wave:  waveTriangle,
	},
	WhimsicalPopsicle: {
		notes: []int{79, 81, 83, 79, 84, 83, 81, 79, 76, 79, 81, 76, 74, 76, 79, -1},
		step:  150 * time.Millisecond,
		wave:  waveSine,
	},
}

// melodyStreamer loops a melody forever.
type melodyStreamer struct {
	melody      melody
	rate        beep.SampleRate
	stepSamples int
	release     int
	pos         int
	phase       float64
}

func newMelodyStreamer(preset MusicPreset, rate beep.SampleRate) beep.Streamer {
	m, ok := musicMelodies[preset]
	if !ok {
		return nil
	}
	step := max(rate.N(m.step), 1)
	return &melodyStreamer{
		melody:      m,
		rate:        rate,
		stepSamples: step,
		release:     step / 3,
	}
}

func (s *melodyStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		index := (s.pos / s.stepSamples) % len(s.melody.notes)
		within := s.pos % s.stepSamples
		note := s.melody.notes[index]

		val := 0.0
		if note >= 0 {
			vol := 1.0
			if remaining := s.stepSamples - within; remaining < s.release {
				vol = float64(remaining) / float64(s.release)
			}
			val = s.melody.wave.sample(s.phase) * vol * 0.5
			s.phase += noteFreq(note) / float64(s.rate)
			s.phase -= math.Floor(s.phase)
		}

		samples[i][0] = val
		samples[i][1] = val
		s.pos++
	}
	return len(samples), true
}

func (s *melodyStreamer) Err() error { return nil }

// newVolume wraps s in a linear volume. math.Log2(0) is -Inf, so zero is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
