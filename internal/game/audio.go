package game

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/data-ballpit/internal/config"
	"github.com/iburimskiy/data-ballpit/internal/logging"
	"github.com/iburimskiy/data-ballpit/internal/sound"
)

const (
	sampleRate = beep.SampleRate(44100)
	blipLength = 120 * time.Millisecond
	blipVolume = 0.25
)

// player mixes spawn blips and the click sample into one speaker stream:
// mixer -> tap -> speaker.
type player struct {
	mixer *beep.Mixer
	tap   *sound.Tap
	click *beep.Buffer
}

// newPlayer returns nil when sound is disabled or no device is available.
func newPlayer(s config.Settings) *player {
	if !s.Sound {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/20)); err != nil {
		logging.Warnf("sound disabled: %v", err)
		return nil
	}
	p := &player{mixer: &beep.Mixer{}}
	p.tap = sound.NewTap(p.mixer, config.SampleRing)
	speaker.Play(p.tap)

	if s.ClickSample != "" {
		buf, err := loadSample(s.DataPath(s.ClickSample))
		if err != nil {
			logging.Warnf("click sample: %v", err)
		} else {
			p.click = buf
		}
	}
	return p
}

// blip plays a tone pitched by a normalized value.
func (p *player) blip(norm float64) {
	if p == nil {
		return
	}
	s := sound.Blip(sampleRate, sound.PitchFor(norm), blipLength, blipVolume)
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

func (p *player) playClick() {
	if p == nil || p.click == nil {
		return
	}
	s := &effects.Volume{
		Streamer: p.click.Streamer(0, p.click.Len()),
		Base:     2,
		Volume:   -1,
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// level is the recent output loudness, 0 when silent or disabled.
func (p *player) level() float64 {
	if p == nil {
		return 0
	}
	return p.tap.Level(1024)
}

func (p *player) close() {
	if p == nil {
		return
	}
	speaker.Lock()
	speaker.Clear()
	speaker.Unlock()
}

// loadSample decodes a wav, mp3 or flac file fully into memory at the
// player's sample rate.
func loadSample(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		return nil, errors.New("unsupported file type: " + filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		src = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(src)
	return buf, nil
}
