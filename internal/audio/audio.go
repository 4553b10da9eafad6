// Package audio plays a song through the speaker and reports how far into it
// playback is, so the song itself can drive judgement.
package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

var ErrFormat = errors.New("audio: unsupported file type")

// Decode opens an mp3, ogg or wav file by its extension.
func Decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if nil != err {
		return nil, beep.Format{}, fmt.Errorf("unable to open audio: %w", err)
	}

	var decode func(io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		decode = mp3.Decode
	case ".ogg":
		decode = vorbis.Decode
	case ".wav":
		decode = func(r io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
			return wav.Decode(r)
		}
	default:
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("%w: %v", ErrFormat, filepath.Ext(path))
	}

	s, format, err := decode(f)
	if nil != err {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("unable to decode %v: %w", path, err)
	}
	return s, format, nil
}

// Chunk is how much audio the speaker asks for at once.
func Chunk(format beep.Format) int {
	return format.SampleRate.N(time.Second / 60)
}
