// This file is part of Goyan.
//
// Goyan is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Goyan is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Goyan.  If not, see <https://www.gnu.org/licenses/>.

// Package pcmdata decodes media files into the signed 16-bit PCM the
// cartridge's resampler works from. MP3 and WAV files are supported, which
// matches what the real device accepts from its SD card (plus the WAV sound
// effect sample burned into the firmware).
package pcmdata

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"

	"github.com/goyan-emu/goyan/curated"
	"github.com/goyan-emu/goyan/logger"
)

// tag string used in calls to Log().
const logTag = "pcmdata"

// PCM is the result of decoding a media file.
type PCM struct {
	// interleaved sample data
	Data []int16

	NumChannels int
	SampleRate  int

	// length of the recording in seconds
	TotalTime float64
}

// sentinel error patterns returned by Load().
const (
	UnsupportedFile = "pcmdata: unsupported file type (%s)"
	LoadError       = "pcmdata: %v"
)

// Load decodes the named media file. File type is decided by extension.
func Load(filename string) (PCM, error) {
	p := PCM{}

	f, err := os.Open(filename)
	if err != nil {
		return p, curated.Errorf(LoadError, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		dec := wav.NewDecoder(f)
		if dec == nil || !dec.IsValidFile() {
			return p, curated.Errorf(LoadError, "not a valid wav file")
		}

		logger.Logf(logTag, "loading from wav file: %s", filepath.Base(filename))

		// load all data at once
		buf, err := dec.FullPCMBuffer()
		if err != nil {
			return p, curated.Errorf(LoadError, err)
		}

		p.NumChannels = buf.Format.NumChannels
		p.SampleRate = buf.Format.SampleRate

		// go-audio buffers store samples as int whatever the source bit
		// depth. rescale to 16-bit
		p.Data = make([]int16, len(buf.Data))
		switch {
		case dec.BitDepth < 16:
			shift := 16 - int(dec.BitDepth)
			for i, v := range buf.Data {
				p.Data[i] = int16(v << shift)
			}
		case dec.BitDepth > 16:
			shift := int(dec.BitDepth) - 16
			for i, v := range buf.Data {
				p.Data[i] = int16(v >> shift)
			}
		default:
			for i, v := range buf.Data {
				p.Data[i] = int16(v)
			}
		}

		dur, err := dec.Duration()
		if err != nil {
			return p, curated.Errorf(LoadError, err)
		}
		p.TotalTime = dur.Seconds()

	case ".mp3":
		dec, err := mp3.NewDecoder(f)
		if err != nil {
			return p, curated.Errorf(LoadError, err)
		}

		logger.Logf(logTag, "loading from mp3 file: %s", filepath.Base(filename))

		// the go-mp3 stream is always 16bit (little endian) 2 channels,
		// even if the source is single channel. a sample frame is therefore
		// always 4 bytes
		p.NumChannels = 2
		p.SampleRate = dec.SampleRate()

		err = nil
		chunk := make([]byte, 4096)
		for err != io.EOF {
			var chunkLen int
			chunkLen, err = dec.Read(chunk)
			if err != nil && err != io.EOF {
				return p, curated.Errorf(LoadError, err)
			}

			for i := 0; i+1 < chunkLen; i += 2 {
				p.Data = append(p.Data, int16(uint16(chunk[i])|uint16(chunk[i+1])<<8))
			}
		}

		p.TotalTime = float64(len(p.Data)) / float64(p.NumChannels) / float64(p.SampleRate)

	default:
		return p, curated.Errorf(UnsupportedFile, filepath.Ext(filename))
	}

	logger.Logf(logTag, "num channels: %d", p.NumChannels)
	logger.Logf(logTag, "sample rate: %dHz", p.SampleRate)
	logger.Logf(logTag, "total time: %.02fs", p.TotalTime)

	return p, nil
}
