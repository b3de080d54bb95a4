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

// Package wavwriter saves the cartridge's speaker-mode audio stream to disk
// as a WAV file. Note that sample data is buffered in memory in its entirety
// and written to disk on End(). It is therefore probably only suitable for
// short captures.
package wavwriter

import (
	"os"

	"github.com/youpy/go-wav"

	"github.com/goyan-emu/goyan/curated"
	"github.com/goyan-emu/goyan/logger"
)

// WavWriter accumulates the 8-bit stereo stream pulled from the cartridge.
type WavWriter struct {
	filename   string
	sampleRate uint32
	buffer     []wav.Sample
}

// New is the preferred method of initialisation for the WavWriter type.
func New(filename string, sampleRate uint32) (*WavWriter, error) {
	aw := &WavWriter{
		filename:   filename,
		sampleRate: sampleRate,
		buffer:     make([]wav.Sample, 0),
	}

	return aw, nil
}

// AddSamples appends interleaved signed 8-bit stereo samples. Byte pairs are
// taken as one left/right sample frame.
func (aw *WavWriter) AddSamples(data []uint8) {
	for i := 0; i+1 < len(data); i += 2 {
		w := wav.Sample{}

		// 8-bit wav data is unsigned
		w.Values[0] = int(int8(data[i])) + 128
		w.Values[1] = int(int8(data[i+1])) + 128

		aw.buffer = append(aw.buffer, w)
	}
}

// End writes the accumulated samples to disk.
func (aw *WavWriter) End() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	enc := wav.NewWriter(f, uint32(len(aw.buffer)), 2, aw.sampleRate, 8)
	if enc == nil {
		return curated.Errorf("wavwriter: %v", "bad parameters for wav encoding")
	}

	logger.Logf("wavwriter", "writing audio to %s", aw.filename)

	err = enc.WriteSamples(aw.buffer)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	return nil
}
