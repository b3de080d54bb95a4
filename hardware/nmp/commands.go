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

package nmp

import (
	"path/filepath"
	"strings"

	"github.com/goyan-emu/goyan/hardware/extaudio"
	"github.com/goyan-emu/goyan/hardware/nmp/id3"
	"github.com/goyan-emu/goyan/hardware/nmp/mediafs"
	"github.com/goyan-emu/goyan/logger"
	"github.com/goyan-emu/goyan/pcmdata"
)

// Command opcodes. The opcode is always the first 16-bits of the command
// stream, big-endian.
const (
	cmdStartFileList     uint16 = 0x1000
	cmdContinueFileList  uint16 = 0x1001
	cmdSetDir            uint16 = 0x1002
	cmdGetID3Data        uint16 = 0x1003
	cmdPlayMusic         uint16 = 0x1004
	cmdStopMusic         uint16 = 0x1005
	cmdPause             uint16 = 0x1006
	cmdResume            uint16 = 0x1007
	cmdSeek              uint16 = 0x1008
	cmdSetVolume         uint16 = 0x1009
	cmdPlaySfx           uint16 = 0x100a
	cmdCheckFirmwareFile uint16 = 0x1010
	cmdReadFirmwareFile  uint16 = 0x1011
	cmdCloseFirmwareFile uint16 = 0x1012
	cmdSleep             uint16 = 0x2000
	cmdWake              uint16 = 0x2001
	cmdInit              uint16 = 0x8001
	cmdUpdateAudio       uint16 = 0x8100
	cmdHeadphoneStatus   uint16 = 0x9001
)

// completion flags combined with the opcode to form the command status word.
const (
	statusComplete uint16 = 0x4000
	statusSleep    uint16 = 0x8000
)

// the maximum device volume. rescaled to the external audio range when the
// set-volume command runs.
const maxDeviceVolume = 46

// length in seconds reported for a music file that could not be loaded.
// keeps the trackbar arithmetic well-defined.
const dummyMusicLength = 2

// streamName extracts a file or folder name from the command stream. Names
// are sent as 16-bit characters from byte 3 onwards, optionally preceded by
// a single entry-type marker byte.
func (py *NMP) streamName() string {
	s := strings.Builder{}

	for x := 3; x < len(py.commandStream); x += 2 {
		c := py.commandStream[x]
		if c == 0 {
			break
		}
		if x == 3 && (c == 0x01 || c == 0x02) {
			continue
		}
		s.WriteByte(c)
	}

	return s.String()
}

// resetSeek returns the seek engine to its undetermined state.
func (py *NMP) resetSeek() {
	py.seekPos = 0
	py.seekDir = 0xff
	py.seekCount = 0
}

// loadAudio decodes the named media file into the external audio channel.
// Returns false if the file could not be loaded.
func (py *NMP) loadAudio(filename string) bool {
	p, err := pcmdata.Load(filename)
	if err != nil {
		logger.Logf(logTag, "%v", err)
		return false
	}

	py.ext.Buffer = p.Data
	py.sampleRate = uint32(p.SampleRate)
	py.channels = uint32(p.NumChannels)
	py.musicLength = uint32(p.TotalTime)

	return true
}

// processCommand interprets the assembled command opcode and the accompanying
// byte stream. Every command independently decides the status word and
// whether an interrupt should ultimately be raised.
func (py *NMP) processCommand() {
	logger.Logf(logTag, "cmd -> %#04x", py.cmd)

	// set up default status data
	for i := range py.statusData {
		py.statusData[i] = 0
	}
	py.putStatus(0, py.cmd)

	switch py.cmd {
	case cmdStartFileList:
		py.cmdStatus = cmdStartFileList | statusComplete
		py.validCommand = true

		py.entryCount = 0

		// grab all folders, then files
		py.folders, py.musicFiles = mediafs.List(py.currentDir, mediaExt)

		// stop list if done
		if py.entryCount >= len(py.folders)+len(py.musicFiles) {
			py.statusData[2] = 0
			py.statusData[3] = 1
		}

		py.entryCount++

	case cmdContinueFileList:
		py.cmdStatus = cmdContinueFileList | statusComplete
		py.validCommand = true

		// stop list if done
		if py.entryCount >= len(py.folders)+len(py.musicFiles) {
			py.statusData[2] = 0
			py.statusData[3] = 1
		}

		// the cursor stops one past the last entry
		if py.entryCount <= len(py.folders)+len(py.musicFiles) {
			py.entryCount++
		}

	case cmdSetDir:
		py.cmdStatus = cmdSetDir | statusComplete
		py.validCommand = true

		newDir := py.streamName()

		if newDir == ".." {
			// move one directory up, popping the trailing path segment
			if i := strings.LastIndexByte(py.currentDir, '/'); i >= 0 {
				py.currentDir = py.currentDir[:i]
			}
		} else if newDir != "" {
			// jump down into new directory
			py.currentDir += "/" + newDir
		}

	case cmdGetID3Data:
		py.cmdStatus = cmdGetID3Data | statusComplete
		py.validCommand = true

		py.currentMusicFile = py.streamName()

		// the host expects an arbitrary 16-bit access index from which ID3
		// data can subsequently be read. the NMP always uses 0x0101
		py.putStatus(6, uint16(accessID3))

		title, artist := id3.ReadTags(py.currentDir + "/" + py.currentMusicFile)
		py.title = id3.MakePrintable(title)
		py.artist = id3.MakePrintable(artist)

	case cmdPlayMusic:
		py.cmdStatus = cmdPlayMusic | statusComplete
		py.validCommand = true
		py.musicPlaying = true
		py.mediaPlaying = true

		py.sampleIndex = 0
		py.lDitherError = 0
		py.rDitherError = 0
		py.trackerUpdate = 0
		py.ext.LastPos = 0
		py.ext.SamplePos = 0

		py.resetSeek()

		if py.ext.UseHeadphones {
			// timestamp-tracking mode. audio leaves through the headphone
			// jack and the cartridge only reports progress
			py.updateAudioStream = false
			py.updateTrackbarTimestamp = true
			py.manualCmd = cmdUpdateAudio
			py.irqDelay = 10
		} else {
			// streaming mode. audio is resampled and pulled by the host
			py.updateAudioStream = true
			py.updateTrackbarTimestamp = false
		}

		py.currentMusicFile = py.streamName()

		if !py.loadAudio(py.currentDir + "/" + py.currentMusicFile) {
			// if no audio could be loaded, use a dummy length for the song
			py.musicLength = dummyMusicLength
		}

	case cmdStopMusic:
		py.cmdStatus = cmdStopMusic | statusComplete
		py.validCommand = true
		py.musicPlaying = false
		py.mediaPlaying = false
		py.ext.Playing = false

		py.frameCount = 0
		py.trackerUpdate = 0

		py.updateAudioStream = false
		py.updateTrackbarTimestamp = false

		py.resetSeek()

		// cancel all deferred execution to prevent stale auto re-entry
		py.manualCmd = 0
		py.irqDelay = 0
		py.lastDelay = 0
		py.manualIRQ = false

	case cmdPause:
		py.cmdStatus = cmdPause | statusComplete
		py.validCommand = true
		py.musicPlaying = false
		py.mediaPlaying = false
		py.ext.Playing = false

		py.resetSeek()

		// remember the current delay for resume
		py.lastDelay = py.irqDelay
		py.manualCmd = 0
		py.irqDelay = 0
		py.manualIRQ = false

	case cmdResume:
		// the real firmware reports the pause opcode in the resume status
		py.cmdStatus = cmdPause | statusComplete
		py.validCommand = true
		py.musicPlaying = true
		py.mediaPlaying = true

		if py.sampleRate != 0 && py.channels != 0 {
			py.ext.Playing = true
		}

		if py.ext.UseHeadphones {
			py.updateAudioStream = false
			py.updateTrackbarTimestamp = true

			py.manualCmd = cmdUpdateAudio
			py.irqDelay = py.lastDelay
			py.lastDelay = 0
		} else {
			py.updateAudioStream = true
			py.updateTrackbarTimestamp = false
		}

	case cmdSeek:
		py.cmdStatus = cmdSeek | statusComplete
		py.validCommand = true

		if len(py.commandStream) >= 4 {
			py.seek()
		}

	case cmdSetVolume:
		// no IRQ generated
		if len(py.commandStream) >= 4 {
			py.volume = py.commandStream[3]
			if py.volume > maxDeviceVolume {
				py.volume = maxDeviceVolume
			}
			py.ext.Volume = uint8(float64(py.volume) / maxDeviceVolume * extaudio.MaxVolume)
		}

		py.seekPos = 0
		py.seekDir = 0xff

	case cmdPlaySfx:
		// sound effect for menu navigation. no status word but the result
		// still warrants an interrupt
		py.validCommand = true
		py.musicPlaying = true
		py.mediaPlaying = true

		py.sampleIndex = 0
		py.lDitherError = 0
		py.rDitherError = 0
		py.trackerUpdate = 0
		py.ext.LastPos = 0
		py.ext.SamplePos = 0

		py.updateAudioStream = true
		py.updateTrackbarTimestamp = false

		py.loadAudio(filepath.Join(py.env.DataDir, "sfx.wav"))

		py.manualCmd = cmdUpdateAudio
		py.forceIRQ()

	case cmdCheckFirmwareFile:
		py.cmdStatus = cmdCheckFirmwareFile | statusComplete
		py.validCommand = true

	case cmdReadFirmwareFile:
		py.cmdStatus = cmdReadFirmwareFile | statusComplete
		py.validCommand = true

	case cmdCloseFirmwareFile:
		py.cmdStatus = cmdCloseFirmwareFile | statusComplete
		py.validCommand = true
		py.cmd = 0

	case cmdSleep:
		py.cmdStatus = cmdSleep | statusSleep
		py.validCommand = true

	case cmdWake:
		py.cmdStatus = cmdWake | statusSleep
		py.validCommand = true

	case cmdInit:
		py.cmdStatus = cmdInit
		py.validCommand = true

	case cmdUpdateAudio:
		py.updateAudio()

	case cmdHeadphoneStatus:
		py.headphoneStatus()

	default:
		py.validCommand = false
		py.cmdStatus = 0
		logger.Logf(logTag, "unknown command -> %#04x", py.cmd)
	}
}

// seek derives the seek direction from repeated position samples and shifts
// the playback position. The command stream has already been checked for the
// required length.
func (py *NMP) seek() {
	py.seekCount++

	// magnitude grows the longer the seek is held
	shift := int(2 + py.seekCount/10)

	if py.seekDir == 0xff {
		// wait until at least two consecutive inputs are non-zero before
		// establishing a direction
		lastPos := py.seekPos
		py.seekPos = py.commandStream[3]

		if lastPos != 0 && py.seekPos != 0 {
			if py.seekPos < lastPos {
				// rewind = inputs decrement
				py.seekDir = 0
			} else {
				// fast forward = inputs increment
				py.seekDir = 1
			}
		}
	} else if py.seekDir == 0 {
		// rewind playback position
		if py.ext.UseHeadphones {
			pos := py.ext.SamplePos - int(py.sampleRate)*shift
			if pos < 0 {
				pos = 0
			}
			py.ext.SamplePos = pos
		} else {
			pos := int(py.sampleIndex) - deviceSampleRate*shift
			if pos < 0 {
				pos = 0
			}
			py.sampleIndex = uint32(pos)
		}
	} else {
		// fast forward playback position
		if py.ext.UseHeadphones {
			py.ext.SamplePos += int(py.sampleRate) * shift
		} else {
			py.sampleIndex += uint32(deviceSampleRate * shift)
		}
	}

	py.manualCmd = cmdUpdateAudio
	py.updateAudioStream = false
	py.updateTrackbarTimestamp = true
	py.irqDelay = 0
	py.forceIRQ()
}

// headphoneStatus toggles the output mode and recomputes the playback cursor
// under the new mode.
func (py *NMP) headphoneStatus() {
	py.cmdStatus = cmdHeadphoneStatus
	py.validCommand = true

	py.ext.UseHeadphones = !py.ext.UseHeadphones

	if py.ext.UseHeadphones {
		py.statusData[2] = 0
		py.statusData[3] = 1

		py.updateAudioStream = false
		py.updateTrackbarTimestamp = true

		// recover the absolute source position from the last offset touched
		// by the resampler
		if py.channels != 0 {
			py.ext.SamplePos = py.ext.LastPos / int(py.channels)
		}

		// force a timestamp update after switching to headphones
		if py.ext.Playing {
			py.manualCmd = cmdUpdateAudio
			py.irqDelay = 1
		}
	} else {
		py.updateAudioStream = true
		py.updateTrackbarTimestamp = false

		// convert the absolute source position back to a device-rate index
		if py.channels != 0 {
			ratio := float64(py.sampleRate) / deviceSampleRate
			index := uint32(float64(py.ext.LastPos/int(py.channels)) / ratio)
			py.sampleIndex = index &^ 0x01
		}

		py.manualCmd = 0
		py.irqDelay = 0
	}
}
