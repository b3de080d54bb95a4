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
	"fmt"
	"strings"

	"github.com/goyan-emu/goyan/environment"
	"github.com/goyan-emu/goyan/hardware/extaudio"
	"github.com/goyan-emu/goyan/logger"
)

// tag string used in calls to Log().
const logTag = "nmp"

// the native output rate of the device. all source audio is resampled to
// this rate before being handed to the host.
const deviceSampleRate = 16384

// the extension the device lists and plays from its SD card.
const mediaExt = ".mp3"

// IRQLine is the cartridge's interrupt line into the host.
type IRQLine interface {
	Raise()
}

// State records how the device will interpret the next register access.
type State int

// List of valid State values. Exactly one is active at a time.
const (
	StateInit State = iota
	StateBootSequence
	StateProcessCmd
	StateWait
	StateGetSDData
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateBootSequence:
		return "boot sequence"
	case StateProcessCmd:
		return "process command"
	case StateWait:
		return "wait"
	case StateGetSDData:
		return "get SD data"
	}
	return "unknown"
}

// PendingAction describes what the device wants to happen next. The host's
// scheduler consumes it by calling Step() once per emulated tick.
type PendingAction struct {
	// the command that will be re-executed when the delay expires. zero
	// means none
	Opcode uint16

	// ticks until the interrupt fires
	Delay int

	// the interrupt is being forced out-of-band, bypassing the delay
	Immediate bool
}

// NMP represents the Nintendo MP3 Player cartridge.
type NMP struct {
	env *environment.Environment
	irq IRQLine
	ext *extaudio.Audio

	state State

	// register state. accessMode and accessParam are assembled from byte
	// writes, high byte first
	accessMode  uint16
	accessParam uint32

	// firmware image uploaded by the host. a nonzero cursor means data-in
	// writes are firmware bytes
	firmware     []uint8
	firmwareAddr uint32

	// bytes written to the data-in port since the last entry into the
	// process-command state
	commandStream []uint8

	// the last executed command. bulk data accesses are keyed by this
	cmd uint16

	// status word reported through the status window. the opcode of the
	// last command combined with a completion flag
	cmdStatus uint16

	// an unconsumed interrupt-worthy result is pending
	validCommand bool

	// deferred execution state, consumed by Step()
	manualCmd uint16
	manualIRQ bool
	irqDelay  int
	lastDelay int

	// monotonic counter advanced on each command-window poll
	ticks uint16

	// boot-status read counter, 0 to 4
	initStage int

	// navigation state
	currentDir       string
	folders          []string
	musicFiles       []string
	entryCount       int
	currentMusicFile string

	// metadata for the current music file, normalised to printable form
	title  string
	artist string

	// playback state
	musicPlaying bool
	mediaPlaying bool
	volume       uint8

	sampleIndex     uint32
	sampleRate      uint32
	channels        uint32
	musicLength     uint32
	frameCount      uint32
	lDitherError    int16
	rDitherError    int16
	trackerUpdate   uint32
	audioBufferSize uint32
	audioIndex      uint32

	// exactly one of these is set while media is playing
	updateAudioStream       bool
	updateTrackbarTimestamp bool

	// seek state. seekDir is 0xff until a direction has been established
	seekPos   uint8
	seekDir   uint8
	seekCount uint32

	// transfer buffers. dataIndex is the read cursor into whichever buffer
	// is active
	statusData [16]uint8
	cardData   []uint8
	dataIndex  int
}

// NewNMP is the preferred method of initialisation for the NMP type.
//
// The rootDir argument is the directory presented to the host as the root of
// the SD card. The IRQLine must not be nil.
func NewNMP(env *environment.Environment, irq IRQLine, ext *extaudio.Audio, rootDir string) *NMP {
	py := &NMP{
		env:        env,
		irq:        irq,
		ext:        ext,
		state:      StateInit,
		firmware:   make([]uint8, firmwareSize),
		currentDir: rootDir,
		seekDir:    0xff,
	}

	logger.Logf(logTag, "attached [%s]", rootDir)

	return py
}

// Step implements the interrupt-timing scheduler tick. The pending delay
// counter is decremented and, on expiry, the pending manual command is
// executed and the interrupt raised.
func (py *NMP) Step() {
	if py.irqDelay == 0 {
		return
	}

	py.irqDelay--
	if py.irqDelay > 0 {
		return
	}

	py.fireIRQ()
}

// fireIRQ runs any pending manual command and raises the gamepak interrupt.
// Commands are responsible for clearing or re-arming the manual command as
// part of their own processing.
func (py *NMP) fireIRQ() {
	if py.manualCmd != 0 {
		py.cmd = py.manualCmd
		py.processCommand()
	}
	py.irq.Raise()
}

// forceIRQ raises the interrupt out-of-band, bypassing the scheduler delay.
// Used by seek, play-sfx, the headphone toggle and the end-of-track path.
func (py *NMP) forceIRQ() {
	py.manualIRQ = true
	py.fireIRQ()
	py.manualIRQ = false
}

// Pending returns the deferred action the scheduler will eventually execute.
func (py *NMP) Pending() PendingAction {
	return PendingAction{
		Opcode:    py.manualCmd,
		Delay:     py.irqDelay,
		Immediate: py.manualIRQ,
	}
}

// State returns the device's current operational state.
func (py *NMP) State() State {
	return py.state
}

// CurrentDir returns the directory the device is navigating.
func (py *NMP) CurrentDir() string {
	return py.currentDir
}

func (py *NMP) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("nmp: %s", py.state))
	if py.musicPlaying {
		s.WriteString(fmt.Sprintf(" [playing %s]", py.currentMusicFile))
	}
	if py.irqDelay > 0 {
		s.WriteString(fmt.Sprintf(" [irq in %d]", py.irqDelay))
	}
	return s.String()
}

// putStatus writes a 16-bit value big-endian into the status block at the
// given offset.
func (py *NMP) putStatus(offset int, v uint16) {
	py.statusData[offset] = uint8(v >> 8)
	py.statusData[offset+1] = uint8(v)
}
