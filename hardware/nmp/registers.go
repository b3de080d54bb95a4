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

// The cartridge's register block as seen from the gamepak bus. Each logical
// register is two bytes wide and written high byte first.
const (
	AddrControl   uint32 = 0x0e004000
	AddrParameter uint32 = 0x0e004002
	AddrDataIn    uint32 = 0x0e004004
	AddrDataOut   uint32 = 0x0e004006
)

// Access modes written to the control register. Any other value is inert on
// its own and only gives meaning to the next parameter write.
const (
	// written once the host has finished uploading firmware. only honoured
	// in the INIT state
	modeBootConfirm uint16 = 0x0808

	// terminates command input. the accumulated command stream is executed
	modeTerminateCmd uint16 = 0x0404

	// the next parameter write is the upper half of a 32-bit value
	modeParamHigh uint16 = 0x1010
)

// Parameter values selecting a register window on a begin-access (a
// parameter write while the access mode is zero).
const (
	// cartridge status. boot status table during the initial boot phase,
	// command status afterwards
	winStatus uint32 = 0x100

	// command submission window. also serves as the ~60Hz poll the host
	// uses to wait for command completion
	winCommand uint32 = 0x10f

	// I/O busy flag. 1 = busy, 0 = ready. this emulation is never busy
	winBusy uint32 = 0x110
)

// Parameter values reserved for bulk SD data access rather than a register
// window. accessID3 doubles as the access index reported to the host after a
// get-id3-data command; accessSD is the arbitrary SD access ID reported
// during speaker-mode streaming.
const (
	accessID3 uint32 = 0x101
	accessSD  uint32 = 0x202
)

// Cartridge status halves returned during the boot phase, indexed by
// initStage>>1.
var bootStatus = [2]uint16{0x0005, 0x0000}

// size of the firmware buffer. writes to the data-in port while the firmware
// cursor is nonzero land here.
const firmwareSize = 0x100000

// Write handles an 8-bit write from the host bus to the cartridge's register
// block. Addresses outside the register block are ignored.
func (py *NMP) Write(addr uint32, value uint8) {
	switch addr {
	case AddrControl:
		py.accessMode = (py.accessMode & 0x00ff) | (uint16(value) << 8)

	case AddrControl + 1:
		py.accessMode = (py.accessMode & 0xff00) | uint16(value)

		// after firmware upload the host confirms completion and the
		// cartridge responds with a gamepak IRQ
		if py.accessMode == modeBootConfirm && py.state == StateInit {
			py.irqDelay = 30
			py.state = StateBootSequence

			// terminate command input now. actual execution happens here and
			// the command is always the first 16-bits of the stream
		} else if py.accessMode == modeTerminateCmd && py.state == StateProcessCmd {
			if len(py.commandStream) >= 2 {
				py.cmd = uint16(py.commandStream[0])<<8 | uint16(py.commandStream[1])
				py.processCommand()
			}
		}

	case AddrParameter:
		py.accessParam = (py.accessParam & 0x00ff) | (uint32(value) << 8)

	case AddrParameter + 1:
		py.accessParam = (py.accessParam & 0xff00) | uint32(value)

		// set high 16-bits of the param or begin processing the access
		if py.accessMode == modeParamHigh {
			py.accessParam <<= 16
		} else if py.accessMode == 0 {
			py.beginAccess()
		}

	case AddrDataIn, AddrDataIn + 1:
		if py.firmwareAddr != 0 {
			if py.firmwareAddr < firmwareSize {
				py.firmware[py.firmwareAddr] = value
			}
			py.firmwareAddr++
		} else if py.state == StateProcessCmd {
			py.commandStream = append(py.commandStream, value)
		}
	}
}

// Read handles an 8-bit read from the host bus. Only the data-out port
// returns anything; every other address reads as zero.
func (py *NMP) Read(addr uint32) uint8 {
	switch addr {
	case AddrDataOut, AddrDataOut + 1:
		// return SD card data during a bulk access session
		if py.state == StateGetSDData {
			if py.dataIndex < len(py.cardData) {
				v := py.cardData[py.dataIndex]
				py.dataIndex++
				return v
			}
			return 0
		}

		// status data read after each gamepak IRQ
		if py.dataIndex < len(py.statusData) {
			v := py.statusData[py.dataIndex]
			py.dataIndex++
			return v
		}
	}

	return 0
}
