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

// Package nmp emulates the Nintendo MP3 Player cartridge as seen by the host
// CPU. The cartridge multiplexes firmware loading, command submission,
// status polling and bulk data transfer over four 16-bit registers: a control
// register selecting the access mode, a parameter register selecting the
// access window, a data-in port and a data-out port.
//
// The host drives the device through Write() and Read(). Time is modelled,
// not executed: pending interrupts are described by a delay counter and an
// optional manual command, which the host's scheduler consumes by calling
// Step() once per emulated tick. The device raises its interrupt through the
// IRQLine interface supplied at creation.
//
// Everything runs synchronously within the register access that triggered
// it. The device state is owned exclusively by this package and no locking
// is performed; register accesses are expected to arrive already serialised
// by the host bus.
package nmp
