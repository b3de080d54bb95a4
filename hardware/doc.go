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

// Package hardware is the base package for the cartridge emulation. The nmp
// sub-package is the cartridge itself, reachable entirely through its
// register interface. The extaudio sub-package is the external audio channel
// the cartridge plays through.
package hardware
