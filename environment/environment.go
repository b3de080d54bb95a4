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

// Package environment provides contextual information for an emulation.
// Particularly useful when running more than one emulation at once.
package environment

// Label is used to name the environment.
type Label string

// Environment is used to provide context for an emulation.
type Environment struct {
	Label Label

	// DataDir is where the emulation looks for support files. The built-in
	// sound effect sample used by the play-sfx command is expected at
	// DataDir/sfx.wav
	DataDir string
}

// NewEnvironment is the preferred method of initialisation for the
// Environment type.
func NewEnvironment(label Label, dataDir string) *Environment {
	return &Environment{
		Label:   label,
		DataDir: dataDir,
	}
}

// IsEmulation checks the emulation label and returns true if it matches.
func (env *Environment) IsEmulation(label Label) bool {
	return env.Label == label
}
