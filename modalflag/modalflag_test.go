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

package modalflag_test

import (
	"bytes"
	"testing"

	"github.com/goyan-emu/goyan/modalflag"
	"github.com/goyan-emu/goyan/test"
)

func TestNoModes(t *testing.T) {
	md := modalflag.Modes{Output: &bytes.Buffer{}}
	md.NewArgs([]string{})

	p, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, p == modalflag.ParseContinue, true)
	test.Equate(t, md.Mode(), "")
	test.Equate(t, len(md.RemainingArgs()), 0)
}

func TestDefaultSubMode(t *testing.T) {
	md := modalflag.Modes{Output: &bytes.Buffer{}}
	md.NewArgs([]string{"music"})
	md.AddSubModes("RUN", "VERSION")

	p, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, p == modalflag.ParseContinue, true)

	// an argument that isn't a sub-mode selects the default and is left over
	test.Equate(t, md.Mode(), "RUN")
	test.Equate(t, md.GetArg(0), "music")
}

func TestSubModeSelection(t *testing.T) {
	md := modalflag.Modes{Output: &bytes.Buffer{}}
	md.NewArgs([]string{"version"})
	md.AddSubModes("RUN", "VERSION")

	p, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, p == modalflag.ParseContinue, true)
	test.Equate(t, md.Mode(), "VERSION")
	test.Equate(t, md.Path(), "VERSION")
}

func TestSubModeFlags(t *testing.T) {
	md := modalflag.Modes{Output: &bytes.Buffer{}}
	md.NewArgs([]string{"run", "-log", "music"})
	md.AddSubModes("RUN", "VERSION")

	p, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, p == modalflag.ParseContinue, true)
	test.Equate(t, md.Mode(), "RUN")

	// the flag belongs to the next layer
	md.NewMode()
	log := md.AddBool("log", false, "echo the log")

	p, err = md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, p == modalflag.ParseContinue, true)
	test.Equate(t, *log, true)
	test.Equate(t, md.GetArg(0), "music")
}

func TestHelp(t *testing.T) {
	output := &bytes.Buffer{}

	md := modalflag.Modes{Output: output}
	md.NewArgs([]string{"-help"})
	md.AddSubModes("RUN", "VERSION")

	p, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, p == modalflag.ParseHelp, true)

	if !bytes.Contains(output.Bytes(), []byte("available sub-modes: RUN, VERSION")) {
		t.Fatalf("help output does not list sub-modes: %q", output.String())
	}
}

func TestUnknownFlag(t *testing.T) {
	md := modalflag.Modes{Output: &bytes.Buffer{}}
	md.NewArgs([]string{"-no-such-flag"})

	p, err := md.Parse()
	test.ExpectedFailure(t, err)
	test.Equate(t, p == modalflag.ParseError, true)
}
