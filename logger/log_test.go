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

package logger

import (
	"strings"
	"testing"

	"github.com/goyan-emu/goyan/test"
)

func TestLog(t *testing.T) {
	l := newLogger(100)

	b := strings.Builder{}
	l.write(&b)
	test.Equate(t, b.String(), "")

	l.log("test", "this is a test")
	b.Reset()
	l.write(&b)
	test.Equate(t, b.String(), "test: this is a test\n")

	// the last entry is repeated so the entry count does not increase
	l.log("test", "this is a test")
	test.Equate(t, len(l.entries), 1)

	b.Reset()
	l.write(&b)
	test.Equate(t, b.String(), "test: this is a test (repeat x2)\n")
}

func TestTail(t *testing.T) {
	l := newLogger(100)

	l.log("test", "1")
	l.log("test", "2")
	l.log("test", "3")

	b := strings.Builder{}
	l.tail(&b, 2)
	test.Equate(t, b.String(), "test: 2\ntest: 3\n")

	// asking for more entries than exist is not an error
	b.Reset()
	l.tail(&b, 100)
	test.Equate(t, b.String(), "test: 1\ntest: 2\ntest: 3\n")
}

func TestMaxEntries(t *testing.T) {
	l := newLogger(2)

	l.log("test", "1")
	l.log("test", "2")
	l.log("test", "3")
	test.Equate(t, len(l.entries), 2)

	b := strings.Builder{}
	l.write(&b)
	test.Equate(t, b.String(), "test: 2\ntest: 3\n")
}
