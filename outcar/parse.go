/*
 * parse.go, part of govasp.
 *
 * Copyright 2024 The govasp authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package outcar

import (
	"fmt"
	"strconv"
	"strings"
)

//Small pure parsing helpers. They return plain errors; the callers know the line
//and turn them into *Error.

// floatsFrom parses the first n fields of fields.
func floatsFrom(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected at least %d fields, got %d", n, len(fields))
	}
	ret := make([]float64, n)
	var err error
	for i := 0; i < n; i++ {
		ret[i], err = strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// fixedFloats parses n reals of width w, starting at the column start. VASP
// writes some tables in fixed format, with no space between negative numbers.
func fixedFloats(line string, start, w, n int) ([]float64, error) {
	ret := make([]float64, n)
	for i := 0; i < n; i++ {
		a := start + i*w
		b := a + w
		if b > len(line) {
			return nil, fmt.Errorf("line too short for %d fixed columns of width %d", n, w)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(line[a:b]), 64)
		if err != nil {
			return nil, err
		}
		ret[i] = v
	}
	return ret, nil
}

// valueAfter finds the token key, followed by optional spaces and a '=', and returns
// the first field after the '='. A trailing ';' or ',' is removed. The key must not
// be part of a longer word, so EDIFF does not match EDIFFG.
func valueAfter(line, key string) (string, bool) {
	from := 0
	for {
		idx := strings.Index(line[from:], key)
		if idx < 0 {
			return "", false
		}
		idx += from
		from = idx + len(key)
		if idx > 0 && isWordByte(line[idx-1]) {
			continue
		}
		rest := strings.TrimLeft(line[from:], " ")
		if !strings.HasPrefix(rest, "=") {
			continue
		}
		fields := strings.Fields(rest[1:])
		if len(fields) == 0 {
			return "", false
		}
		return strings.TrimRight(fields[0], ";,"), true
	}
}

func isWordByte(c byte) bool {
	return c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}

// parseBool reads the T/F letter codes VASP uses (also .TRUE./.FALSE.).
func parseBool(tok string) (bool, error) {
	t := strings.ToUpper(strings.TrimLeft(tok, "."))
	switch {
	case strings.HasPrefix(t, "T"):
		return true, nil
	case strings.HasPrefix(t, "F"):
		return false, nil
	}
	return false, fmt.Errorf("%q is not a T/F flag", tok)
}

// lastFloat parses the last field of line.
func lastFloat(line string) (float64, error) {
	f := strings.Fields(line)
	if len(f) == 0 {
		return 0, fmt.Errorf("empty line")
	}
	return strconv.ParseFloat(f[len(f)-1], 64)
}
