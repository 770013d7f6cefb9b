// Package gcode provides line-level scanning of G-code for stream rewriting.
//
// Unlike a full dialect parser, the scanner keeps the byte offsets of every
// numeric token it finds so that a single word can be rewritten in place
// while the rest of the line (whitespace, comments, line ending) passes
// through byte-for-byte.
//
// This file may be distributed under the terms of the GNU GPLv3 license.
package gcode

import (
	"strconv"
	"strings"
)

// Word is a single letter-parameter on a G-code line, like "Z0.4" or "E12.5".
type Word struct {
	// Letter is the upper-cased parameter letter.
	Letter byte

	// Value is the parsed numeric value.
	Value float64

	// Raw is the numeric token exactly as it appears in the source line.
	Raw string

	// Start and End delimit Raw within the source line (byte offsets).
	Start, End int
}

// Line is one scanned G-code line.
type Line struct {
	// Raw is the unmodified source line, including any line ending.
	Raw string

	// Cmd is the upper-cased command token (first whitespace-delimited
	// field), or "" for blank and comment-only lines.
	Cmd string

	words     []Word
	malformed bool
}

// commands whose parameter words the engine inspects
var scannedCommands = map[string]bool{
	"G0":  true,
	"G1":  true,
	"G92": true,
}

// Parse scans a single raw line. It never fails: lines that cannot be
// understood come back with Cmd == "" or with Malformed set, and the caller
// is expected to pass them through untouched.
func Parse(raw string) Line {
	ln := Line{Raw: raw}

	// Scan only up to the first comment; the comment text and the line
	// ending stay part of Raw and survive any rewrite untouched.
	region := raw
	if idx := strings.IndexByte(region, ';'); idx >= 0 {
		region = region[:idx]
	}

	i := 0
	n := len(region)
	first := true
	for i < n {
		// Skip whitespace between fields.
		for i < n && isSpace(region[i]) {
			i++
		}
		start := i
		for i < n && !isSpace(region[i]) {
			i++
		}
		if start == i {
			continue
		}
		field := region[start:i]

		if first {
			first = false
			ln.Cmd = strings.ToUpper(field)
			continue
		}
		if !scannedCommands[ln.Cmd] {
			// Parameter words only matter on motion and reset
			// commands; everything else passes through verbatim.
			continue
		}

		// Letter-params like "X10", "E-1.25", "Z0.4".
		letter := field[0]
		if letter >= 'a' && letter <= 'z' {
			letter -= 'a' - 'A'
		}
		if letter < 'A' || letter > 'Z' || len(field) < 2 {
			ln.malformed = true
			continue
		}
		num := field[1:]
		val, err := strconv.ParseFloat(num, 64)
		if err != nil {
			ln.malformed = true
			continue
		}
		ln.words = append(ln.words, Word{
			Letter: letter,
			Value:  val,
			Raw:    num,
			Start:  start + 1,
			End:    i,
		})
	}
	return ln
}

// Malformed reports whether any field in the scanned region failed to parse
// as a letter-param. Such lines are unclassifiable and must not be rewritten.
func (l Line) Malformed() bool {
	return l.malformed
}

// Word returns the first word with the given letter.
func (l Line) Word(letter byte) (Word, bool) {
	for _, w := range l.words {
		if w.Letter == letter {
			return w, true
		}
	}
	return Word{}, false
}

// Has reports whether the line carries a word with the given letter.
func (l Line) Has(letter byte) bool {
	_, ok := l.Word(letter)
	return ok
}

// Replace re-emits the line with the given word's numeric token substituted
// by value. Everything outside the token, including the original whitespace,
// comment and line ending, is preserved byte-for-byte.
func (l Line) Replace(w Word, value float64) string {
	if value == w.Value {
		// Unchanged value keeps the source spelling, whatever it was
		// ("+1.5", ".5", ...). Scaling at ratio 1.0 must be a byte
		// no-op.
		return l.Raw
	}
	return l.Raw[:w.Start] + FormatValue(value, w.Raw) + l.Raw[w.End:]
}

// Decimals returns the number of digits after the decimal point in a source
// numeric token. "3" -> 0, "0.40" -> 2.
func Decimals(tok string) int {
	if idx := strings.IndexByte(tok, '.'); idx >= 0 {
		return len(tok) - idx - 1
	}
	return 0
}

// FormatValue formats a rewritten value with at least five decimal places,
// or more if the source token itself carried more. Five is the conventional
// G-code extrusion precision and what slicers themselves emit; keeping the
// source's own count as a floor means a high-precision stream is never
// truncated. Scaling 1.5 by 0.5 prints 0.75000, not 0.8. Tokens in exponent
// notation have no decimal-place count and get the shortest round-trip form.
// Deterministic either way, so repeated runs cannot drift.
func FormatValue(value float64, srcTok string) string {
	if strings.ContainsAny(srcTok, "eE") {
		return strconv.FormatFloat(value, 'g', -1, 64)
	}
	dec := Decimals(srcTok)
	if dec < 5 {
		dec = 5
	}
	return strconv.FormatFloat(value, 'f', dec, 64)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
