package gcode

import "testing"

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		cmd  string
	}{
		{"G1 X10 Y20 E1.5\n", "G1"},
		{"g1 x10 e1.5\n", "G1"},
		{"  G92 E0\n", "G92"},
		{"M83\n", "M83"},
		{"M104 S210\n", "M104"},
		{"; comment only\n", ""},
		{"\n", ""},
		{"   \n", ""},
	}
	for _, tt := range tests {
		ln := Parse(tt.line)
		if ln.Cmd != tt.cmd {
			t.Errorf("Parse(%q).Cmd = %q, want %q", tt.line, ln.Cmd, tt.cmd)
		}
		if ln.Raw != tt.line {
			t.Errorf("Parse(%q) mutated Raw to %q", tt.line, ln.Raw)
		}
	}
}

func TestParseWords(t *testing.T) {
	ln := Parse("G1 X10.5 Y-3 Z0.4 E1.234 F3000\n")
	if ln.Malformed() {
		t.Fatal("well-formed line flagged malformed")
	}

	tests := []struct {
		letter byte
		value  float64
		raw    string
	}{
		{'X', 10.5, "10.5"},
		{'Y', -3, "-3"},
		{'Z', 0.4, "0.4"},
		{'E', 1.234, "1.234"},
		{'F', 3000, "3000"},
	}
	for _, tt := range tests {
		w, ok := ln.Word(tt.letter)
		if !ok {
			t.Errorf("word %c not found", tt.letter)
			continue
		}
		if w.Value != tt.value || w.Raw != tt.raw {
			t.Errorf("word %c: got (%g, %q), want (%g, %q)",
				tt.letter, w.Value, w.Raw, tt.value, tt.raw)
		}
	}
	if ln.Has('S') {
		t.Error("found a word that is not on the line")
	}
}

func TestParseLowercaseWords(t *testing.T) {
	ln := Parse("g1 z0.4 e2.5\n")
	if w, ok := ln.Word('E'); !ok || w.Value != 2.5 {
		t.Errorf("lowercase e word: ok=%v value=%v", ok, w.Value)
	}
	if w, ok := ln.Word('Z'); !ok || w.Value != 0.4 {
		t.Errorf("lowercase z word: ok=%v value=%v", ok, w.Value)
	}
}

func TestParseIgnoresComment(t *testing.T) {
	ln := Parse("G1 X0 Y0 ; fake E99 here\n")
	if ln.Has('E') {
		t.Error("E word found inside a comment")
	}
	if !ln.Has('X') {
		t.Error("X word before the comment lost")
	}
}

func TestParseSkipsWordsOfUnscannedCommands(t *testing.T) {
	// Only motion and reset commands have their params scanned.
	ln := Parse("M104 S210\n")
	if ln.Has('S') {
		t.Error("params of M104 should not be scanned")
	}
	if ln.Malformed() {
		t.Error("M104 flagged malformed")
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []string{
		"G1 X0 E1.2.3\n",
		"G1 E\n",
		"G1 X0 =5\n",
	}
	for _, line := range tests {
		if !Parse(line).Malformed() {
			t.Errorf("Parse(%q) not flagged malformed", line)
		}
	}
}

func TestReplacePreservesSurroundings(t *testing.T) {
	tests := []struct {
		line  string
		value float64
		want  string
	}{
		{"G1 X10 E1.0 F3000 ; perimeter\n", 2.0, "G1 X10 E2.00000 F3000 ; perimeter\n"},
		{"G1 X10 E1.0\r\n", 2.0, "G1 X10 E2.00000\r\n"},
		{"G1  X10\tE1.0\n", 0.5, "G1  X10\tE0.50000\n"},
		{"G1 E1.123456 F1200\n", 2.246912, "G1 E2.246912 F1200\n"},
	}
	for _, tt := range tests {
		ln := Parse(tt.line)
		w, ok := ln.Word('E')
		if !ok {
			t.Fatalf("no E word in %q", tt.line)
		}
		if got := ln.Replace(w, tt.value); got != tt.want {
			t.Errorf("Replace(%q, %g) = %q, want %q", tt.line, tt.value, got, tt.want)
		}
	}
}

func TestReplaceUnchangedValueKeepsSpelling(t *testing.T) {
	// Scaling by 1.0 must be a byte no-op whatever the source spelling.
	lines := []string{
		"G1 X0 E1.0\n",
		"G1 X0 E+1.5\n",
		"G1 X0 E.5\n",
		"G1 X0 E3\n",
	}
	for _, line := range lines {
		ln := Parse(line)
		w, ok := ln.Word('E')
		if !ok {
			t.Fatalf("no E word in %q", line)
		}
		if got := ln.Replace(w, w.Value); got != line {
			t.Errorf("Replace with unchanged value rewrote %q to %q", line, got)
		}
	}
}

func TestDecimals(t *testing.T) {
	tests := []struct {
		tok  string
		want int
	}{
		{"3", 0},
		{"0.4", 1},
		{"1.2345", 4},
		{"-0.50", 2},
		{".5", 1},
	}
	for _, tt := range tests {
		if got := Decimals(tt.tok); got != tt.want {
			t.Errorf("Decimals(%q) = %d, want %d", tt.tok, got, tt.want)
		}
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		value float64
		src   string
		want  string
	}{
		{0.75, "1.5", "0.75000"},              // floor of five decimals
		{2.0, "1.0", "2.00000"},               // below the floor rounds up to it
		{1.2345678, "1.2345678", "1.2345678"}, // source precision kept when higher
		{0.001, "1e-3", "0.001"},              // exponent tokens get shortest form
	}
	for _, tt := range tests {
		if got := FormatValue(tt.value, tt.src); got != tt.want {
			t.Errorf("FormatValue(%g, %q) = %q, want %q", tt.value, tt.src, got, tt.want)
		}
	}
}
