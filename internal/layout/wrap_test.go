package layout

import (
	"strings"
	"testing"
)

func TestWrap_NeverSplitsWords(t *testing.T) {
	inputs := []string{
		"Take one tablet three times daily after meals with a full glass of water",
		"Short",
		"supercalifragilisticexpialidocious tiny words here",
		"a b c d e f g h i j k l m n o p q r s t u v w x y z",
	}

	for _, input := range inputs {
		for _, maxWidth := range []float64{20, 40, 80, 170} {
			lines := Wrap(input, FontRegular, 10, maxWidth)

			// Joining the lines back with spaces must reproduce the word
			// sequence exactly.
			var got []string
			for _, line := range lines {
				got = append(got, strings.Fields(line)...)
			}
			want := strings.Fields(input)

			if len(got) != len(want) {
				t.Fatalf("width %.0f: word count changed: %v vs %v", maxWidth, got, want)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("width %.0f: word %d = %q, want %q", maxWidth, i, got[i], want[i])
				}
			}
		}
	}
}

func TestWrap_RespectsMaxWidth(t *testing.T) {
	input := "Take one tablet three times daily after meals with water"
	maxWidth := 40.0

	for _, line := range Wrap(input, FontRegular, 10, maxWidth) {
		// A single over-long word is the only permitted overflow; none of
		// these words qualify.
		if w := TextWidth(line, FontRegular, 10); w > maxWidth {
			t.Errorf("line %q is %.2fmm wide, max %.2f", line, w, maxWidth)
		}
	}
}

func TestWrap_GreedyMinimalLines(t *testing.T) {
	// All words fit two per line; greedy wrap must not emit one per line.
	input := "aa bb cc dd"
	perWord := TextWidth("aa", FontRegular, 10)
	space := TextWidth(" ", FontRegular, 10)
	maxWidth := perWord*2 + space + 0.01

	lines := Wrap(input, FontRegular, 10, maxWidth)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %v", len(lines), lines)
	}
}

func TestWrap_EmptyInput(t *testing.T) {
	if lines := Wrap("", FontRegular, 10, 100); lines != nil {
		t.Errorf("empty input should produce no lines, got %v", lines)
	}
	if lines := Wrap("   ", FontRegular, 10, 100); lines != nil {
		t.Errorf("blank input should produce no lines, got %v", lines)
	}
}

func TestWrap_OverlongWordOwnLine(t *testing.T) {
	lines := Wrap("tiny pneumonoultramicroscopicsilicovolcanoconiosis tiny", FontRegular, 10, 25)
	for _, line := range lines {
		if strings.Contains(line, "pneumono") && strings.Fields(line)[0] != line {
			t.Errorf("over-long word should be alone on its line: %q", line)
		}
	}
}

func TestWrapBullet_PrefixAndIndent(t *testing.T) {
	lines, indent := wrapBullet("Drink plenty of fluids and rest for at least three days", FontRegular, 10, 50)
	if len(lines) < 2 {
		t.Fatalf("expected wrapping, got %v", lines)
	}
	if !strings.HasPrefix(lines[0], "• ") {
		t.Errorf("first line missing bullet: %q", lines[0])
	}
	for _, cont := range lines[1:] {
		if strings.HasPrefix(cont, "•") {
			t.Errorf("continuation line must not carry a bullet: %q", cont)
		}
	}
	if indent <= 0 {
		t.Errorf("indent should be positive, got %f", indent)
	}
	// Continuation lines plus indent still fit the box.
	for _, cont := range lines[1:] {
		if w := TextWidth(cont, FontRegular, 10) + indent; w > 50 {
			t.Errorf("indented continuation %q overflows: %.2f", cont, w)
		}
	}
}

func TestTextWidth_BoldWiderThanRegular(t *testing.T) {
	s := "Medications"
	if TextWidth(s, FontBold, 10) <= TextWidth(s, FontRegular, 10) {
		t.Error("bold face should measure wider than regular")
	}
}

func TestTextWidth_ScalesWithSize(t *testing.T) {
	s := "Paracetamol"
	w10 := TextWidth(s, FontRegular, 10)
	w20 := TextWidth(s, FontRegular, 20)
	if diff := w20 - 2*w10; diff > 0.0001 || diff < -0.0001 {
		t.Errorf("width should scale linearly: 10pt=%.4f 20pt=%.4f", w10, w20)
	}
}
