package components

import (
	"strings"
	"testing"
)

func TestHelpPanel_View_NoFieldFocused(t *testing.T) {
	p := NewHelpPanel()
	if out := p.View(); !strings.Contains(out, "Prescribing guidance") {
		t.Errorf("empty panel = %q, want the focus hint", out)
	}
}

func TestHelpPanel_View_ShowsFieldGuidance(t *testing.T) {
	p := NewHelpPanel()
	p.SetField("med_name")
	out := p.View()
	if !strings.Contains(out, "MEDICATION NAME") {
		t.Errorf("panel does not show the field title:\n%s", out)
	}
	if !strings.Contains(out, "medicine catalog") {
		t.Errorf("panel does not show the field details:\n%s", out)
	}
}
