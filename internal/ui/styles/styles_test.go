package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"
)

func TestGradient_KeepsText(t *testing.T) {
	tests := []string{"", "A", "Albums", "日本語のアルバム"}
	for _, text := range tests {
		got := ansi.Strip(Gradient(text, lipgloss.Color("#a78bfa"), lipgloss.Color("#f1a208")))
		if got != text {
			t.Errorf("Gradient(%q) stripped = %q", text, got)
		}
	}
}

func TestBlend_Endpoints(t *testing.T) {
	colors := blend(5, lipgloss.Color("#000000"), lipgloss.Color("#ffffff"))
	if len(colors) != 5 {
		t.Fatalf("len = %d, want 5", len(colors))
	}
	black, _ := colorful.Hex("#000000")
	white, _ := colorful.Hex("#ffffff")
	if d := colors[0].DistanceRgb(black); d > 0.01 {
		t.Errorf("first = %s, want black", colors[0].Hex())
	}
	if d := colors[4].DistanceRgb(white); d > 0.01 {
		t.Errorf("last = %s, want white", colors[4].Hex())
	}
}

func TestToColor_FallsBackToGray(t *testing.T) {
	r, g, b, _ := toColor(lipgloss.Color("240")).RGBA()
	if r != g || g != b {
		t.Errorf("ANSI color should map to gray, got %d %d %d", r, g, b)
	}
}

func TestTheme_StylesAreCached(t *testing.T) {
	if T().S() != T().S() {
		t.Error("S() should return the same styles")
	}
}
