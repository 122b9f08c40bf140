package tui

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

func TestShowBanner(t *testing.T) {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		outC <- buf.String()
	}()

	ShowBanner("1.0.0-test")

	w.Close()
	os.Stdout = old
	out := <-outC

	if !strings.Contains(out, "your news, briefly") {
		t.Errorf("Expected banner to contain tagline, got: %s", out)
	}
	if !strings.Contains(out, "v1.0.0-test") {
		t.Errorf("Expected banner to contain version 'v1.0.0-test', got: %s", out)
	}
}

func TestShowBannerDevVersionHasNoTag(t *testing.T) {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		outC <- buf.String()
	}()

	ShowBanner("dev")

	w.Close()
	os.Stdout = old
	out := <-outC

	if strings.Contains(out, "vdev") {
		t.Errorf("dev version should not be tagged, got: %s", out)
	}
}

func TestGetCompactBanner(t *testing.T) {
	message := "Test message"
	result := GetCompactBanner(message)

	if !strings.Contains(result, message) {
		t.Errorf("Expected compact banner to contain '%s', got: %s", message, result)
	}
	if !strings.Contains(result, LogoLines[0]) {
		t.Errorf("Expected compact banner to contain logo elements, got: %s", result)
	}
}

func TestGetWelcomeMessage(t *testing.T) {
	result := GetWelcomeMessage()

	if !strings.Contains(result, "Press r to fetch the latest articles") {
		t.Errorf("Expected welcome message to contain correct instructions, got: %s", result)
	}
}

func TestApplyThemeOverridesColors(t *testing.T) {
	origPrimary := PrimaryColor
	origMuted := MutedColor
	t.Cleanup(func() {
		PrimaryColor = origPrimary
		MutedColor = origMuted
	})

	app := newTestApp(t)
	app.config.UI.Colors.Primary = "#123456"
	app.config.UI.Colors.Muted = ""

	ApplyTheme(app.config)

	if string(PrimaryColor) != "#123456" {
		t.Errorf("PrimaryColor = %s, want #123456", PrimaryColor)
	}
	if string(MutedColor) != string(origMuted) {
		t.Errorf("empty hex should leave color untouched, got %s", MutedColor)
	}
}
