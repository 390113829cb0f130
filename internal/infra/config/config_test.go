package config

import (
	"errors"
	"testing"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("REQUIRED_CHAT", "@mychannel")
}

func TestParseDefaults(t *testing.T) {
	setRequired(t)
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 5000 {
		t.Fatalf("expected default port 5000, got %d", cfg.Port)
	}
	if cfg.ListenAddr() != ":5000" {
		t.Fatalf("unexpected listen addr %q", cfg.ListenAddr())
	}
	if cfg.SilentForNotJoined() {
		t.Fatal("silent mode must be off by default")
	}
	gate, err := cfg.GateConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gate.RequiredChat.Raw() != "@mychannel" || gate.GatedCommand() != "start" {
		t.Fatalf("unexpected gate config: %+v", gate)
	}
	if gate.JoinLink() != "https://t.me/mychannel" {
		t.Fatalf("unexpected join link %q", gate.JoinLink())
	}
}

func TestParseMissingToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "   ")
	t.Setenv("REQUIRED_CHAT", "@mychannel")
	if _, err := Parse(); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestParseMissingRequiredChat(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("REQUIRED_CHAT", "")
	if _, err := Parse(); !errors.Is(err, ErrMissingRequiredChat) {
		t.Fatalf("expected ErrMissingRequiredChat, got %v", err)
	}
}

func TestParseOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("REQUIRED_CHAT", " -1001234567890 ")
	t.Setenv("JOIN_URL", " https://t.me/+invite ")
	t.Setenv("PORT", "8081")
	t.Setenv("GATED_COMMAND", "/menu")
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gate, err := cfg.GateConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !gate.RequiredChat.IsNumeric() || gate.RequiredChat.ID() != -1001234567890 {
		t.Fatalf("expected numeric chat, got %+v", gate.RequiredChat)
	}
	if gate.JoinLink() != "https://t.me/+invite" {
		t.Fatalf("unexpected join link %q", gate.JoinLink())
	}
	if gate.GatedCommand() != "menu" || cfg.ListenAddr() != ":8081" {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
}

func TestSilentForNotJoined(t *testing.T) {
	cases := map[string]bool{
		"true":  true,
		"TRUE":  true,
		" True": true,
		"false": false,
		"1":     false,
		"yes":   false,
		"":      false,
	}
	for value, want := range cases {
		setRequired(t)
		t.Setenv("SILENT_FOR_NOT_JOINED", value)
		cfg, err := Parse()
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", value, err)
		}
		if got := cfg.SilentForNotJoined(); got != want {
			t.Fatalf("SILENT_FOR_NOT_JOINED=%q: got %v, want %v", value, got, want)
		}
	}
}
