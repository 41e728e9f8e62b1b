package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"

	"tvalert_go/internal/domain"
)

func floatPtr(v float64) *float64 { return &v }

func baseAlert() *domain.Alert {
	return &domain.Alert{
		Symbol: "AAPL",
		Action: domain.ActionBuy,
		Price:  floatPtr(150.555),
	}
}

func findField(embed *discordgo.MessageEmbed, name string) *discordgo.MessageEmbedField {
	for _, f := range embed.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func TestBuildAlertEmbed_Base(t *testing.T) {
	embed := BuildAlertEmbed(baseAlert())

	if embed.Title != "📈 Trading Signal: AAPL" {
		t.Errorf("Unexpected title %q", embed.Title)
	}
	if embed.Color != 0x00FF00 {
		t.Errorf("Expected green for BUY, got %#x", embed.Color)
	}
	if embed.Footer == nil || embed.Footer.Text != "TradingView Alert" {
		t.Error("Expected TradingView Alert footer")
	}

	action := findField(embed, "📊 Action")
	if action == nil || action.Value != "BUY" {
		t.Errorf("Expected BUY action field, got %+v", action)
	}

	price := findField(embed, "💰 Price")
	if price == nil || price.Value != "$150.56" {
		t.Errorf("Expected price rounded to $150.56, got %+v", price)
	}

	if findField(embed, "⏰ Time") == nil {
		t.Error("Expected a time field")
	}
}

func TestBuildAlertEmbed_Colors(t *testing.T) {
	tests := []struct {
		action domain.Action
		color  int
	}{
		{domain.ActionBuy, 0x00FF00},
		{domain.ActionSell, 0xFF0000},
		{domain.ActionHold, 0xFFFF00},
		{"UNKNOWN", 0x0099FF}, // defensive default, unreachable after validation
	}
	for _, tt := range tests {
		alert := baseAlert()
		alert.Action = tt.action
		embed := BuildAlertEmbed(alert)
		if embed.Color != tt.color {
			t.Errorf("Action %s: expected color %#x, got %#x", tt.action, tt.color, embed.Color)
		}
	}
}

func TestBuildAlertEmbed_OptionalFields(t *testing.T) {
	t.Run("absent indicators produce no fields", func(t *testing.T) {
		embed := BuildAlertEmbed(baseAlert())
		if len(embed.Fields) != 3 {
			t.Errorf("Expected exactly 3 fields, got %d", len(embed.Fields))
		}
		if embed.Description != "" {
			t.Errorf("Expected no description, got %q", embed.Description)
		}
	})

	t.Run("rsi rendered as-is", func(t *testing.T) {
		alert := baseAlert()
		alert.RSI = floatPtr(65.5)
		f := findField(BuildAlertEmbed(alert), "📈 RSI")
		if f == nil || f.Value != "65.5" {
			t.Errorf("Expected RSI 65.5, got %+v", f)
		}
	})

	t.Run("macd to four decimals", func(t *testing.T) {
		alert := baseAlert()
		alert.MACD = floatPtr(1.23456)
		f := findField(BuildAlertEmbed(alert), "📊 MACD")
		if f == nil || f.Value != "1.2346" {
			t.Errorf("Expected MACD 1.2346, got %+v", f)
		}
	})

	t.Run("volume grouped", func(t *testing.T) {
		alert := baseAlert()
		alert.Volume = floatPtr(2500000)
		f := findField(BuildAlertEmbed(alert), "📦 Volume")
		if f == nil || f.Value != "2,500,000" {
			t.Errorf("Expected grouped volume, got %+v", f)
		}
	})

	t.Run("zero indicator is still present", func(t *testing.T) {
		alert := baseAlert()
		alert.RSI = floatPtr(0)
		f := findField(BuildAlertEmbed(alert), "📈 RSI")
		if f == nil || f.Value != "0" {
			t.Errorf("Expected RSI 0 field, got %+v", f)
		}
	})

	t.Run("message becomes description", func(t *testing.T) {
		alert := baseAlert()
		alert.Message = "breakout confirmed"
		embed := BuildAlertEmbed(alert)
		if embed.Description != "breakout confirmed" {
			t.Errorf("Expected description, got %q", embed.Description)
		}
	})
}

func TestBuildAlertEmbed_Pure(t *testing.T) {
	alert := baseAlert()
	alert.RSI = floatPtr(70)
	alert.Message = "note"

	a := BuildAlertEmbed(alert)
	b := BuildAlertEmbed(alert)

	if a.Title != b.Title || a.Color != b.Color || a.Description != b.Description {
		t.Error("Expected identical embed content for identical input")
	}
	if len(a.Fields) != len(b.Fields) {
		t.Fatalf("Expected same field count, got %d and %d", len(a.Fields), len(b.Fields))
	}
	for i := range a.Fields {
		if a.Fields[i].Name == "⏰ Time" {
			continue // wall-clock field may differ between calls
		}
		if a.Fields[i].Name != b.Fields[i].Name || a.Fields[i].Value != b.Fields[i].Value {
			t.Errorf("Field %d differs: %+v vs %+v", i, a.Fields[i], b.Fields[i])
		}
	}

	// The input must not be mutated.
	if alert.Symbol != "AAPL" || *alert.Price != 150.555 || *alert.RSI != 70 {
		t.Error("Expected input alert to be untouched")
	}
}
