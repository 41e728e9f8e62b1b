package discord

import (
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"tvalert_go/internal/domain"
)

// Embed colors per action. The fallback is unreachable once upstream
// validation has run, but the mapping stays total anyway.
var actionColors = map[domain.Action]int{
	domain.ActionBuy:  0x00FF00, // Green
	domain.ActionSell: 0xFF0000, // Red
	domain.ActionHold: 0xFFFF00, // Yellow
}

const defaultColor = 0x0099FF

var groupedPrinter = message.NewPrinter(language.English)

// BuildAlertEmbed renders a validated alert as a Discord embed. It does not
// mutate the alert and performs no I/O; apart from the wall-clock time field
// the output depends only on the input.
func BuildAlertEmbed(alert *domain.Alert) *discordgo.MessageEmbed {
	color, ok := actionColors[alert.Action]
	if !ok {
		color = defaultColor
	}

	now := time.Now()
	fields := []*discordgo.MessageEmbedField{
		{Name: "📊 Action", Value: string(alert.Action), Inline: true},
		{Name: "💰 Price", Value: "$" + decimal.NewFromFloat(alert.PriceValue()).StringFixed(2), Inline: true},
		{Name: "⏰ Time", Value: now.Format("1/2/2006, 3:04:05 PM"), Inline: true},
	}

	if alert.RSI != nil {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "📈 RSI",
			Value:  strconv.FormatFloat(*alert.RSI, 'f', -1, 64),
			Inline: true,
		})
	}
	if alert.MACD != nil {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "📊 MACD",
			Value:  decimal.NewFromFloat(*alert.MACD).StringFixed(4),
			Inline: true,
		})
	}
	if alert.Volume != nil {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "📦 Volume",
			Value:  groupedPrinter.Sprintf("%v", number.Decimal(*alert.Volume)),
			Inline: true,
		})
	}

	embed := &discordgo.MessageEmbed{
		Title:     "📈 Trading Signal: " + alert.Symbol,
		Color:     color,
		Fields:    fields,
		Timestamp: now.UTC().Format(time.RFC3339),
		Footer:    &discordgo.MessageEmbedFooter{Text: "TradingView Alert"},
	}
	if alert.Message != "" {
		embed.Description = alert.Message
	}
	return embed
}
