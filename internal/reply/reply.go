// Package reply turns domain results into platform reply payloads. It is
// pure string assembly; nothing here performs I/O or fails on missing
// optional fields.
package reply

import (
	"strconv"
	"strings"

	"github.com/weberbot/weber/internal/config"
	"github.com/weberbot/weber/internal/messenger"
	"github.com/weberbot/weber/internal/search"
	"github.com/weberbot/weber/internal/weather"
)

// Postback codes emitted by the help menu and consumed by the router.
const (
	PostbackFood    = "food"
	PostbackTourist = "tourist"
	PostbackHotel   = "hotel"
)

const helpText = "I'm Weber, a travel advising companion that brings together " +
	"weather, hotel, and dining information. Try some of the entries below!"

const fallbackText = "Sorry, I don't know how to respond. " +
	"Try typing 'help' to get a list of my functionalities."

// SearchSentence builds the ranked-results sentence: up to three results
// with rating and review count, and price where the result carries one.
// The narrative should read like "The top hotels in the city of Las Vegas".
func SearchSentence(narrative string, results []search.Result, withPrice bool) string {
	var parts []string
	for _, r := range results {
		parts = append(parts, describeResult(r, withPrice))
	}

	var b strings.Builder
	b.WriteString(narrative)
	b.WriteString(" are: ")
	switch len(parts) {
	case 0:
		b.WriteString("none")
	case 1:
		b.WriteString(parts[0])
	default:
		b.WriteString(strings.Join(parts[:len(parts)-1], ", "))
		b.WriteString(", and ")
		b.WriteString(parts[len(parts)-1])
	}
	b.WriteString(".")
	return b.String()
}

// describeResult renders one result as "Name ($$, 4.5 stars with 120
// reviews)". An absent price loses its slot entirely rather than leaving
// an empty one.
func describeResult(r search.Result, withPrice bool) string {
	var b strings.Builder
	b.WriteString(r.Name)
	b.WriteString(" (")
	if withPrice && r.Price != "" {
		b.WriteString(r.Price)
		b.WriteString(", ")
	}
	b.WriteString(formatNumber(r.Rating))
	b.WriteString(" stars with ")
	b.WriteString(strconv.Itoa(r.ReviewCount))
	b.WriteString(" reviews)")
	return b.String()
}

// SearchReply builds the webhook-path reply: the sentence plus one
// web-link button per result, in rank order.
func SearchReply(narrative string, results []search.Result, withPrice bool) *messenger.Payload {
	buttons := make([]messenger.Button, 0, len(results))
	for _, r := range results {
		buttons = append(buttons, messenger.Button{
			Type:  "web_url",
			Title: r.Name,
			URL:   r.URL,
		})
	}
	return messenger.ButtonTemplate(SearchSentence(narrative, results, withPrice), buttons)
}

// WeatherSentence renders a snapshot in fixed imperial units.
func WeatherSentence(s *weather.Snapshot) string {
	var b strings.Builder
	b.WriteString("Today, the weather conditions in ")
	b.WriteString(s.PlaceName)
	b.WriteString(" are ")
	b.WriteString(s.Condition)
	b.WriteString(", with a low of ")
	b.WriteString(formatNumber(s.TempMin))
	b.WriteString(" ℉ and a high of ")
	b.WriteString(formatNumber(s.TempMax))
	b.WriteString(" ℉. The current temperature is ")
	b.WriteString(formatNumber(s.TempCurrent))
	b.WriteString("℉, current humidity is at ")
	b.WriteString(formatNumber(s.HumidityPct))
	b.WriteString("%, and cloud cover is at ")
	b.WriteString(formatNumber(s.CloudPct))
	b.WriteString("%. Winds are blowing at ")
	b.WriteString(formatNumber(s.WindSpeed))
	b.WriteString("mph.")
	return b.String()
}

// Help builds the fixed help reply. The menu style attaches the three
// demo postback buttons; the text style returns the blurb alone.
func Help(style config.HelpStyle) *messenger.Payload {
	if style == config.HelpText {
		return messenger.TextPayload(helpText)
	}
	return messenger.ButtonTemplate(helpText, []messenger.Button{
		{Type: "postback", Title: "Pizza in Boston?", Payload: PostbackFood},
		{Type: "postback", Title: "Hiking in Portland?", Payload: PostbackTourist},
		{Type: "postback", Title: "Hotels in Vegas?", Payload: PostbackHotel},
	})
}

// Fallback builds the fixed reply for unrecognized input.
func Fallback() *messenger.Payload {
	return messenger.TextPayload(fallbackText)
}

// formatNumber prints floats the way the upstream providers do: no
// trailing zeros, no forced precision.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
