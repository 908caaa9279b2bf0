// Package stats contains statistics aggregation and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/mlvnd/chatstat/internal/model"
	"github.com/mlvnd/chatstat/internal/registry"
)

const (
	minBarWidth         = 10
	minHistogramUpper   = 2.0
	terminalWidthBackup = 80
	dayLabelLayout      = "2006-01-02"
)

// partialBlocks holds the eighth-width block runes, narrowest first.
var partialBlocks = []rune("▏▎▍▌▋▊▉")

// BarPoint is one labelled bar value.
type BarPoint struct {
	Label string
	Value int
}

// RenderDaily writes per-sender daily message-count charts for every
// chat, rows in calendar order. Bars across one chat's senders share a
// scale.
func RenderDaily(w io.Writer, acc *Accumulator, chats []model.Chat, reg *registry.Registry, width int) error {
	for chatID, chat := range chats {
		if err := RenderChatDaily(w, acc, chatID, chat, reg, width); err != nil {
			return err
		}
	}
	return nil
}

// RenderChatDaily writes one chat's daily message-count charts.
func RenderChatDaily(w io.Writer, acc *Accumulator, chatID int, chat model.Chat, reg *registry.Registry, width int) error {
	shared := 0
	pointsBySender := make([][]BarPoint, 0, len(chat.SenderIDs))
	for _, senderID := range chat.SenderIDs {
		days := acc.Days(model.StatKey{SenderID: senderID, ChatID: chatID})
		sort.Slice(days, func(i, j int) bool { return days[i].Day.Before(days[j].Day) })
		points := make([]BarPoint, 0, len(days))
		for _, d := range days {
			points = append(points, BarPoint{Label: d.Day.Format(dayLabelLayout), Value: d.Stat.Messages})
			if d.Stat.Messages > shared {
				shared = d.Stat.Messages
			}
		}
		pointsBySender = append(pointsBySender, points)
	}
	for i, senderID := range chat.SenderIDs {
		if err := RenderBars(w, reg.Name(senderID), pointsBySender[i], shared, width); err != nil {
			return err
		}
	}
	return nil
}

// RenderHourly writes per-sender hourly message-count charts for every
// chat, rows in hour-of-day order.
func RenderHourly(w io.Writer, acc *Accumulator, chats []model.Chat, reg *registry.Registry, width int) error {
	for chatID, chat := range chats {
		if err := RenderChatHourly(w, acc, chatID, chat, reg, width); err != nil {
			return err
		}
	}
	return nil
}

// RenderChatHourly writes one chat's hourly message-count charts.
func RenderChatHourly(w io.Writer, acc *Accumulator, chatID int, chat model.Chat, reg *registry.Registry, width int) error {
	shared := 0
	pointsBySender := make([][]BarPoint, 0, len(chat.SenderIDs))
	for _, senderID := range chat.SenderIDs {
		hours := acc.Hours(model.StatKey{SenderID: senderID, ChatID: chatID})
		sort.Slice(hours, func(i, j int) bool { return hours[i].Hour < hours[j].Hour })
		points := make([]BarPoint, 0, len(hours))
		for _, h := range hours {
			points = append(points, BarPoint{Label: fmt.Sprintf("%02d:00", h.Hour), Value: h.Stat.Messages})
			if h.Stat.Messages > shared {
				shared = h.Stat.Messages
			}
		}
		pointsBySender = append(pointsBySender, points)
	}
	for i, senderID := range chat.SenderIDs {
		if err := RenderBars(w, reg.Name(senderID), pointsBySender[i], shared, width); err != nil {
			return err
		}
	}
	return nil
}

// RenderReplyTimes writes per-sender reply-latency histograms for
// every chat. Bins are log-spaced and shared across one chat's
// senders.
func RenderReplyTimes(w io.Writer, acc *Accumulator, chats []model.Chat, reg *registry.Registry, bins, width int) error {
	for chatID, chat := range chats {
		if err := RenderChatReplyTimes(w, acc, chatID, chat, reg, bins, width); err != nil {
			return err
		}
	}
	return nil
}

// RenderChatReplyTimes writes one chat's reply-latency histograms.
// Senders without recorded replies are skipped.
func RenderChatReplyTimes(w io.Writer, acc *Accumulator, chatID int, chat model.Chat, reg *registry.Registry, bins, width int) error {
	upper := acc.MaxReplyMinutes(chatID, chat.SenderIDs)
	if upper <= 0 {
		return nil
	}
	edges := LogBins(upper, bins)
	for _, senderID := range chat.SenderIDs {
		minutes := acc.ReplyMinutes(model.StatKey{SenderID: senderID, ChatID: chatID})
		if len(minutes) == 0 {
			continue
		}
		counts := Histogram(minutes, edges)
		points := make([]BarPoint, len(counts))
		for i, count := range counts {
			points[i] = BarPoint{
				Label: fmt.Sprintf("%s-%s min", formatMinutes(edges[i]), formatMinutes(edges[i+1])),
				Value: count,
			}
		}
		if err := RenderBars(w, reg.Name(senderID), points, 0, width); err != nil {
			return err
		}
	}
	return nil
}

// RenderBars writes one horizontal bar chart block: a title line, one
// row per point, and a trailing blank line. Bars scale against
// maxValue, or against the largest point when maxValue is 0. A width
// of 0 sizes the chart to the terminal.
func RenderBars(w io.Writer, title string, points []BarPoint, maxValue, width int) error {
	if len(points) == 0 {
		return nil
	}
	if maxValue <= 0 {
		for _, p := range points {
			if p.Value > maxValue {
				maxValue = p.Value
			}
		}
	}
	if width <= 0 {
		width = terminalWidth()
	}

	labelWidth := 0
	countWidth := 0
	for _, p := range points {
		if lw := runewidth.StringWidth(p.Label); lw > labelWidth {
			labelWidth = lw
		}
		if cw := len(strconv.Itoa(p.Value)); cw > countWidth {
			countWidth = cw
		}
	}
	barWidth := width - labelWidth - countWidth - 2
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}

	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	for _, p := range points {
		if _, err := fmt.Fprintf(w, "%s %s %d\n", padLabel(p.Label, labelWidth), bar(p.Value, maxValue, barWidth), p.Value); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// LogBins returns bins+1 geometrically spaced edges from 1 to upper.
// Upper bounds below minHistogramUpper are raised to keep the edges
// strictly increasing.
func LogBins(upper float64, bins int) []float64 {
	if bins <= 0 {
		return nil
	}
	if upper < minHistogramUpper {
		upper = minHistogramUpper
	}
	edges := make([]float64, bins+1)
	for i := range edges {
		edges[i] = math.Pow(upper, float64(i)/float64(bins))
	}
	edges[0] = 1
	edges[bins] = upper
	return edges
}

// Histogram counts values into the bins delimited by edges. Bins are
// half-open except the last, which includes its upper edge. Values
// outside the edge range clamp into the first or last bin.
func Histogram(values, edges []float64) []int {
	if len(edges) < 2 {
		return nil
	}
	counts := make([]int, len(edges)-1)
	for _, v := range values {
		counts[binFor(v, edges)]++
	}
	return counts
}

func binFor(v float64, edges []float64) int {
	if v <= edges[0] {
		return 0
	}
	if v >= edges[len(edges)-1] {
		return len(edges) - 2
	}
	i := sort.SearchFloat64s(edges, v)
	if edges[i] == v {
		return i
	}
	return i - 1
}

func bar(value, maxValue, width int) string {
	if value <= 0 || maxValue <= 0 || width <= 0 {
		return ""
	}
	frac := float64(value) / float64(maxValue)
	if frac > 1 {
		frac = 1
	}
	eighths := int(math.Round(frac * float64(width) * 8))
	if eighths == 0 {
		eighths = 1
	}
	var b strings.Builder
	b.WriteString(strings.Repeat("█", eighths/8))
	if rem := eighths % 8; rem > 0 {
		b.WriteRune(partialBlocks[rem-1])
	}
	return b.String()
}

func padLabel(label string, width int) string {
	gap := width - runewidth.StringWidth(label)
	if gap <= 0 {
		return label
	}
	return label + strings.Repeat(" ", gap)
}

func formatMinutes(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
