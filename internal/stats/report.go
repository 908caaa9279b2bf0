// Package stats contains statistics aggregation and reporting.
package stats

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mlvnd/chatstat/internal/model"
	"github.com/mlvnd/chatstat/internal/registry"
)

const dividerWidth = 50

// RenderReport prints the per-sender summary for every chat, each chat
// preceded by a divider line and the whole report closed by one.
func RenderReport(w io.Writer, acc *Accumulator, chats []model.Chat, reg *registry.Registry, topEmojis int) error {
	for chatID, chat := range chats {
		if _, err := fmt.Fprintln(w, strings.Repeat("-", dividerWidth)); err != nil {
			return err
		}
		if err := RenderChatReport(w, acc, chatID, chat, reg, topEmojis); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", dividerWidth)); err != nil {
		return err
	}
	return nil
}

// RenderChatReport prints one chat's per-sender blocks in
// first-appearance order.
func RenderChatReport(w io.Writer, acc *Accumulator, chatID int, chat model.Chat, reg *registry.Registry, topEmojis int) error {
	for _, senderID := range chat.SenderIDs {
		key := model.StatKey{SenderID: senderID, ChatID: chatID}
		total, ok := acc.Total(key)
		if !ok {
			continue
		}
		if _, err := fmt.Fprintln(w, reg.Name(senderID)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "# of messages | total: %d avg (day): %s\n", total.Messages, formatPerDay(total.Messages, acc.Days(key))); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "letters       | total: %d avg (message): %.1f\n", total.Chars, perMessage(total.Chars, total.Messages)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "words         | total: %d avg (message): %.1f\n", total.Words, perMessage(total.Words, total.Messages)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "emoji         | total: %d avg (message): %.1f\n", total.Emoji, perMessage(total.Emoji, total.Messages)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "word length   | avg: %.1f\n", perMessage(total.Chars, total.Words)); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, "most used emojis:"); err != nil {
			return err
		}
		for _, item := range TopEmojis(total, topEmojis) {
			pct := 100 * float64(item.Count) / float64(total.Emoji)
			if _, err := fmt.Fprintf(w, "%s: %d (%.2f%%)\n", item.Emoji, item.Count, pct); err != nil {
				return err
			}
		}
	}
	return nil
}

// EmojiCount is one ranked emoji with its occurrence count.
type EmojiCount struct {
	Emoji string
	Count int
}

// TopEmojis ranks total's emoji by count descending, ties kept in
// first-seen order, truncated to n.
func TopEmojis(total model.GeneralStatistic, n int) []EmojiCount {
	items := make([]EmojiCount, 0, len(total.EmojiOrder))
	for _, e := range total.EmojiOrder {
		items = append(items, EmojiCount{Emoji: e, Count: total.EmojiFreq[e]})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Count > items[j].Count
	})
	if n >= 0 && len(items) > n {
		items = items[:n]
	}
	return items
}

// formatPerDay derives messages per day from the day-bucket span. The
// span runs from the first to the last bucket key in encounter order,
// not chronological order, so a non-chronological transcript can
// produce a negative span. A single-day span is undefined and reported
// as N/A.
func formatPerDay(messages int, days []DayStat) string {
	if len(days) < 2 {
		return "N/A"
	}
	span := int(days[len(days)-1].Day.Sub(days[0].Day).Hours() / 24)
	if span == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", float64(messages)/float64(span))
}

func perMessage(total, count int) float64 {
	if count == 0 {
		return 0
	}
	return float64(total) / float64(count)
}
