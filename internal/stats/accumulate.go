// Package stats contains statistics aggregation and reporting.
package stats

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mlvnd/chatstat/internal/emoji"
	"github.com/mlvnd/chatstat/internal/model"
)

// buckets keeps per-key counters in first-encounter order.
type buckets[K comparable] struct {
	order []K
	byKey map[K]*model.Statistic
}

func newBuckets[K comparable]() *buckets[K] {
	return &buckets[K]{byKey: map[K]*model.Statistic{}}
}

func (b *buckets[K]) get(key K) *model.Statistic {
	if s, ok := b.byKey[key]; ok {
		return s
	}
	s := &model.Statistic{}
	b.byKey[key] = s
	b.order = append(b.order, key)
	return s
}

// DayStat pairs a calendar day with its counters.
type DayStat struct {
	Day  time.Time
	Stat model.Statistic
}

// HourStat pairs an hour of day (0-23) with its counters.
type HourStat struct {
	Hour int
	Stat model.Statistic
}

// Accumulator folds parsed chats into total, per-day, and per-hour
// aggregates keyed by (sender, chat).
type Accumulator struct {
	find   emoji.FindFunc
	totals map[model.StatKey]*model.GeneralStatistic
	byDay  map[model.StatKey]*buckets[time.Time]
	byHour map[model.StatKey]*buckets[int]
}

// New returns an empty accumulator that locates emoji with find.
func New(find emoji.FindFunc) *Accumulator {
	return &Accumulator{
		find:   find,
		totals: map[model.StatKey]*model.GeneralStatistic{},
		byDay:  map[model.StatKey]*buckets[time.Time]{},
		byHour: map[model.StatKey]*buckets[int]{},
	}
}

// Accumulate folds chats indexed by their input position.
func Accumulate(chats []model.Chat, find emoji.FindFunc) *Accumulator {
	acc := New(find)
	for chatID, chat := range chats {
		acc.AddChat(chatID, chat)
	}
	return acc
}

// AddChat folds one chat's messages in source order. Message order is
// authoritative even when timestamps are non-monotonic.
func (a *Accumulator) AddChat(chatID int, chat model.Chat) {
	var lastSender int
	var lastTime time.Time
	for i, msg := range chat.Messages {
		key := model.StatKey{SenderID: msg.SenderID, ChatID: chatID}
		total := a.total(key)

		// A sender change charges the gap to the replying sender.
		// The first message has no predecessor.
		if i > 0 && msg.SenderID != lastSender {
			total.ReplyTimes = append(total.ReplyTimes, msg.Time.Sub(lastTime))
		}
		lastSender = msg.SenderID
		lastTime = msg.Time

		day := time.Date(msg.Time.Year(), msg.Time.Month(), msg.Time.Day(), 0, 0, 0, 0, msg.Time.Location())
		counters := []*model.Statistic{
			&total.Statistic,
			a.dayBuckets(key).get(day),
			a.hourBuckets(key).get(msg.Time.Hour()),
		}

		chars := utf8.RuneCountInString(msg.Text)
		words := len(strings.Fields(msg.Text))
		matches := a.find(msg.Text)
		for _, s := range counters {
			s.Messages++
			s.Chars += chars
			s.Words += words
			s.Emoji += len(matches)
		}
		for _, m := range matches {
			if _, ok := total.EmojiFreq[m.Emoji]; !ok {
				total.EmojiOrder = append(total.EmojiOrder, m.Emoji)
			}
			total.EmojiFreq[m.Emoji]++
		}
	}
}

// Total returns the total-resolution aggregate for key.
func (a *Accumulator) Total(key model.StatKey) (model.GeneralStatistic, bool) {
	total, ok := a.totals[key]
	if !ok {
		return model.GeneralStatistic{}, false
	}
	return *total, true
}

// Days returns key's per-day counters in first-encounter order.
func (a *Accumulator) Days(key model.StatKey) []DayStat {
	b, ok := a.byDay[key]
	if !ok {
		return nil
	}
	out := make([]DayStat, 0, len(b.order))
	for _, day := range b.order {
		out = append(out, DayStat{Day: day, Stat: *b.byKey[day]})
	}
	return out
}

// Hours returns key's per-hour counters in first-encounter order.
func (a *Accumulator) Hours(key model.StatKey) []HourStat {
	b, ok := a.byHour[key]
	if !ok {
		return nil
	}
	out := make([]HourStat, 0, len(b.order))
	for _, hour := range b.order {
		out = append(out, HourStat{Hour: hour, Stat: *b.byKey[hour]})
	}
	return out
}

// ReplyMinutes returns key's reply latencies in minutes, in arrival
// order.
func (a *Accumulator) ReplyMinutes(key model.StatKey) []float64 {
	total, ok := a.totals[key]
	if !ok || len(total.ReplyTimes) == 0 {
		return nil
	}
	out := make([]float64, len(total.ReplyTimes))
	for i, d := range total.ReplyTimes {
		out[i] = d.Minutes()
	}
	return out
}

// MaxReplyMinutes returns the largest reply latency in minutes across
// the given senders of one chat. Histograms bin against this shared
// upper bound so sender plots stay comparable.
func (a *Accumulator) MaxReplyMinutes(chatID int, senderIDs []int) float64 {
	maxMin := 0.0
	for _, senderID := range senderIDs {
		for _, v := range a.ReplyMinutes(model.StatKey{SenderID: senderID, ChatID: chatID}) {
			if v > maxMin {
				maxMin = v
			}
		}
	}
	return maxMin
}

func (a *Accumulator) total(key model.StatKey) *model.GeneralStatistic {
	if total, ok := a.totals[key]; ok {
		return total
	}
	total := &model.GeneralStatistic{EmojiFreq: map[string]int{}}
	a.totals[key] = total
	return total
}

func (a *Accumulator) dayBuckets(key model.StatKey) *buckets[time.Time] {
	if b, ok := a.byDay[key]; ok {
		return b
	}
	b := newBuckets[time.Time]()
	a.byDay[key] = b
	return b
}

func (a *Accumulator) hourBuckets(key model.StatKey) *buckets[int] {
	if b, ok := a.byHour[key]; ok {
		return b
	}
	b := newBuckets[int]()
	a.byHour[key] = b
	return b
}
