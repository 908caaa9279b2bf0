// Package model defines shared data structures.
package model

import "time"

// Sender identifies one chat participant by a dense numeric id.
type Sender struct {
	ID   int
	Name string
}

// Message is a single parsed transcript record.
type Message struct {
	Time     time.Time
	SenderID int
	Text     string
}

// Chat holds one transcript's messages in source order. SenderIDs lists
// the participants in first-appearance order.
type Chat struct {
	Label     string
	Messages  []Message
	SenderIDs []int
}

// StatKey addresses the aggregates of one sender within one chat.
type StatKey struct {
	SenderID int
	ChatID   int
}

// Statistic accumulates the per-bucket message counters.
type Statistic struct {
	Messages int
	Chars    int
	Words    int
	Emoji    int
}

// GeneralStatistic extends Statistic with data kept only at the total
// resolution: the per-emoji frequency table (keys in first-seen order)
// and the reply latencies in arrival order.
type GeneralStatistic struct {
	Statistic
	EmojiFreq  map[string]int
	EmojiOrder []string
	ReplyTimes []time.Duration
}
