package stats

import (
	"testing"
	"time"

	"github.com/mlvnd/chatstat/internal/emoji"
	"github.com/mlvnd/chatstat/internal/model"
)

func msgTime(day, hour, minute int) time.Time {
	return time.Date(2023, 1, day, hour, minute, 0, 0, time.UTC)
}

func TestAccumulateCountsAllResolutions(t *testing.T) {
	chat := model.Chat{
		Label:     "a.txt",
		SenderIDs: []int{0, 1},
		Messages: []model.Message{
			{Time: msgTime(2, 9, 0), SenderID: 0, Text: "Hello 😀"},
			{Time: msgTime(2, 10, 0), SenderID: 1, Text: "Hi there"},
			{Time: msgTime(3, 9, 30), SenderID: 0, Text: "Bye 😀 👍"},
		},
	}
	acc := Accumulate([]model.Chat{chat}, emoji.Find)

	key := model.StatKey{SenderID: 0, ChatID: 0}
	total, ok := acc.Total(key)
	if !ok {
		t.Fatalf("expected totals for %+v", key)
	}
	if total.Messages != 2 {
		t.Fatalf("expected 2 messages, got %d", total.Messages)
	}
	if total.Chars != 14 {
		t.Fatalf("expected 14 chars, got %d", total.Chars)
	}
	if total.Words != 5 {
		t.Fatalf("expected 5 words, got %d", total.Words)
	}
	if total.Emoji != 3 {
		t.Fatalf("expected 3 emoji, got %d", total.Emoji)
	}

	days := acc.Days(key)
	if len(days) != 2 {
		t.Fatalf("expected 2 day buckets, got %d", len(days))
	}
	dayMessages := 0
	for _, d := range days {
		dayMessages += d.Stat.Messages
	}
	if dayMessages != total.Messages {
		t.Fatalf("day buckets sum to %d, total is %d", dayMessages, total.Messages)
	}

	hours := acc.Hours(key)
	if len(hours) != 1 {
		t.Fatalf("expected 1 hour bucket, got %d", len(hours))
	}
	if hours[0].Hour != 9 || hours[0].Stat.Messages != 2 {
		t.Fatalf("unexpected hour bucket: %+v", hours[0])
	}
}

func TestAccumulateReplyLatency(t *testing.T) {
	chat := model.Chat{
		SenderIDs: []int{0, 1},
		Messages: []model.Message{
			{Time: msgTime(2, 9, 0), SenderID: 0, Text: "Hello"},
			{Time: msgTime(2, 9, 5), SenderID: 1, Text: "Hi"},
			{Time: msgTime(2, 9, 6), SenderID: 1, Text: "again"},
			{Time: msgTime(2, 9, 10), SenderID: 0, Text: "yo"},
		},
	}
	acc := Accumulate([]model.Chat{chat}, emoji.Find)

	bob, _ := acc.Total(model.StatKey{SenderID: 1, ChatID: 0})
	if len(bob.ReplyTimes) != 1 {
		t.Fatalf("expected 1 reply time for Bob, got %d", len(bob.ReplyTimes))
	}
	if bob.ReplyTimes[0] != 5*time.Minute {
		t.Fatalf("expected 5m reply, got %v", bob.ReplyTimes[0])
	}

	// The first message never records a latency; Bob's consecutive
	// second message does not either.
	alice, _ := acc.Total(model.StatKey{SenderID: 0, ChatID: 0})
	if len(alice.ReplyTimes) != 1 {
		t.Fatalf("expected 1 reply time for Alice, got %d", len(alice.ReplyTimes))
	}
	if alice.ReplyTimes[0] != 4*time.Minute {
		t.Fatalf("expected 4m reply, got %v", alice.ReplyTimes[0])
	}

	minutes := acc.ReplyMinutes(model.StatKey{SenderID: 1, ChatID: 0})
	if len(minutes) != 1 || minutes[0] != 5 {
		t.Fatalf("unexpected reply minutes: %v", minutes)
	}
	if got := acc.MaxReplyMinutes(0, chat.SenderIDs); got != 5 {
		t.Fatalf("expected shared max 5, got %v", got)
	}
}

func TestAccumulateEmojiFrequency(t *testing.T) {
	chat := model.Chat{
		SenderIDs: []int{0},
		Messages: []model.Message{
			{Time: msgTime(2, 9, 0), SenderID: 0, Text: "👍 then 😀"},
			{Time: msgTime(2, 9, 1), SenderID: 0, Text: "😀😀"},
		},
	}
	acc := Accumulate([]model.Chat{chat}, emoji.Find)
	total, _ := acc.Total(model.StatKey{SenderID: 0, ChatID: 0})
	if total.Emoji != 4 {
		t.Fatalf("expected 4 emoji, got %d", total.Emoji)
	}
	if len(total.EmojiOrder) != 2 || total.EmojiOrder[0] != "👍" || total.EmojiOrder[1] != "😀" {
		t.Fatalf("unexpected first-seen order: %v", total.EmojiOrder)
	}
	if total.EmojiFreq["👍"] != 1 || total.EmojiFreq["😀"] != 3 {
		t.Fatalf("unexpected frequencies: %v", total.EmojiFreq)
	}
}

func TestAccumulateKeepsEncounterOrder(t *testing.T) {
	chat := model.Chat{
		SenderIDs: []int{0},
		Messages: []model.Message{
			{Time: msgTime(5, 23, 0), SenderID: 0, Text: "late first"},
			{Time: msgTime(2, 8, 0), SenderID: 0, Text: "early second"},
		},
	}
	acc := Accumulate([]model.Chat{chat}, emoji.Find)
	days := acc.Days(model.StatKey{SenderID: 0, ChatID: 0})
	if len(days) != 2 {
		t.Fatalf("expected 2 day buckets, got %d", len(days))
	}
	if !days[0].Day.After(days[1].Day) {
		t.Fatalf("expected encounter order, got %v then %v", days[0].Day, days[1].Day)
	}
	hours := acc.Hours(model.StatKey{SenderID: 0, ChatID: 0})
	if hours[0].Hour != 23 || hours[1].Hour != 8 {
		t.Fatalf("expected encounter order for hours, got %+v", hours)
	}
}

func TestAccumulateSeparatesChats(t *testing.T) {
	chats := []model.Chat{
		{SenderIDs: []int{0}, Messages: []model.Message{{Time: msgTime(2, 9, 0), SenderID: 0, Text: "one"}}},
		{SenderIDs: []int{0}, Messages: []model.Message{{Time: msgTime(2, 9, 0), SenderID: 0, Text: "two words"}}},
	}
	acc := Accumulate(chats, emoji.Find)
	first, _ := acc.Total(model.StatKey{SenderID: 0, ChatID: 0})
	second, _ := acc.Total(model.StatKey{SenderID: 0, ChatID: 1})
	if first.Words != 1 || second.Words != 2 {
		t.Fatalf("expected chats to aggregate separately, got %d and %d", first.Words, second.Words)
	}
}

func TestAccumulateEmptyChat(t *testing.T) {
	acc := Accumulate([]model.Chat{{Label: "empty.txt"}}, emoji.Find)
	if _, ok := acc.Total(model.StatKey{SenderID: 0, ChatID: 0}); ok {
		t.Fatalf("expected no aggregates for an empty chat")
	}
	if minutes := acc.ReplyMinutes(model.StatKey{SenderID: 0, ChatID: 0}); minutes != nil {
		t.Fatalf("expected nil reply minutes, got %v", minutes)
	}
}
