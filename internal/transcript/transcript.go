// Package transcript reads exported chat logs into messages.
package transcript

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mlvnd/chatstat/internal/model"
	"github.com/mlvnd/chatstat/internal/registry"
)

// timeLayout accepts the export's M/D/YY, H:MM stamps with or without
// zero padding, 24-hour clock.
const timeLayout = "1/2/06, 15:4"

var (
	headerPrefix = regexp.MustCompile(`^\d+/\d+/\d+, \d+:\d+`)
	record       = regexp.MustCompile(`^(\d+/\d+/\d+, \d+:\d+) - ([^:]+): (.*)$`)
)

// Load parses the transcript file at path. The chat label is the
// file's base name.
func Load(path string, reg *registry.Registry) (model.Chat, error) {
	file, err := os.Open(path)
	if err != nil {
		return model.Chat{}, fmt.Errorf("failed to open transcript: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only transcript.
			_ = cerr
		}
	}()
	chat, err := Parse(file, filepath.Base(path), reg)
	if err != nil {
		return model.Chat{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return chat, nil
}

// Parse reads one transcript line by line. Lines are trimmed, then
// classified: lines without a date-time prefix continue the open
// message (appended verbatim, dropped when no message is open yet);
// prefixed lines must decompose into timestamp, sender, and body or
// they are skipped entirely. A timestamp that matches the record shape
// but does not parse aborts with an error.
func Parse(r io.Reader, label string, reg *registry.Registry) (model.Chat, error) {
	chat := model.Chat{Label: label}
	seen := map[int]bool{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if !headerPrefix.MatchString(line) {
			if len(chat.Messages) == 0 {
				log.Debug().Str("chat", label).Int("line", lineNo).Msg("dropping continuation before first message")
				continue
			}
			chat.Messages[len(chat.Messages)-1].Text += line
			continue
		}

		parts := record.FindStringSubmatch(line)
		if parts == nil {
			log.Debug().Str("chat", label).Int("line", lineNo).Msg("skipping unrecognized header line")
			continue
		}

		ts, err := time.Parse(timeLayout, parts[1])
		if err != nil {
			return model.Chat{}, fmt.Errorf("failed to parse timestamp on line %d: %w", lineNo, err)
		}
		id := reg.Resolve(parts[2])
		if !seen[id] {
			seen[id] = true
			chat.SenderIDs = append(chat.SenderIDs, id)
		}
		chat.Messages = append(chat.Messages, model.Message{Time: ts, SenderID: id, Text: parts[3]})
	}
	if err := scanner.Err(); err != nil {
		return model.Chat{}, fmt.Errorf("failed to read transcript: %w", err)
	}
	return chat, nil
}
