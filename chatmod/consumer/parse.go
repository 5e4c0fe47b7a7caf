package consumer

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/chanops/skimmer/chatmod/engine"
	"github.com/chanops/skimmer/chatmod/perms"
	"github.com/chanops/skimmer/chatmod/textscan"
)

// Line is one parsed IRC line, IRCv3 message tags included.
type Line struct {
	Tags    map[string]string
	Prefix  string
	Command string
	Params  []string
}

func (l *Line) Tag(name string) string {
	return l.Tags[name]
}

// Param returns the i'th parameter, or an empty string when out of range.
func (l *Line) Param(i int) string {
	if i >= len(l.Params) {
		return ""
	}
	return l.Params[i]
}

// the escaping defined by the IRCv3 message-tags spec
var tagUnescaper = strings.NewReplacer(`\:`, ";", `\s`, " ", `\\`, `\`, `\r`, "\r", `\n`, "\n")

// ParseLine parses one raw IRC line: optional @tags, optional :prefix, the
// command, middle parameters, and an optional trailing parameter.
func ParseLine(raw string) (*Line, error) {
	raw = strings.TrimRight(raw, "\r\n")
	if raw == "" {
		return nil, fmt.Errorf("empty IRC line")
	}
	line := &Line{}
	if strings.HasPrefix(raw, "@") {
		rawTags, rest, ok := strings.Cut(raw[1:], " ")
		if !ok {
			return nil, fmt.Errorf("IRC line has tags but no command")
		}
		line.Tags = make(map[string]string, strings.Count(rawTags, ";")+1)
		for _, tag := range strings.Split(rawTags, ";") {
			name, val, _ := strings.Cut(tag, "=")
			line.Tags[name] = tagUnescaper.Replace(val)
		}
		raw = rest
	}
	if strings.HasPrefix(raw, ":") {
		prefix, rest, ok := strings.Cut(raw[1:], " ")
		if !ok {
			return nil, fmt.Errorf("IRC line has a prefix but no command")
		}
		line.Prefix = prefix
		raw = rest
	}
	command, rest, hasParams := strings.Cut(raw, " ")
	if command == "" {
		return nil, fmt.Errorf("IRC line missing command")
	}
	line.Command = command
	for hasParams {
		if strings.HasPrefix(rest, ":") {
			line.Params = append(line.Params, rest[1:])
			break
		}
		var param string
		param, rest, hasParams = strings.Cut(rest, " ")
		if param != "" {
			line.Params = append(line.Params, param)
		}
	}
	return line, nil
}

// rune width of the "\x01ACTION " wrapper on /me messages. Twitch emote
// indices are computed before the wrapper is added.
const actionShift = 8

// ParseEmotes converts the Twitch `emotes` message tag (inclusive rune index
// pairs, eg "25:0-4,12-16/1902:6-10") to half-open spans over text, sorted by
// start offset.
func ParseEmotes(tag string, text string) []textscan.Span {
	if tag == "" {
		return nil
	}
	var shift int
	if strings.HasPrefix(text, "\x01ACTION ") {
		shift = actionShift
	}
	var spans []textscan.Span
	for _, emote := range strings.Split(tag, "/") {
		_, ranges, ok := strings.Cut(emote, ":")
		if !ok {
			continue
		}
		for _, rng := range strings.Split(ranges, ",") {
			rawStart, rawEnd, ok := strings.Cut(rng, "-")
			if !ok {
				continue
			}
			start, err := strconv.Atoi(rawStart)
			if err != nil {
				continue
			}
			end, err := strconv.Atoi(rawEnd)
			if err != nil || end < start {
				continue
			}
			spans = append(spans, textscan.Span{Start: start + shift, End: end + 1 + shift})
		}
	}
	slices.SortFunc(spans, func(a, b textscan.Span) int {
		return a.Start - b.Start
	})
	return spans
}

// PrivMsg converts a parsed channel PRIVMSG line in to an engine message. The
// second return is false for any other kind of line.
func PrivMsg(line *Line) (*engine.Message, bool) {
	if line.Command != "PRIVMSG" || len(line.Params) < 2 {
		return nil, false
	}
	channel := line.Param(0)
	if !strings.HasPrefix(channel, "#") {
		// whispers and the like
		return nil, false
	}
	text := line.Param(1)
	login, _, _ := strings.Cut(line.Prefix, "!")
	msg := &engine.Message{
		ID:          line.Tag("id"),
		ChannelID:   line.Tag("room-id"),
		Channel:     strings.TrimPrefix(channel, "#"),
		UserID:      line.Tag("user-id"),
		Login:       login,
		DisplayName: line.Tag("display-name"),
		Text:        text,
		Emotes:      ParseEmotes(line.Tag("emotes"), text),
		Levels:      perms.ParseBadges(line.Tag("badges")),
	}
	if ts := line.Tag("tmi-sent-ts"); ts != "" {
		if ms, err := strconv.ParseInt(ts, 10, 64); err == nil {
			msg.At = time.UnixMilli(ms)
		}
	}
	return msg, true
}
