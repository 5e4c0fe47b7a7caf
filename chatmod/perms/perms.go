package perms

import (
	"fmt"
	"strings"
)

// Level is a bitmask of permission levels a user holds within a channel. A
// user usually holds more than one at a time (eg, a subscribed moderator).
type Level uint16

const (
	Viewer Level = 1 << iota
	Subscriber
	VIP
	Moderator
	Broadcaster
	Staff
	Admin
)

var levelNames = []struct {
	level Level
	name  string
}{
	{Viewer, "viewer"},
	{Subscriber, "subscriber"},
	{VIP, "vip"},
	{Moderator, "moderator"},
	{Broadcaster, "broadcaster"},
	{Staff, "staff"},
	{Admin, "admin"},
}

// HasAny indicates whether l holds at least one of the levels in mask.
func (l Level) HasAny(mask Level) bool {
	return l&mask != 0
}

func (l Level) String() string {
	if l == 0 {
		return "none"
	}
	var parts []string
	for _, ln := range levelNames {
		if l&ln.level != 0 {
			parts = append(parts, ln.name)
		}
	}
	return strings.Join(parts, ",")
}

// ParseLevel turns a single level name (eg "vip") in to a Level bit.
func ParseLevel(name string) (Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, ln := range levelNames {
		if name == ln.name {
			return ln.level, nil
		}
	}
	return 0, fmt.Errorf("unknown permission level: %q", name)
}

// Level fields round-trip through JSON as comma-separated level names, so
// persisted channel configs stay readable and order-independent.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "none" {
		*l = 0
		return nil
	}
	var out Level
	for _, part := range strings.Split(s, ",") {
		lvl, err := ParseLevel(part)
		if err != nil {
			return err
		}
		out |= lvl
	}
	*l = out
	return nil
}
