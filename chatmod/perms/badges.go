package perms

import "strings"

// badge names from the Twitch IRC `badges` tag which map to permission levels
var badgeLevels = map[string]Level{
	"broadcaster": Broadcaster,
	"moderator":   Moderator,
	"global_mod":  Moderator,
	"vip":         VIP,
	"subscriber":  Subscriber,
	"founder":     Subscriber,
	"staff":       Staff,
	"admin":       Admin,
}

// ParseBadges derives the permission levels held by a message sender from the
// raw Twitch IRC `badges` message tag (eg "broadcaster/1,subscriber/12").
// Badges with no permission meaning (bits, premium, etc) are ignored; every
// sender holds at least Viewer.
func ParseBadges(tag string) Level {
	levels := Viewer
	if tag == "" {
		return levels
	}
	for _, badge := range strings.Split(tag, ",") {
		name, _, _ := strings.Cut(badge, "/")
		if lvl, ok := badgeLevels[name]; ok {
			levels |= lvl
		}
	}
	return levels
}
