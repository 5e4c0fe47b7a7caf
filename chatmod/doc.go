// Chat moderation rules engine for Twitch-style channels.
//
// This package (`github.com/chanops/skimmer/chatmod`) contains a rules engine which screens chat messages against per-channel moderation config. Messages run through a fixed set of detectors (caps, links, repetition, a configurable blocklist, and so on); detectors which fire yield verdicts, and the most severe verdict becomes the enforcement decision for the message. Warning history is tracked per sender so a repeat offense inside a channel's warning window escalates from a chat warning to a timeout. Detector state (warning marks, message rates, shared allowlist sets, cached configs) lives behind small store interfaces with in-memory and redis implementations.
//
// See `cmd/skimmer` for a daemon built on this package.
package chatmod
