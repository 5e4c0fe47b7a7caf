package chatmod

import (
	"github.com/chanops/skimmer/chatmod/config"
	"github.com/chanops/skimmer/chatmod/engine"
)

type Engine = engine.Engine
type Message = engine.Message
type MessageContext = engine.MessageContext
type Detector = engine.Detector
type Verdict = engine.Verdict
type Decision = engine.Decision
type Tier = engine.Tier

type Notifier = engine.Notifier
type SlackNotifier = engine.SlackNotifier

var (
	TierWarning   = engine.TierWarning
	TierTimeout   = engine.TierTimeout
	TierBlocklist = engine.TierBlocklist

	PunishNone    = config.PunishNone
	PunishWarning = config.PunishWarning
	PunishTimeout = config.PunishTimeout
	PunishBan     = config.PunishBan
)
