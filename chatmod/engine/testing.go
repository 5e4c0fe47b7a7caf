package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chanops/skimmer/chatmod/config"
	"github.com/chanops/skimmer/chatmod/perms"
	"github.com/chanops/skimmer/chatmod/ratestore"
	"github.com/chanops/skimmer/chatmod/setstore"
	"github.com/chanops/skimmer/chatmod/warnstore"
)

// Test helper which builds a fully in-memory engine with the default config
// stored for channel "12345". Intentionally exported, for use in other
// packages.
func EngineTestFixture(detectors []Detector) *Engine {
	configs := config.NewMemStore()
	if err := configs.PutConfig(context.Background(), "12345", config.DefaultConfig()); err != nil {
		panic(err)
	}
	sets := setstore.NewMemSetStore()
	_ = sets.AddToSet(context.Background(), "link-allowlist", "clips.twitch.tv")
	return &Engine{
		Logger:      slog.Default(),
		Detectors:   detectors,
		Configs:     configs,
		Warnings:    warnstore.NewMemWarningStore(),
		Rates:       ratestore.NewMemRateStore(),
		Sets:        sets,
		Permissions: perms.NewMemStore(),
	}
}

var testMessageSeq int

// Test helper which builds a plain viewer message for the fixture channel,
// with a unique id and a stable timestamp.
func NewTestMessage(text string) Message {
	testMessageSeq++
	return Message{
		ID:          fmt.Sprintf("test-msg-%d", testMessageSeq),
		ChannelID:   "12345",
		Channel:     "somestreamer",
		UserID:      "67890",
		Login:       "someviewer",
		DisplayName: "SomeViewer",
		Text:        text,
		Levels:      perms.Viewer,
		At:          time.UnixMilli(1_700_000_000_000),
	}
}
