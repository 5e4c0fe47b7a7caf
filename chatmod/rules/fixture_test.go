package rules

import (
	"context"

	"github.com/chanops/skimmer/chatmod/config"
	"github.com/chanops/skimmer/chatmod/engine"
)

// builds a fully in-memory engine running the default detector order, with
// the given config stored for the fixture channel
func engineFixture(cfg *config.ChannelConfig) *engine.Engine {
	eng := engine.EngineTestFixture(DefaultDetectors())
	if err := eng.Configs.(*config.MemStore).PutConfig(context.Background(), "12345", cfg); err != nil {
		panic(err)
	}
	return eng
}

func processText(eng *engine.Engine, text string) *engine.Decision {
	decision, err := eng.ProcessMessage(context.Background(), engine.NewTestMessage(text))
	if err != nil {
		panic(err)
	}
	return decision
}

func process(eng *engine.Engine, msg engine.Message) *engine.Decision {
	decision, err := eng.ProcessMessage(context.Background(), msg)
	if err != nil {
		panic(err)
	}
	return decision
}
