package consumer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var chatLineCount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "chatmod_chat_lines",
	Help: "Number of raw IRC lines received",
})

var chatMessageCount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "chatmod_chat_messages",
	Help: "Number of chat messages dispatched for evaluation",
})

var duplicateMessageCount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "chatmod_chat_duplicate_messages",
	Help: "Number of redelivered chat messages dropped by the dedupe cache",
})

var reconnectCount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "chatmod_chat_reconnects",
	Help: "Number of chat connection attempts after the first",
})

var chatSendCount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "chatmod_chat_sends",
	Help: "Number of chat lines sent in response to verdicts",
})

var chatSendDroppedCount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "chatmod_chat_sends_dropped",
	Help: "Number of chat responses dropped by the outbound rate limit",
})
