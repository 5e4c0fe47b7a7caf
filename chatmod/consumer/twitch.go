// Twitch chat consumer: connects to the IRC-over-WebSocket gateway, parses
// tagged chat lines, and feeds channel messages through the moderation engine.
package consumer

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/carlmjohnson/versioninfo"
	"github.com/gorilla/websocket"
	arc "github.com/hashicorp/golang-lru/arc/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/chanops/skimmer/chatmod/engine"
)

const (
	// the server pings roughly every five minutes; a silent connection past
	// that is dead
	chatReadTimeout  = 6 * time.Minute
	chatWriteTimeout = 10 * time.Second

	// redelivery dedupe cache
	seenMessageCacheSize = 50_000
)

type TwitchConsumer struct {
	Logger   *slog.Logger
	Engine   *engine.Engine
	Executor Executor
	// WebSocket gateway, eg "wss://irc-ws.chat.twitch.tv:443"
	Host string
	Nick string
	// "oauth:..." token for the bot account
	Token    string
	Channels []string
	// worker goroutines evaluating messages
	Parallelism int

	writeLk sync.Mutex
	conn    *websocket.Conn

	seen *arc.ARCCache[string, struct{}]
}

// Run connects and consumes chat until the context is cancelled, redialing
// with backoff when the connection drops. Message evaluation runs on a fixed
// pool of workers so one slow store lookup does not stall the read loop.
func (tc *TwitchConsumer) Run(ctx context.Context) error {
	if tc.Engine == nil {
		return fmt.Errorf("nil engine")
	}
	if tc.Logger == nil {
		tc.Logger = slog.Default()
	}
	if tc.Executor == nil {
		tc.Executor = &LogExecutor{Logger: tc.Logger}
	}
	if tc.Parallelism <= 0 {
		tc.Parallelism = 8
	}
	seen, err := arc.NewARC[string, struct{}](seenMessageCacheSize)
	if err != nil {
		return fmt.Errorf("failed to create message dedupe cache: %w", err)
	}
	tc.seen = seen

	msgs := make(chan *engine.Message, 1024)
	eg, ctx := errgroup.WithContext(ctx)
	for i := 0; i < tc.Parallelism; i++ {
		eg.Go(func() error {
			for msg := range msgs {
				tc.processMessage(ctx, msg)
			}
			return nil
		})
	}
	eg.Go(func() error {
		defer close(msgs)
		var backoff int
		for {
			started := time.Now()
			err := tc.runConnection(ctx, msgs)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// a connection that held for a while earns a fresh start
			if time.Since(started) > time.Minute {
				backoff = 0
			}
			tc.Logger.Warn("chat connection lost, redialing", "err", err, "backoff", backoff)
			reconnectCount.Inc()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(sleepForBackoff(backoff)):
			}
			backoff++
		}
	})
	return eg.Wait()
}

func sleepForBackoff(b int) time.Duration {
	if b == 0 {
		return 0
	}
	if b < 10 {
		return (time.Duration(b) * time.Second) + (time.Millisecond * time.Duration(rand.Intn(1000)))
	}
	return time.Second * 30
}

func (tc *TwitchConsumer) runConnection(ctx context.Context, msgs chan<- *engine.Message) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, tc.Host, http.Header{
		"User-Agent": []string{fmt.Sprintf("skimmer/%s", versioninfo.Short())},
	})
	if err != nil {
		return fmt.Errorf("dialing chat gateway failed: %w", err)
	}
	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		// unblocks the read loop when the context ends
		<-connCtx.Done()
		conn.Close()
	}()
	tc.setConn(conn)
	defer tc.setConn(nil)

	// request tags and commands before registering; without them lines carry
	// none of the metadata the engine needs
	for _, reg := range []string{
		"CAP REQ :twitch.tv/tags twitch.tv/commands",
		"PASS " + tc.Token,
		"NICK " + tc.Nick,
	} {
		if err := tc.writeLine(conn, reg); err != nil {
			return err
		}
	}

	go tc.joinChannels(connCtx, conn)

	for {
		if err := conn.SetReadDeadline(time.Now().Add(chatReadTimeout)); err != nil {
			return err
		}
		_, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("reading chat stream failed: %w", err)
		}
		// the gateway batches several IRC lines per websocket frame
		for _, raw := range strings.Split(string(data), "\r\n") {
			if raw == "" {
				continue
			}
			if err := tc.handleLine(ctx, raw, conn, msgs); err != nil {
				return err
			}
		}
	}
}

func (tc *TwitchConsumer) handleLine(ctx context.Context, raw string, conn *websocket.Conn, msgs chan<- *engine.Message) error {
	chatLineCount.Inc()
	line, err := ParseLine(raw)
	if err != nil {
		tc.Logger.Debug("skipping unparseable chat line", "err", err)
		return nil
	}
	switch line.Command {
	case "001":
		tc.Logger.Info("connected to chat", "host", tc.Host, "nick", tc.Nick)
	case "PING":
		return tc.writeLine(conn, "PONG :"+line.Param(0))
	case "RECONNECT":
		// the server is about to drop this connection; beat it to it
		return fmt.Errorf("server requested reconnect")
	case "NOTICE":
		tc.Logger.Info("chat server notice", "text", line.Param(1))
	case "PRIVMSG":
		msg, ok := PrivMsg(line)
		if !ok {
			return nil
		}
		if strings.EqualFold(msg.Login, tc.Nick) {
			// never moderate our own messages
			return nil
		}
		if msg.ID != "" {
			if tc.seen.Contains(msg.ID) {
				duplicateMessageCount.Inc()
				return nil
			}
			tc.seen.Add(msg.ID, struct{}{})
		}
		chatMessageCount.Inc()
		select {
		case msgs <- msg:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (tc *TwitchConsumer) joinChannels(ctx context.Context, conn *websocket.Conn) {
	// Twitch allows 20 join attempts per 10 seconds for ordinary bot accounts
	lim := rate.NewLimiter(rate.Limit(2), 20)
	for _, channel := range tc.Channels {
		if err := lim.Wait(ctx); err != nil {
			return
		}
		channel = strings.ToLower(strings.TrimPrefix(channel, "#"))
		if err := tc.writeLine(conn, "JOIN #"+channel); err != nil {
			tc.Logger.Warn("joining channel failed", "channel", channel, "err", err)
			return
		}
	}
	tc.Logger.Info("joined channels", "count", len(tc.Channels))
}

func (tc *TwitchConsumer) processMessage(ctx context.Context, msg *engine.Message) {
	decision, err := tc.Engine.ProcessMessage(ctx, *msg)
	if err != nil {
		tc.Logger.Error("message evaluation failed", "channel", msg.Channel, "msgID", msg.ID, "err", err)
		return
	}
	if decision == nil || decision.Final == nil {
		return
	}
	if err := tc.Executor.Execute(ctx, decision); err != nil {
		tc.Logger.Error("executing verdict failed", "channel", msg.Channel, "msgID", msg.ID, "err", err)
	}
}

func (tc *TwitchConsumer) setConn(conn *websocket.Conn) {
	tc.writeLk.Lock()
	defer tc.writeLk.Unlock()
	tc.conn = conn
}

func (tc *TwitchConsumer) writeLine(conn *websocket.Conn, line string) error {
	tc.writeLk.Lock()
	defer tc.writeLk.Unlock()
	conn.SetWriteDeadline(time.Now().Add(chatWriteTimeout))
	return conn.WriteMessage(websocket.TextMessage, []byte(line))
}

// SendChat writes one message line to a channel over the live connection.
// Implements ChatSender for the chat executor.
func (tc *TwitchConsumer) SendChat(ctx context.Context, channel string, text string) error {
	tc.writeLk.Lock()
	conn := tc.conn
	tc.writeLk.Unlock()
	if conn == nil {
		return fmt.Errorf("not connected to chat")
	}
	return tc.writeLine(conn, fmt.Sprintf("PRIVMSG #%s :%s", channel, text))
}
