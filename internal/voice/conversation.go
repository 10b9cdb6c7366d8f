// Package voice runs live voice conversations between a client audio stream and a
// streaming inference session.
package voice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// Speaker is author of transcript turn
type Speaker string

const (
	SpeakerUser  Speaker = "user"
	SpeakerModel Speaker = "model"
)

// Turn is transcript of one utterance, fragments of the same turn share id
type Turn struct {
	ID      int     `json:"id"`
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
	Final   bool    `json:"final"`
}

// Chunk is transcript fragment reported by inference session
type Chunk struct {
	Text  string
	Final bool
}

// Message is single message of inference session
type Message struct {
	Input  *Chunk
	Output *Chunk
	Audio  [][]byte
}

// ClientStream is client side of conversation, ReadFrame returns io.EOF when client stops
type ClientStream interface {
	ReadFrame() (Frame, error)
	WriteTurn(Turn) error
	WriteAudio([]byte) error
	Close() error
}

// LiveSession is streaming inference session, Receive returns io.EOF when session ends
type LiveSession interface {
	SendAudio(pcm []byte, mimeType string) error
	Receive() (Message, error)
	Close() error
}

// Connector opens inference sessions
type Connector interface {
	Connect(ctx context.Context) (LiveSession, error)
}

var errStopped = errors.New("conversation stopped")

// Conversation pumps audio between client and inference session until either side stops
type Conversation struct {
	scope   *Scope
	client  ClientStream
	input   *audioPipeline
	output  *audioPipeline
	session LiveSession

	cancel context.CancelFunc
	done   chan struct{}
	err    error

	transcript transcript
}

// Start acquires client stream, audio pipelines and inference session. When any acquisition
// fails everything acquired so far is released. Client stream is owned by conversation from now on.
func Start(ctx context.Context, client ClientStream, connector Connector) (*Conversation, error) {
	scope := NewScope()
	_ = scope.Defer("client stream", client.Close)

	input := newAudioPipeline("input", InputSampleRate)
	_ = scope.Defer("input pipeline", input.Close)

	output := newAudioPipeline("output", OutputSampleRate)
	_ = scope.Defer("output pipeline", output.Close)

	session, err := connector.Connect(ctx)
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("failed to connect inference session - %w", err), scope.Close())
	}
	_ = scope.Defer("inference session", session.Close)

	runCtx, cancel := context.WithCancel(ctx)
	c := &Conversation{
		scope:   scope,
		client:  client,
		input:   input,
		output:  output,
		session: session,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	go c.run(runCtx)

	return c, nil
}

// Done is closed once conversation is over and resources are released
func (c *Conversation) Done() <-chan struct{} {
	return c.done
}

// Err returns reason conversation ended, valid after Done is closed
func (c *Conversation) Err() error {
	<-c.done
	return c.err
}

// Stop ends conversation and waits for resources release
func (c *Conversation) Stop() error {
	c.cancel()
	return c.Err()
}

func (c *Conversation) run(ctx context.Context) {
	defer close(c.done)
	defer c.cancel()

	g, gctx := errgroup.WithContext(ctx)

	var releaseOnce sync.Once
	var releaseErr error
	releaseAll := func() {
		releaseOnce.Do(func() {
			releaseErr = c.scope.Close()
		})
	}

	// blocked reads are interrupted by releasing resources
	g.Go(func() error {
		<-gctx.Done()
		releaseAll()
		return nil
	})
	g.Go(func() error { return c.upstream(gctx) })
	g.Go(func() error { return c.downstream(gctx) })

	err := g.Wait()
	releaseAll()

	if errors.Is(err, errStopped) {
		err = nil
	}

	c.err = multierr.Append(err, releaseErr)
	if c.err != nil {
		logrus.Warnf("voice conversation ended with error - %v", c.err)
	}
}

func (c *Conversation) upstream(ctx context.Context) error {
	for {
		frame, err := c.client.ReadFrame()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, io.EOF) {
				return errStopped
			}
			return fmt.Errorf("failed to read client audio - %w", err)
		}

		pcm, err := c.input.Process(frame)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		if err := c.session.SendAudio(pcm, c.input.MIMEType()); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to send audio to inference session - %w", err)
		}
	}
}

func (c *Conversation) downstream(ctx context.Context) error {
	for {
		msg, err := c.session.Receive()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, io.EOF) {
				return errStopped
			}
			return fmt.Errorf("failed to receive from inference session - %w", err)
		}

		if err := c.forward(msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

func (c *Conversation) forward(msg Message) error {
	if msg.Input != nil {
		if err := c.client.WriteTurn(c.transcript.add(SpeakerUser, *msg.Input)); err != nil {
			return fmt.Errorf("failed to write transcript - %w", err)
		}
	}

	if msg.Output != nil {
		if err := c.client.WriteTurn(c.transcript.add(SpeakerModel, *msg.Output)); err != nil {
			return fmt.Errorf("failed to write transcript - %w", err)
		}
	}

	for _, data := range msg.Audio {
		pcm, err := c.output.Process(Frame{Format: FormatPCM16, Data: data})
		if err != nil {
			return err
		}

		if err := c.client.WriteAudio(pcm); err != nil {
			return fmt.Errorf("failed to write audio - %w", err)
		}
	}
	return nil
}

// transcript merges fragments into turns, fragment after final one starts new turn
type transcript struct {
	lastID  int
	current map[Speaker]*Turn
}

func (t *transcript) add(speaker Speaker, chunk Chunk) Turn {
	if t.current == nil {
		t.current = make(map[Speaker]*Turn)
	}

	turn, ok := t.current[speaker]
	if !ok || turn.Final {
		t.lastID++
		turn = &Turn{ID: t.lastID, Speaker: speaker}
		t.current[speaker] = turn
	}

	turn.Text += chunk.Text
	turn.Final = chunk.Final
	return *turn
}
