package voice

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const waitTimeout = 2 * time.Second

func TestMain(m *testing.M) {
	// opencensus worker is started on import by the inference client transport
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

type releaseLog struct {
	mu    sync.Mutex
	names []string
}

func (l *releaseLog) add(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.names = append(l.names, name)
}

func (l *releaseLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string{}, l.names...)
}

type fakeClient struct {
	log    *releaseLog
	frames chan Frame
	closed chan struct{}
	once   sync.Once

	mu    sync.Mutex
	turns []Turn
	audio [][]byte
}

func newFakeClient(log *releaseLog) *fakeClient {
	return &fakeClient{log: log, frames: make(chan Frame), closed: make(chan struct{})}
}

func (c *fakeClient) ReadFrame() (Frame, error) {
	select {
	case f, ok := <-c.frames:
		if !ok {
			return Frame{}, io.EOF
		}
		return f, nil
	case <-c.closed:
		return Frame{}, errors.New("client stream is closed")
	}
}

func (c *fakeClient) WriteTurn(t Turn) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.turns = append(c.turns, t)
	return nil
}

func (c *fakeClient) WriteAudio(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.audio = append(c.audio, data)
	return nil
}

func (c *fakeClient) Close() error {
	c.once.Do(func() {
		close(c.closed)
		c.log.add("client")
	})
	return nil
}

func (c *fakeClient) written() ([]Turn, [][]byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Turn{}, c.turns...), append([][]byte{}, c.audio...)
}

type fakeSession struct {
	log      *releaseLog
	messages chan Message
	failWith error
	closed   chan struct{}
	once     sync.Once
	closeErr error
	panicky  bool

	mu   sync.Mutex
	sent [][]byte
	mime string
}

func newFakeSession(log *releaseLog) *fakeSession {
	return &fakeSession{log: log, messages: make(chan Message), closed: make(chan struct{})}
}

func (s *fakeSession) SendAudio(pcm []byte, mimeType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, pcm)
	s.mime = mimeType
	return nil
}

func (s *fakeSession) Receive() (Message, error) {
	select {
	case m, ok := <-s.messages:
		if !ok {
			if s.failWith != nil {
				return Message{}, s.failWith
			}
			return Message{}, io.EOF
		}
		return m, nil
	case <-s.closed:
		return Message{}, errors.New("session is closed")
	}
}

func (s *fakeSession) Close() error {
	s.once.Do(func() {
		close(s.closed)
		s.log.add("session")
	})

	if s.panicky {
		panic("session close exploded")
	}
	return s.closeErr
}

func (s *fakeSession) sentAudio() ([][]byte, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]byte{}, s.sent...), s.mime
}

type fakeConnector struct {
	session LiveSession
	err     error
}

func (c *fakeConnector) Connect(context.Context) (LiveSession, error) {
	return c.session, c.err
}

func waitDone(t *testing.T, c *Conversation) {
	t.Helper()

	select {
	case <-c.Done():
	case <-time.After(waitTimeout):
		t.Fatal("conversation didn't stop in time")
	}
}

func float32Frame(samples ...float32) []byte {
	data := make([]byte, len(samples)*4)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(s))
	}
	return data
}

func TestScopeReleasesInReverseOrder(t *testing.T) {
	var order []string
	s := NewScope()

	require.NoError(t, s.Defer("a", func() error { order = append(order, "a"); return nil }))
	require.NoError(t, s.Defer("b", func() error { order = append(order, "b"); return errors.New("b failed") }))
	require.NoError(t, s.Defer("c", func() error { order = append(order, "c"); panic("c exploded") }))
	require.NoError(t, s.Defer("d", func() error { order = append(order, "d"); return nil }))

	err := s.Close()
	require.Equal(t, []string{"d", "c", "b", "a"}, order, "every release must run in reverse order")
	require.ErrorContains(t, err, "b failed")
	require.ErrorContains(t, err, "release of c panicked")

	t.Log("second close returns the same result without releasing again")
	{
		require.Equal(t, err, s.Close())
		require.Len(t, order, 4)
	}

	t.Log("resource registered after close is released immediately")
	{
		released := false
		require.NoError(t, s.Defer("late", func() error { released = true; return nil }))
		require.True(t, released)
	}
}

func TestFloat32ToPCM16(t *testing.T) {
	pcm, err := Float32ToPCM16(float32Frame(0, 0.5, 1, -1, 2, -3, float32(math.NaN())))
	require.NoError(t, err)

	samples := make([]int16, len(pcm)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(pcm[i*2:]))
	}
	require.Equal(t, []int16{0, 16384, 32767, -32768, 32767, -32768, 0}, samples)

	_, err = Float32ToPCM16([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestTranscriptMergesFragments(t *testing.T) {
	var tr transcript

	require.Equal(t, Turn{ID: 1, Speaker: SpeakerUser, Text: "Xin "}, tr.add(SpeakerUser, Chunk{Text: "Xin "}))
	require.Equal(t, Turn{ID: 2, Speaker: SpeakerModel, Text: "Chào"}, tr.add(SpeakerModel, Chunk{Text: "Chào"}))
	require.Equal(t, Turn{ID: 1, Speaker: SpeakerUser, Text: "Xin chào", Final: true}, tr.add(SpeakerUser, Chunk{Text: "chào", Final: true}))
	require.Equal(t, Turn{ID: 3, Speaker: SpeakerUser, Text: "Giá?"}, tr.add(SpeakerUser, Chunk{Text: "Giá?"}))
}

func TestConversationPumpsAudioAndTranscripts(t *testing.T) {
	log := &releaseLog{}
	client := newFakeClient(log)
	session := newFakeSession(log)

	conv, err := Start(context.Background(), client, &fakeConnector{session: session})
	require.NoError(t, err)

	client.frames <- Frame{Format: FormatFloat32, Data: float32Frame(0.5)}
	client.frames <- Frame{Format: FormatPCM16, Data: []byte{1, 0}}

	session.messages <- Message{Input: &Chunk{Text: "Xe SH", Final: true}}
	session.messages <- Message{Output: &Chunk{Text: "Dạ"}, Audio: [][]byte{{9, 0, 9, 0}}}
	session.messages <- Message{Output: &Chunk{Text: " vâng", Final: true}}

	require.Eventually(t, func() bool {
		turns, audio := client.written()
		sent, _ := session.sentAudio()
		return len(turns) == 3 && len(audio) == 1 && len(sent) == 2
	}, waitTimeout, 10*time.Millisecond)

	require.NoError(t, conv.Stop())

	turns, audio := client.written()
	require.Equal(t, []Turn{
		{ID: 1, Speaker: SpeakerUser, Text: "Xe SH", Final: true},
		{ID: 2, Speaker: SpeakerModel, Text: "Dạ"},
		{ID: 2, Speaker: SpeakerModel, Text: "Dạ vâng", Final: true},
	}, turns)
	require.Equal(t, [][]byte{{9, 0, 9, 0}}, audio)

	sent, mime := session.sentAudio()
	require.Equal(t, [][]byte{{0, 0x40}, {1, 0}}, sent)
	require.Equal(t, "audio/pcm;rate=16000", mime)

	require.Equal(t, []string{"session", "client"}, log.list(), "session must be released before client stream")
}

func TestConversationEndsWhenClientStops(t *testing.T) {
	log := &releaseLog{}
	client := newFakeClient(log)
	session := newFakeSession(log)

	conv, err := Start(context.Background(), client, &fakeConnector{session: session})
	require.NoError(t, err)

	close(client.frames)
	waitDone(t, conv)

	require.NoError(t, conv.Err())
	require.Equal(t, []string{"session", "client"}, log.list())
}

func TestConversationEndsOnSessionFailure(t *testing.T) {
	log := &releaseLog{}
	client := newFakeClient(log)
	session := newFakeSession(log)
	session.failWith = errors.New("quota exceeded")

	conv, err := Start(context.Background(), client, &fakeConnector{session: session})
	require.NoError(t, err)

	close(session.messages)
	waitDone(t, conv)

	require.ErrorContains(t, conv.Err(), "quota exceeded")
	require.ElementsMatch(t, []string{"session", "client"}, log.list())
}

func TestConversationStopsOnContextCancel(t *testing.T) {
	log := &releaseLog{}
	ctx, cancel := context.WithCancel(context.Background())

	conv, err := Start(ctx, newFakeClient(log), &fakeConnector{session: newFakeSession(log)})
	require.NoError(t, err)

	cancel()
	waitDone(t, conv)

	require.NoError(t, conv.Err())
	require.Len(t, log.list(), 2)
}

func TestConversationReleasesEverythingWhenSessionCloseFails(t *testing.T) {
	log := &releaseLog{}
	session := newFakeSession(log)
	session.panicky = true

	conv, err := Start(context.Background(), newFakeClient(log), &fakeConnector{session: session})
	require.NoError(t, err)

	err = conv.Stop()
	require.ErrorContains(t, err, "release of inference session panicked")
	require.Equal(t, []string{"session", "client"}, log.list(), "client must be released after failed session release")
}

func TestStartReleasesClientWhenConnectFails(t *testing.T) {
	log := &releaseLog{}

	_, err := Start(context.Background(), newFakeClient(log), &fakeConnector{err: errors.New("unauthorized")})
	require.ErrorContains(t, err, "unauthorized")
	require.Equal(t, []string{"client"}, log.list())
}
