package voice

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const systemInstruction = "You are a friendly and helpful sales assistant for a Honda motorcycle dealership named GIA HÒA 6. " +
	"Be concise and professional. Respond in Vietnamese."

// GeminiConnector opens Gemini live sessions with audio responses and both transcriptions enabled
type GeminiConnector struct {
	client *genai.Client
	model  string
}

// NewGeminiConnector builds connector for live model
func NewGeminiConnector(client *genai.Client, model string) *GeminiConnector {
	return &GeminiConnector{client: client, model: model}
}

func (c *GeminiConnector) Connect(ctx context.Context) (LiveSession, error) {
	session, err := c.client.Live.Connect(ctx, c.model, &genai.LiveConnectConfig{
		ResponseModalities:       []genai.Modality{genai.ModalityAudio},
		InputAudioTranscription:  &genai.AudioTranscriptionConfig{},
		OutputAudioTranscription: &genai.AudioTranscriptionConfig{},
		SystemInstruction:        genai.NewContentFromText(systemInstruction, genai.RoleUser),
	})
	if err != nil {
		return nil, err
	}
	return &geminiSession{session: session}, nil
}

type geminiSession struct {
	session *genai.Session
}

func (s *geminiSession) SendAudio(pcm []byte, mimeType string) error {
	return s.session.SendRealtimeInput(genai.LiveRealtimeInput{
		Audio: &genai.Blob{Data: pcm, MIMEType: mimeType},
	})
}

func (s *geminiSession) Receive() (Message, error) {
	msg, err := s.session.Receive()
	if err != nil {
		return Message{}, err
	}

	var m Message
	sc := msg.ServerContent
	if sc == nil {
		return m, nil
	}

	if tr := sc.InputTranscription; tr != nil {
		m.Input = &Chunk{Text: tr.Text, Final: tr.Finished}
	}

	if tr := sc.OutputTranscription; tr != nil {
		m.Output = &Chunk{Text: tr.Text, Final: tr.Finished}
	}

	if sc.ModelTurn != nil {
		for _, part := range sc.ModelTurn.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				m.Audio = append(m.Audio, part.InlineData.Data)
			}
		}
	}
	return m, nil
}

func (s *geminiSession) Close() error {
	if err := s.session.Close(); err != nil {
		return fmt.Errorf("failed to close live session - %w", err)
	}
	return nil
}
