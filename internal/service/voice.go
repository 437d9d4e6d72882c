package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dvloznov/wealthwise/internal/pipeline"
)

// VoiceResult pairs the transcript with the processed transaction derived
// from it.
type VoiceResult struct {
	Transcript string           `json:"transcript"`
	Result     *pipeline.Result `json:"result"`
}

// ProcessVoice transcribes a voice recording and runs the transcript through
// the transaction pipeline. The raw audio is archived first when a recorder
// is configured; archiving is best-effort and never blocks processing.
func (s *Service) ProcessVoice(ctx context.Context, userID string, audio []byte, mimeType string) (*VoiceResult, error) {
	if len(audio) == 0 {
		return nil, fmt.Errorf("%w: audio payload is required", ErrInvalidInput)
	}

	if s.recorder != nil {
		if uri, err := s.recorder.Save(ctx, userID, audio, mimeType); err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("Voice recording archive failed")
		} else {
			s.log.Debug().Str("user_id", userID).Str("uri", uri).Msg("Voice recording archived")
		}
	}

	transcript, err := s.transcriber.Transcribe(ctx, audio, mimeType)
	if err != nil {
		return nil, fmt.Errorf("transcribe audio: %w", err)
	}
	if strings.TrimSpace(transcript) == "" {
		return nil, fmt.Errorf("%w: recording contained no speech", ErrInvalidInput)
	}

	result, err := s.ProcessText(ctx, userID, transcript)
	if err != nil {
		return nil, err
	}
	return &VoiceResult{Transcript: transcript, Result: result}, nil
}
