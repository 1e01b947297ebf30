package scribe

import (
	"context"
	"time"

	"github.com/legal-discovery/backend/internal/transcript"
)

// DemoClient returns canned transcription data without calling any API.
// It lets the frontend be exercised end to end when no API key is configured.
type DemoClient struct {
	// Delay simulates processing time. Zero means no delay (tests).
	Delay time.Duration
}

func NewDemoClient() *DemoClient {
	return &DemoClient{Delay: 1500 * time.Millisecond}
}

func (c *DemoClient) Name() string {
	return "demo"
}

func (c *DemoClient) Transcribe(ctx context.Context, req Request, updateProgress func(float64)) (*Response, error) {
	if c.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.Delay):
		}
	}
	updateProgress(0.5)

	words := []transcript.Word{
		{Text: "Mr.", SpeakerID: "speaker_0", Start: 0.0, End: 0.4},
		{Text: "John", SpeakerID: "speaker_0", Start: 0.5, End: 0.8},
		{Text: "Smith", SpeakerID: "speaker_0", Start: 0.8, End: 1.2},
		{Text: "specifically", SpeakerID: "speaker_0", Start: 1.3, End: 1.9},
		{Text: "mentioned", SpeakerID: "speaker_0", Start: 1.9, End: 2.4},
		{Text: "the", SpeakerID: "speaker_0", Start: 2.4, End: 2.5},
		{Text: "breach", SpeakerID: "speaker_0", Start: 2.5, End: 2.9},
		{Text: "of", SpeakerID: "speaker_0", Start: 2.9, End: 3.0},
		{Text: "contract", SpeakerID: "speaker_0", Start: 3.0, End: 3.6},
		{Text: "occurring", SpeakerID: "speaker_0", Start: 3.7, End: 4.2},
		{Text: "on", SpeakerID: "speaker_0", Start: 4.2, End: 4.4},
		{Text: "July", SpeakerID: "speaker_0", Start: 4.5, End: 4.9},
		{Text: "15th,", SpeakerID: "speaker_0", Start: 4.9, End: 5.4},
		{Text: "2023.", SpeakerID: "speaker_0", Start: 5.4, End: 5.8},
		{Text: "We", SpeakerID: "speaker_1", Start: 7.0, End: 7.2},
		{Text: "never", SpeakerID: "speaker_1", Start: 7.2, End: 7.6},
		{Text: "agreed", SpeakerID: "speaker_1", Start: 7.6, End: 8.1},
		{Text: "to", SpeakerID: "speaker_1", Start: 8.1, End: 8.2},
		{Text: "those", SpeakerID: "speaker_1", Start: 8.2, End: 8.5},
		{Text: "terms", SpeakerID: "speaker_1", Start: 8.5, End: 8.9},
		{Text: "in", SpeakerID: "speaker_1", Start: 8.9, End: 9.0},
		{Text: "the", SpeakerID: "speaker_1", Start: 9.0, End: 9.1},
		{Text: "initial", SpeakerID: "speaker_1", Start: 9.1, End: 9.6},
		{Text: "MSA.", SpeakerID: "speaker_1", Start: 12.0, End: 12.5},
	}

	updateProgress(0.95)
	return &Response{
		Text: "Mr. John Smith specifically mentioned the breach of contract occurring on July 15th, 2023. " +
			"We never agreed to those terms in the initial MSA.",
		LanguageCode: "en",
		Words:        words,
		Entities: []transcript.Entity{
			{Text: "John Smith", Type: "person", Start: 0.5, End: 1.2},
			{Text: "July 15th, 2023", Type: "date", Start: 4.5, End: 5.8},
			{Text: "MSA", Type: "contract", Start: 12.0, End: 12.5},
		},
	}, nil
}
