// Package transcript reconstructs diarized speaker turns from word-level
// speech-to-text output and renders entity-highlighted markup for display.
package transcript

import (
	"strings"
	"unicode"
)

// UnknownSpeaker is substituted when the STT provider omits a speaker ID.
const UnknownSpeaker = "Unknown"

// Word is a single word of the transcript as attributed by the STT provider.
type Word struct {
	Text      string  `json:"text"`
	SpeakerID string  `json:"speaker_id,omitempty"`
	Start     float64 `json:"start,omitempty"`
	End       float64 `json:"end,omitempty"`
	Type      string  `json:"type,omitempty"` // "word", "spacing", "audio_event"
}

// Turn is a contiguous run of words attributed to one speaker.
type Turn struct {
	Speaker string `json:"speaker"` // display label, e.g. "Speaker 0"
	Content string `json:"content"` // space-joined word texts
}

// BuildTurns groups a time-ordered word sequence into speaker turns.
// A turn boundary occurs exactly at each speaker-id change; consecutive words
// with the same speaker coalesce regardless of time gaps. Words without a
// speaker ID are attributed to [UnknownSpeaker]. An empty input yields no turns.
func BuildTurns(words []Word) []Turn {
	var turns []Turn
	current := ""
	started := false
	var buf []string

	for _, w := range words {
		speaker := w.SpeakerID
		if speaker == "" {
			speaker = UnknownSpeaker
		}
		if !started || speaker != current {
			if started {
				turns = append(turns, Turn{
					Speaker: speakerLabel(current),
					Content: strings.Join(buf, " "),
				})
			}
			current = speaker
			started = true
			buf = []string{w.Text}
		} else {
			buf = append(buf, w.Text)
		}
	}
	if started {
		turns = append(turns, Turn{
			Speaker: speakerLabel(current),
			Content: strings.Join(buf, " "),
		})
	}
	return turns
}

// FormatDiarized renders words as a diarized transcript: each turn is
// formatted as "**<Speaker Label>**: <content>" and turns are separated by a
// blank line. An empty word sequence yields an empty string.
func FormatDiarized(words []Word) string {
	turns := BuildTurns(words)
	if len(turns) == 0 {
		return ""
	}
	parts := make([]string, len(turns))
	for i, t := range turns {
		parts[i] = "**" + t.Speaker + "**: " + t.Content
	}
	return strings.Join(parts, "\n\n")
}

// speakerLabel converts a raw speaker ID into a display label: underscores
// become spaces and each word is title-cased ("speaker_0" -> "Speaker 0").
func speakerLabel(id string) string {
	words := strings.Split(strings.ReplaceAll(id, "_", " "), " ")
	for i, w := range words {
		words[i] = titleWord(w)
	}
	return strings.Join(words, " ")
}

func titleWord(w string) string {
	if w == "" {
		return w
	}
	runes := []rune(w)
	runes[0] = unicode.ToUpper(runes[0])
	for i := 1; i < len(runes); i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}
