// Package lang classifies caller input into one of the two locales the
// service speaks, so prompts and TTS voices can be selected per caller.
package lang

import "strings"

// Locale identifies a spoken language supported by the voice service.
type Locale string

const (
	Hindi   Locale = "hi-IN"
	English Locale = "en-IN"
)

// romanizedHindiTokens are common Hindi words as they appear when callers
// type or speech-to-text transcribes them in Latin script.
var romanizedHindiTokens = []string{
	"hai", "mujhe", "mera", "mere", "bacche", "baccha",
	"bukhar", "bukhaar", "ulti", "ulta", "garbh", "garbhvati",
	"saans", "behosh", "jhatke", "khoon", "khansi",
}

// Detect returns the locale of the given text. Text containing any
// Devanagari character is Hindi; otherwise a case-insensitive scan for
// romanized Hindi tokens decides. Empty input defaults to English.
func Detect(text string) Locale {
	if text == "" {
		return English
	}
	for _, r := range text {
		if r >= 0x0900 && r <= 0x097F {
			return Hindi
		}
	}
	lower := strings.ToLower(text)
	for _, tok := range romanizedHindiTokens {
		if strings.Contains(lower, tok) {
			return Hindi
		}
	}
	return English
}
