// Package twiml builds the provider markup returned to telephony webhooks.
// Every rendered document carries an ordered list of spoken prompts followed
// by exactly one terminal action (gather input, transfer, or hang up); the
// builder makes a terminal-less document unrepresentable at render time,
// because the provider rejects malformed markup while the caller is live.
package twiml

import (
	"encoding/xml"
	"errors"
	"fmt"

	"github.com/graminseva/asha/internal/lang"
)

// ErrNoTerminal reports a document rendered without a terminal action. This
// is a programming defect, not a runtime condition to recover from.
var ErrNoTerminal = errors.New("twiml: document has no terminal action")

// Say is a spoken prompt with a locale-matched TTS voice.
type Say struct {
	XMLName  xml.Name `xml:"Say"`
	Voice    string   `xml:"voice,attr"`
	Language string   `xml:"language,attr"`
	Text     string   `xml:",chardata"`
}

// Pause inserts a silent gap between prompts.
type Pause struct {
	XMLName xml.Name `xml:"Pause"`
	Length  int      `xml:"length,attr"`
}

// Gather collects one DTMF keypress or speech utterance and re-enters the
// controller at Action. ActionOnEmptyResult makes the provider post back on
// input timeout too; without it the call falls past the gather and ends in
// silence.
type Gather struct {
	XMLName             xml.Name `xml:"Gather"`
	Input               string   `xml:"input,attr"`
	Action              string   `xml:"action,attr"`
	Method              string   `xml:"method,attr"`
	Timeout             int      `xml:"timeout,attr"`
	NumDigits           int      `xml:"numDigits,attr,omitempty"`
	Language            string   `xml:"language,attr,omitempty"`
	ActionOnEmptyResult bool     `xml:"actionOnEmptyResult,attr,omitempty"`
	Prompts             []any
}

// Dial transfers the call to a phone number.
type Dial struct {
	XMLName xml.Name `xml:"Dial"`
	Number  string   `xml:",chardata"`
}

// Hangup ends the call.
type Hangup struct {
	XMLName xml.Name `xml:"Hangup"`
}

// Input kinds for Gather.
const (
	InputDigits         = "dtmf"
	InputSpeech         = "speech"
	InputDigitsOrSpeech = "dtmf speech"
)

// voiceFor maps a locale to the TTS voice used for prompts in it.
func voiceFor(locale lang.Locale) string {
	if locale == lang.Hindi {
		return "Polly.Aditi"
	}
	return "alice"
}

// NewSay builds a prompt in the given locale.
func NewSay(locale lang.Locale, text string) Say {
	return Say{Voice: voiceFor(locale), Language: string(locale), Text: text}
}

// Document accumulates prompts and exactly one terminal action.
type Document struct {
	prompts  []any
	terminal any
}

// New returns an empty document.
func New() *Document {
	return &Document{}
}

// Say appends a spoken prompt.
func (d *Document) Say(locale lang.Locale, text string) *Document {
	d.prompts = append(d.prompts, NewSay(locale, text))
	return d
}

// Pause appends a silence of the given seconds.
func (d *Document) Pause(seconds int) *Document {
	d.prompts = append(d.prompts, Pause{Length: seconds})
	return d
}

// EndGather sets the terminal action to input collection. Prompts queued so
// far are nested inside the gather so the caller can interrupt them by
// answering early. The timeout callback is always requested: a caller who
// stays silent must reach the controller again, not dead air.
func (d *Document) EndGather(g Gather) *Document {
	if g.Method == "" {
		g.Method = "POST"
	}
	if g.Timeout == 0 {
		g.Timeout = 10
	}
	g.ActionOnEmptyResult = true
	g.Prompts = d.prompts
	d.prompts = nil
	d.terminal = g
	return d
}

// EndDial sets the terminal action to a transfer.
func (d *Document) EndDial(number string) *Document {
	d.terminal = Dial{Number: number}
	return d
}

// EndHangup sets the terminal action to ending the call.
func (d *Document) EndHangup() *Document {
	d.terminal = Hangup{}
	return d
}

// response is the marshaling shape of a complete document.
type response struct {
	XMLName xml.Name `xml:"Response"`
	Verbs   []any
}

// Render produces the markup. It fails with ErrNoTerminal when no terminal
// action was set; callers treat that as a defect and substitute Fallback.
func (d *Document) Render() ([]byte, error) {
	if d.terminal == nil {
		return nil, ErrNoTerminal
	}
	verbs := append(append([]any{}, d.prompts...), d.terminal)
	body, err := xml.Marshal(response{Verbs: verbs})
	if err != nil {
		return nil, fmt.Errorf("marshaling twiml: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}

// Fallback is the guaranteed-safe response: one apology line and a polite
// hangup. Rendering it cannot fail, so it is usable from error boundaries.
func Fallback(locale lang.Locale) []byte {
	text := "Sorry, a system error occurred. Please call back later."
	if locale == lang.Hindi {
		text = "Maaf kijiye, system mein samasya aa gayi hai. Kripya baad mein phir call karein."
	}
	out, err := New().Say(locale, text).EndHangup().Render()
	if err != nil {
		// Unreachable: the document above always has a terminal.
		return []byte(xml.Header + "<Response><Hangup></Hangup></Response>")
	}
	return out
}
