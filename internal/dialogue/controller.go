// Package dialogue is the call-session controller: it takes one inbound
// telephony event at a time, reconstructs the dialogue state from the event
// and the call record store, runs classification and escalation, and renders
// the next provider markup. No session state lives in process memory between
// events.
package dialogue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/graminseva/asha/internal/classify"
	"github.com/graminseva/asha/internal/lang"
	"github.com/graminseva/asha/internal/referral"
	"github.com/graminseva/asha/internal/storage"
	"github.com/graminseva/asha/internal/twiml"
)

// unknownContext stands in for the previous transcript when a follow-up
// references a call record that cannot be found. A dangling parent reference
// is tolerated, not fatal.
const unknownContext = "Unknown previous symptoms"

// Store is the slice of the call record store the controller needs.
type Store interface {
	AppendCall(storage.CallRecord) (storage.CallRecord, error)
	GetCall(id int64) (storage.CallRecord, error)
	AppendReferral(storage.ReferralRecord) (storage.ReferralRecord, error)
}

// Controller drives the IVR dialogue. It is safe for concurrent use: all
// per-call state lives in the Event and the store.
type Controller struct {
	store      Store
	classifier classify.Classifier
	router     *referral.Router
}

// New builds a Controller.
func New(store Store, classifier classify.Classifier, router *referral.Router) *Controller {
	return &Controller{store: store, classifier: classifier, router: router}
}

// Handle processes one event and always returns well-formed markup. Any
// failure while building the reply, panics included, degrades to the
// renderer's apology-and-hangup fallback: the caller is on a live line and
// must never get a broken response.
func (c *Controller) Handle(ctx context.Context, ev Event) (out []byte) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("dialogue handler panicked", "panic", r, "call_sid", ev.CallSid)
			out = twiml.Fallback(lang.English)
		}
	}()

	markup, err := c.handle(ctx, ev)
	if err != nil {
		slog.Error("dialogue handler failed", "error", err, "call_sid", ev.CallSid, "from", ev.From)
		return twiml.Fallback(lang.Detect(ev.SpeechResult))
	}
	return markup
}

func (c *Controller) handle(ctx context.Context, ev Event) ([]byte, error) {
	switch ev.resolve() {
	case stateEntry:
		return c.handleEntry()
	case stateMenuSelected:
		return c.handleMenu(ev)
	case stateSymptomDigit:
		return c.handleSymptomDigit(ctx, ev)
	case stateSpeech:
		return c.handleSpeech(ctx, ev)
	case stateFollowUp:
		return c.handleFollowUp(ctx, ev)
	default:
		return c.handleInvalid()
	}
}

// handleEntry renders the welcome plus top-level menu and collects one
// digit or a spoken utterance. No call record is written yet; nothing has
// been asked.
func (c *Controller) handleEntry() ([]byte, error) {
	doc := twiml.New()
	sayAll(doc, welcomePrompts)
	return doc.EndGather(twiml.Gather{
		Input:     twiml.InputDigitsOrSpeech,
		Action:    "/voice/gather",
		NumDigits: 1,
		Language:  string(lang.Hindi),
	}).Render()
}

// handleMenu renders the submenu for a top-level selection. Submenus keep
// listening for speech too; a caller who answers in words instead of a
// keypress lands in the free-speech flow.
func (c *Controller) handleMenu(ev Event) ([]byte, error) {
	switch ev.Digits {
	case menuMother, menuChild, menuFever, menuEmergency:
		doc := twiml.New()
		sayAll(doc, submenuPrompts[ev.Digits])
		return doc.EndGather(twiml.Gather{
			Input:     twiml.InputDigitsOrSpeech,
			Action:    "/voice/gather?menu=" + ev.Digits,
			NumDigits: 1,
			Language:  string(lang.Hindi),
		}).Render()
	case menuEnd:
		doc := twiml.New()
		sayAll(doc, goodbyePrompts)
		return doc.EndHangup().Render()
	default:
		return c.handleInvalid()
	}
}

// handleSymptomDigit maps a submenu keypress to its symptom description,
// classifies it, and speaks the advice. Digit flows have no live transfer:
// critical cases get the referral record and a spoken escalation line before
// hangup.
func (c *Controller) handleSymptomDigit(ctx context.Context, ev Event) ([]byte, error) {
	menu, ok := symptomMenus[ev.Menu]
	if !ok {
		return c.handleInvalid()
	}
	opt, ok := menu[ev.Digits]
	if !ok {
		return c.handleInvalid()
	}

	verdict := c.classifier.Classify(ctx, opt.description)
	// 9 is the explicit emergency keypress on every submenu; it escalates
	// even when the classifier disagrees.
	critical := verdict.IsCritical || ev.Digits == digitEmergency

	record := c.persistCall(storage.CallRecord{
		CallerPhone: ev.From,
		Transcript:  "Menu: " + opt.label,
		Advice:      verdict.FullText(),
		IsCritical:  critical,
	})

	doc := twiml.New()
	doc.Say(lang.Detect(verdict.Advice), verdict.Advice)
	if critical {
		c.persistReferral(record, opt.description)
		doc.Pause(1)
		sayAll(doc, escalationPrompts)
	}
	sayAll(doc, goodbyePrompts)
	return doc.EndHangup().Render()
}

// handleSpeech classifies a free-speech utterance. Critical verdicts
// transfer the live call to the chosen center; everything else offers a
// follow-up turn.
func (c *Controller) handleSpeech(ctx context.Context, ev Event) ([]byte, error) {
	locale := lang.Detect(ev.SpeechResult)
	verdict := c.classifier.Classify(ctx, ev.SpeechResult)

	record := c.persistCall(storage.CallRecord{
		CallerPhone: ev.From,
		Transcript:  ev.SpeechResult,
		Advice:      verdict.FullText(),
		IsCritical:  verdict.IsCritical,
	})

	doc := twiml.New()
	doc.Say(locale, verdict.FullText())

	if verdict.IsCritical {
		center := c.persistReferral(record, ev.SpeechResult)
		sayAll(doc, escalationPrompts)
		return doc.EndDial(center.Phone).Render()
	}

	doc.Say(locale, followUpOffer(locale))
	return doc.EndGather(twiml.Gather{
		Input:    twiml.InputSpeech,
		Action:   fmt.Sprintf("/voice/followup?call=%d", record.ID),
		Language: string(locale),
	}).Render()
}

// handleFollowUp looks up the parent call for context and classifies the
// combined text. The new record is tagged with the parent id even when the
// parent has vanished.
func (c *Controller) handleFollowUp(ctx context.Context, ev Event) ([]byte, error) {
	if ev.SpeechResult == "" {
		// Caller had nothing to add.
		doc := twiml.New()
		sayAll(doc, goodbyePrompts)
		return doc.EndHangup().Render()
	}

	previous := unknownContext
	if parent, err := c.store.GetCall(ev.ParentCallID); err == nil {
		previous = parent.Transcript
	} else if err != storage.ErrNotFound {
		slog.Warn("loading parent call failed", "error", err, "parent_call_id", ev.ParentCallID)
	}

	locale := lang.Detect(ev.SpeechResult)
	input := fmt.Sprintf("previous: %s\nfollow-up: %s", previous, ev.SpeechResult)
	verdict := c.classifier.Classify(ctx, input)

	parentID := ev.ParentCallID
	record := c.persistCall(storage.CallRecord{
		CallerPhone:  ev.From,
		Transcript:   "[FOLLOW-UP] " + ev.SpeechResult,
		Advice:       verdict.FullText(),
		IsCritical:   verdict.IsCritical,
		ParentCallID: &parentID,
	})

	doc := twiml.New()
	doc.Say(locale, verdict.FullText())

	if verdict.IsCritical {
		center := c.persistReferral(record, ev.SpeechResult)
		sayAll(doc, escalationPrompts)
		return doc.EndDial(center.Phone).Render()
	}

	sayAll(doc, goodbyePrompts)
	return doc.EndHangup().Render()
}

func (c *Controller) handleInvalid() ([]byte, error) {
	doc := twiml.New()
	sayAll(doc, invalidPrompts)
	return doc.EndHangup().Render()
}

// persistCall appends a call record. A storage failure is logged and the
// zero-id record returned: the caller must not be penalized for a logging
// problem, but the data-loss risk is surfaced to operators.
func (c *Controller) persistCall(rec storage.CallRecord) storage.CallRecord {
	saved, err := c.store.AppendCall(rec)
	if err != nil {
		slog.Error("appending call record failed, response still rendered", "error", err, "caller", rec.CallerPhone)
		return rec
	}
	return saved
}

// persistReferral picks a center and appends the referral for a critical
// call. Same failure policy as persistCall.
func (c *Controller) persistReferral(call storage.CallRecord, symptoms string) referral.HealthcareCenter {
	center := c.router.PickCenter()
	_, err := c.store.AppendReferral(storage.ReferralRecord{
		CallID:             call.ID,
		PatientPhone:       call.CallerPhone,
		SymptomsSummary:    symptoms,
		ReferredToHospital: center.Name,
		HospitalPhone:      center.Phone,
		SeverityLevel:      "Emergency",
	})
	if err != nil {
		slog.Error("appending referral failed", "error", err, "call_id", call.ID)
	}
	return center
}

func sayAll(doc *twiml.Document, prompts []menuPrompt) {
	for _, p := range prompts {
		doc.Say(lang.Hindi, p.hi)
		doc.Say(lang.English, p.en)
	}
}

func followUpOffer(locale lang.Locale) string {
	if locale == lang.Hindi {
		return "Agar aapko aur kuch poochna hai to beep ke baad boliye, warna call kat jayega."
	}
	return "If you have a follow-up question, please speak after the beep, otherwise the call will end."
}
