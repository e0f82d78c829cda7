package dialogue

// Event is one inbound telephony webhook hit. The provider holds no session
// for us, so everything the controller needs is carried in the event itself
// plus whatever it looks up from the store.
type Event struct {
	CallSid      string
	From         string
	Digits       string
	SpeechResult string
	// Menu is the submenu context echoed back through the gather action
	// URL; empty at the top level.
	Menu string
	// ParentCallID links a follow-up utterance to a prior call record;
	// zero means none.
	ParentCallID int64
}

// state is the conceptual controller state, reconstructed per event.
type state int

const (
	stateEntry state = iota
	stateMenuSelected
	stateSymptomDigit
	stateSpeech
	stateFollowUp
	stateInvalid
)

// resolve maps an event to its controller state. Speech wins over digits:
// when a gather returns both, the utterance carries more information than
// the keypress.
func (e Event) resolve() state {
	switch {
	case e.ParentCallID != 0:
		return stateFollowUp
	case e.SpeechResult != "":
		return stateSpeech
	case e.Digits != "" && e.Menu != "":
		return stateSymptomDigit
	case e.Digits != "":
		return stateMenuSelected
	case e.Menu == "":
		return stateEntry
	default:
		return stateInvalid
	}
}
