package types

// Origin distinguishes a direct user edit from an AI-applied suggestion
type Origin string

const (
	OriginUI Origin = "ui"
	OriginAI Origin = "ai"
)

// IsValid checks if the origin is valid
func (o Origin) IsValid() bool {
	return o == OriginUI || o == OriginAI
}

// String returns the string representation of the origin
func (o Origin) String() string {
	return string(o)
}

// EventKind is the type of an audit event
type EventKind string

const (
	EventFieldUpdate          EventKind = "field_update"
	EventAISuggestion         EventKind = "ai_suggestion"
	EventValidationCheck      EventKind = "validation_check"
	EventFormSubmit           EventKind = "form_submit"
	EventNaturalLanguageInput EventKind = "natural_language_input"
)

// AllEventKinds returns all valid event kinds
func AllEventKinds() []EventKind {
	return []EventKind{
		EventFieldUpdate,
		EventAISuggestion,
		EventValidationCheck,
		EventFormSubmit,
		EventNaturalLanguageInput,
	}
}

// IsValid checks if the event kind is valid
func (k EventKind) IsValid() bool {
	switch k {
	case EventFieldUpdate,
		EventAISuggestion,
		EventValidationCheck,
		EventFormSubmit,
		EventNaturalLanguageInput:
		return true
	default:
		return false
	}
}

// String returns the string representation of the event kind
func (k EventKind) String() string {
	return string(k)
}

// Speaker identifies the author of a conversation entry
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// String returns the string representation of the speaker
func (s Speaker) String() string {
	return string(s)
}
