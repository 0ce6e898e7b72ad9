package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/buildnotice/pkg/domain/interfaces"
	"github.com/secmon-lab/buildnotice/pkg/domain/model"
	"github.com/secmon-lab/buildnotice/pkg/domain/types"
	"github.com/secmon-lab/buildnotice/pkg/service/extractor"
	"github.com/secmon-lab/buildnotice/pkg/utils/logging"
)

const noFieldsReply = "I couldn't find any build notice fields in that message."

// Session coordinates one build notice form: the notice itself, its
// validation results, the assist conversation and the audit event log.
//
// A Session has a single owner. It performs no locking; share it across
// goroutines only through a SessionStore. Accessors return copies.
type Session struct {
	extractor interfaces.Extractor
	catalog   *model.ProjectCatalog
	now       func() time.Time
	newID     func() model.BuildNoticeID

	notice       *model.BuildNotice
	validation   model.ValidationMap
	conversation []model.ConversationEntry
	events       []model.Event
	suggestions  model.SuggestionSet
	processing   bool
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithSessionExtractor sets the natural language extractor
func WithSessionExtractor(x interfaces.Extractor) SessionOption {
	return func(s *Session) {
		s.extractor = x
	}
}

// WithSessionCatalog sets the project auto-fill table
func WithSessionCatalog(catalog *model.ProjectCatalog) SessionOption {
	return func(s *Session) {
		s.catalog = catalog
	}
}

// WithSessionClock sets the time source for timestamps
func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		s.now = now
	}
}

// WithSessionIDGenerator sets how build notice identifiers are minted
func WithSessionIDGenerator(newID func() model.BuildNoticeID) SessionOption {
	return func(s *Session) {
		s.newID = newID
	}
}

// NewSession creates a session holding a freshly defaulted notice
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		extractor: extractor.Pattern{},
		catalog:   model.DefaultProjectCatalog(),
		now:       time.Now,
		newID:     model.NewBuildNoticeID,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.reset()
	return s
}

func (s *Session) reset() {
	s.notice = model.NewBuildNotice(s.newID(), s.now())
	s.validation = make(model.ValidationMap)
	s.conversation = nil
	s.events = nil
	s.suggestions = make(model.SuggestionSet)
	s.processing = false
}

// UpdateField writes one field and revalidates it. Selecting a known project
// fills model and customer in the same update. Only undeclared or read-only
// fields are rejected, and then nothing changes.
func (s *Session) UpdateField(field types.FieldID, value any, origin types.Origin) (model.ValidationResult, error) {
	if origin == "" {
		origin = types.OriginUI
	}
	if !origin.IsValid() {
		return model.ValidationResult{}, goerr.Wrap(ErrInvalidOrigin, "cannot update field",
			goerr.V(OriginKey, origin),
			goerr.V(model.FieldIDKey, field))
	}
	if err := s.notice.Set(field, value); err != nil {
		return model.ValidationResult{}, goerr.Wrap(err, "cannot update field")
	}

	if field == types.FieldProject {
		s.autoFillProject()
	}
	s.notice.UpdatedAt = s.now()
	result := s.revalidate(field)

	s.appendEvent(model.Event{
		Kind:   types.EventFieldUpdate,
		Field:  &field,
		Value:  model.CloneValue(value),
		Origin: origin,
	})
	return result, nil
}

func (s *Session) autoFillProject() {
	info, ok := s.catalog.Lookup(s.notice.Project)
	if !ok {
		return
	}
	s.notice.Model = info.Model
	s.notice.Customer = info.Customer
	s.revalidate(types.FieldModel)
	s.revalidate(types.FieldCustomer)
}

func (s *Session) revalidate(field types.FieldID) model.ValidationResult {
	v, _ := s.notice.Get(field)
	result := model.ValidateField(field, v)
	s.validation[field] = result
	return result
}

// ProcessNaturalLanguage runs the extractor over text and records the
// exchange. The returned suggestions are kept pending and not applied. The
// extractor may block; cancelling ctx aborts with an error and leaves only
// the user's message in the conversation.
func (s *Session) ProcessNaturalLanguage(ctx context.Context, text string) (model.SuggestionSet, error) {
	logger := logging.From(ctx)

	s.appendConversation(types.SpeakerUser, text)

	s.processing = true
	suggestions, err := s.extractor.Extract(ctx, text)
	s.processing = false
	if err != nil {
		return nil, goerr.Wrap(err, "failed to extract fields")
	}
	suggestions = suggestions.Sanitize()
	s.suggestions = suggestions.Clone()

	fields := suggestions.Fields()
	s.appendConversation(types.SpeakerAssistant, summarize(fields))
	s.appendEvent(model.Event{
		Kind:   types.EventNaturalLanguageInput,
		Value:  text,
		Origin: types.OriginAI,
	})

	logger.Debug("natural language processed",
		"notice_id", s.notice.ID,
		"extracted", len(fields),
	)
	return suggestions, nil
}

func summarize(fields []types.FieldID) string {
	if len(fields) == 0 {
		return noFieldsReply
	}
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.String()
	}
	return "I've extracted the following information: " + strings.Join(names, ", ")
}

// ApplySuggestions writes every suggested field with origin ai, clears the
// pending suggestions and returns the validation result of each applied field.
// Undeclared and read-only keys are dropped.
func (s *Session) ApplySuggestions(set model.SuggestionSet) model.ValidationMap {
	set = set.Sanitize()
	applied := make(model.ValidationMap, len(set))
	for _, f := range set.Fields() {
		result, err := s.UpdateField(f, set[f], types.OriginAI)
		if err != nil {
			logging.Default().Warn("suggestion skipped", "field", f, "error", err.Error())
			continue
		}
		applied[f] = result
	}

	s.suggestions = make(model.SuggestionSet)
	s.appendEvent(model.Event{
		Kind:   types.EventAISuggestion,
		Value:  set.Clone(),
		Origin: types.OriginAI,
	})
	return applied
}

// ValidateAll replaces the validation results with a check of every required field
func (s *Session) ValidateAll() model.ValidationMap {
	s.validation = model.ValidateForm(s.notice)
	s.appendEvent(model.Event{
		Kind:   types.EventValidationCheck,
		Value:  s.validation.Clone(),
		Origin: types.OriginUI,
	})
	return s.validation.Clone()
}

// SubmitForm validates the notice and, when it passes, marks it submitted.
// A failed submission changes nothing but the validation results.
func (s *Session) SubmitForm() model.SubmitResult {
	validation := s.ValidateAll()
	if !validation.IsValid() {
		return model.SubmitResult{Success: false, Errors: validation}
	}

	s.notice.Status = types.StatusSubmitted
	s.notice.UpdatedAt = s.now()
	snapshot := s.notice.Clone()

	s.appendEvent(model.Event{
		Kind:   types.EventFormSubmit,
		Value:  snapshot.Clone(),
		Origin: types.OriginUI,
	})
	return model.SubmitResult{Success: true, Notice: snapshot}
}

// ResetForm discards all session state and starts a new notice with a new identifier
func (s *Session) ResetForm() {
	s.reset()
}

// Notice returns a copy of the current form state
func (s *Session) Notice() *model.BuildNotice {
	return s.notice.Clone()
}

// Validation returns a copy of the validation results
func (s *Session) Validation() model.ValidationMap {
	return s.validation.Clone()
}

// Conversation returns a copy of the assist conversation
func (s *Session) Conversation() []model.ConversationEntry {
	out := make([]model.ConversationEntry, len(s.conversation))
	copy(out, s.conversation)
	return out
}

// Events returns a copy of the audit log
func (s *Session) Events() []model.Event {
	out := make([]model.Event, len(s.events))
	for i, e := range s.events {
		e.Value = model.CloneValue(e.Value)
		out[i] = e
	}
	return out
}

// Suggestions returns a copy of the pending suggestions
func (s *Session) Suggestions() model.SuggestionSet {
	return s.suggestions.Clone()
}

// Processing reports whether an extraction is in flight
func (s *Session) Processing() bool {
	return s.processing
}

func (s *Session) appendConversation(speaker types.Speaker, text string) {
	s.conversation = append(s.conversation, model.ConversationEntry{
		Speaker:   speaker,
		Text:      text,
		Timestamp: s.now(),
	})
}

func (s *Session) appendEvent(e model.Event) {
	e.Timestamp = s.now()
	s.events = append(s.events, e)
}
