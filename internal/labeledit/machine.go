// Package labeledit implements inline label editing for deals and cashflows.
//
// Each entity is either displaying its label or editing it. Begin opens an
// editor pre-filled with the current label and hides the reference name.
// Commit persists trimmed non-empty text and otherwise reverts. Cancel always
// reverts. Both exits show the reference name again.
package labeledit

import (
	"strings"

	"dealcanvas/internal/events"
	"dealcanvas/internal/models"
)

// State is the editing state of one entity.
type State string

const (
	StateDisplay State = "display"
	StateEditing State = "editing"
)

// Labels is the subset of the entity store the machine needs.
type Labels interface {
	EntityLabel(ref models.EntityRef) (string, bool)
	SetEntityLabel(ref models.EntityRef, label string) bool
	SetEntityEditing(ref models.EntityRef, editing bool) bool
	ReferenceVisible(ref models.EntityRef) (bool, bool)
}

type session struct {
	original string
}

// Machine tracks open label editors. It is not safe for concurrent use.
type Machine struct {
	labels   Labels
	sessions map[models.EntityRef]session
	sink     events.Sink
}

// New creates a machine over labels. sink may be nil.
func New(labels Labels, sink events.Sink) *Machine {
	return &Machine{
		labels:   labels,
		sessions: make(map[models.EntityRef]session),
		sink:     sink,
	}
}

// Begin opens the editor for ref and returns the draft text. Beginning on an
// entity that is already editing returns the existing draft.
func (m *Machine) Begin(ref models.EntityRef) (string, bool) {
	if sess, ok := m.sessions[ref]; ok {
		return sess.original, true
	}
	label, ok := m.labels.EntityLabel(ref)
	if !ok {
		return "", false
	}
	m.sessions[ref] = session{original: label}
	m.labels.SetEntityEditing(ref, true)
	m.emit(ref, true, label)
	return label, true
}

// Commit closes the editor. Non-blank text becomes the new label; blank text
// restores the label captured at Begin. It returns the resulting label.
func (m *Machine) Commit(ref models.EntityRef, text string) (string, bool) {
	sess, ok := m.end(ref)
	if !ok {
		return "", false
	}
	label := strings.TrimSpace(text)
	if label == "" {
		label = sess.original
	}
	m.labels.SetEntityLabel(ref, label)
	m.emit(ref, false, label)
	return label, true
}

// Cancel closes the editor and restores the label captured at Begin.
func (m *Machine) Cancel(ref models.EntityRef) (string, bool) {
	sess, ok := m.end(ref)
	if !ok {
		return "", false
	}
	m.labels.SetEntityLabel(ref, sess.original)
	m.emit(ref, false, sess.original)
	return sess.original, true
}

// State reports whether ref is being edited.
func (m *Machine) State(ref models.EntityRef) State {
	if m.Editing(ref) {
		return StateEditing
	}
	return StateDisplay
}

// Editing reports whether an editor is open for ref.
func (m *Machine) Editing(ref models.EntityRef) bool {
	_, ok := m.sessions[ref]
	return ok
}

// Discard drops the session of an entity that no longer exists.
func (m *Machine) Discard(ref models.EntityRef) {
	delete(m.sessions, ref)
}

// Prune drops every session whose entity no longer exists and returns how
// many were dropped.
func (m *Machine) Prune() int {
	n := 0
	for ref := range m.sessions {
		if _, ok := m.labels.EntityLabel(ref); !ok {
			delete(m.sessions, ref)
			n++
		}
	}
	return n
}

// end removes the session for ref. A session whose entity has disappeared is
// discarded and reported as absent.
func (m *Machine) end(ref models.EntityRef) (session, bool) {
	sess, ok := m.sessions[ref]
	if !ok {
		return session{}, false
	}
	delete(m.sessions, ref)
	if !m.labels.SetEntityEditing(ref, false) {
		return session{}, false
	}
	return sess, true
}

func (m *Machine) emit(ref models.EntityRef, editing bool, label string) {
	visible, _ := m.labels.ReferenceVisible(ref)
	m.sink.Emit(&events.LabelEditChangedData{
		Entity:           ref,
		Editing:          editing,
		Label:            label,
		ReferenceVisible: visible,
	})
}
