package bdd

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Fixture holds the given, when, and then handles of one scenario run.
type Fixture struct {
	// ID identifies the run in debug logs.
	ID uuid.UUID

	given *Given
	when  *When
	then  *Then
	log   *zap.Logger
}

// NewFixture returns a fixture with empty handles. A nil logger logs
// nothing.
func NewFixture(log *zap.Logger) *Fixture {
	if log == nil {
		log = zap.NewNop()
	}
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	log = log.With(zap.Stringer("fixture", id))

	given := newGiven(log)
	when := newWhen(given, log)
	return &Fixture{
		ID:    id,
		given: given,
		when:  when,
		then:  newThen(given, when, log),
		log:   log,
	}
}

func (f *Fixture) Given() *Given { return f.given }

func (f *Fixture) When() *When { return f.when }

func (f *Fixture) Then() *Then { return f.then }

// Spec renders the scenario sentence accumulated so far.
func (f *Fixture) Spec() string { return f.then.Spec() }
