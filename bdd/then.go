package bdd

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Then starts assertion chains and accumulates their spec text. Every
// Ref or It call starts a fresh spec; And begins a new segment within it.
type Then struct {
	given *Given
	when  *When
	log   *zap.Logger

	tokens  []string
	segment int
	cursor  *It
}

func newThen(given *Given, when *When, log *zap.Logger) *Then {
	return &Then{given: given, when: when, log: log}
}

func (t *Then) begin(label string) {
	t.tokens = nil
	t.segment = 0
	t.when.eval()
	t.tokens = append(t.tokens, label)
	t.log.Debug("then chain started", zap.String("subject", label))
}

// Ref starts an assertion chain on the given binding name. Then names
// refer to given bindings, never to the when result.
func (t *Then) Ref(name string) *It {
	t.begin(name)
	v, ok := t.given.value(name)
	if !ok {
		panic(chainError("then", name, ErrUnknownReference, nil))
	}
	return newIt(t, name, valueResult{v: v})
}

// It starts an assertion chain on the when chain's terminal value.
func (t *Then) It() *It {
	t.begin("it")
	return newIt(t, "it", valueResult{v: t.when.it})
}

// The returns the node the last And was called on.
func (t *Then) The() *It {
	if t.cursor == nil {
		panic(chainError("then", "the", ErrNoCursor, nil))
	}
	return t.cursor
}

// Spec renders the whole scenario sentence: "when <when>, then <then>".
// The when part is omitted when no when chain was evaluated.
func (t *Then) Spec() string {
	then := strings.Join(t.tokens, "")
	if t.when.spec == "" {
		return strings.TrimSpace("then " + then)
	}
	return strings.TrimSpace(fmt.Sprintf("when %s, then %s", t.when.spec, then))
}

// CurrentSpec renders only the tokens since the last And.
func (t *Then) CurrentSpec() string {
	return strings.TrimSpace(strings.Join(t.tokens[t.segment:], ""))
}

func (t *Then) append(parts ...string) {
	t.tokens = append(t.tokens, parts...)
}

func (t *Then) beginSegment(cursor *It) {
	t.segment = len(t.tokens)
	t.cursor = cursor
}
