package bdd

// grammarWords are the filler words an assertion chain accepts for
// readability. "and" is not among them: And ends a segment.
var grammarWords = map[string]struct{}{
	"to": {}, "be": {}, "been": {}, "is": {}, "that": {}, "which": {},
	"has": {}, "have": {}, "with": {}, "at": {}, "of": {},
	"same": {}, "but": {}, "does": {}, "still": {}, "also": {},
	"should": {}, "value": {},
}

// IsGrammarWord reports whether w is a filler word.
func IsGrammarWord(w string) bool {
	_, ok := grammarWords[w]
	return ok
}

// word appends a filler word to the spec. Fillers never touch the value,
// so they do not raise a deferred error.
func (it *It) word(w string) *It {
	it.then.append(" " + w)
	return it
}

// To appends "to" to the spec and returns it.
func (it *It) To() *It { return it.word("to") }

// Be appends "be" to the spec and returns it.
func (it *It) Be() *It { return it.word("be") }

// Been appends "been" to the spec and returns it.
func (it *It) Been() *It { return it.word("been") }

// Is appends "is" to the spec and returns it.
func (it *It) Is() *It { return it.word("is") }

// That appends "that" to the spec and returns it.
func (it *It) That() *It { return it.word("that") }

// Which appends "which" to the spec and returns it.
func (it *It) Which() *It { return it.word("which") }

// Has appends "has" to the spec and returns it.
func (it *It) Has() *It { return it.word("has") }

// Have appends "have" to the spec and returns it.
func (it *It) Have() *It { return it.word("have") }

// With appends "with" to the spec and returns it.
func (it *It) With() *It { return it.word("with") }

// Of appends "of" to the spec and returns it.
func (it *It) Of() *It { return it.word("of") }

// Same appends "same" to the spec and returns it.
func (it *It) Same() *It { return it.word("same") }

// But appends "but" to the spec and returns it.
func (it *It) But() *It { return it.word("but") }

// Does appends "does" to the spec and returns it.
func (it *It) Does() *It { return it.word("does") }

// Still appends "still" to the spec and returns it.
func (it *It) Still() *It { return it.word("still") }

// Also appends "also" to the spec and returns it.
func (it *It) Also() *It { return it.word("also") }

// Should appends "should" to the spec and returns it.
func (it *It) Should() *It { return it.word("should") }

// Value appends "value" to the spec and returns it.
func (it *It) Value() *It { return it.word("value") }
