package sjparser

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

/*
tokenizer is a table-driven pushdown automaton, ported from mcvoid-json's
parser.go (itself a Go port of Doug Crockford's json-c state machine).
The character-class/state/action tables and the mode stack are unchanged;
only the actions are rewritten to emit SAX Events to a sink instead of
building a *Value tree, and the driver is split into incremental
Write/Close calls instead of one blocking Parse(io.Reader) call, so that a
caller can feed bytes as they arrive off a socket or file (spec.md §4.1
"incremental").
*/

// tokenizerModeDepth bounds the tokenizer's own brace/bracket matching
// stack. It exists purely as a safety valve against unbounded memory
// growth on adversarial input; the schema-level nesting limit enforced by
// the dispatcher (spec.md §5, DepthExceeded) is a separate, much smaller,
// user-configurable bound.
const tokenizerModeDepth = 1 << 20

type charClass int8

const (
	charSpace charClass = iota
	charLF___
	charWhite
	charLCurB
	charRCurB
	charLSqrB
	charRSqrB
	charColon
	charComma
	charQuote
	charBacks
	charSlash
	charStar_
	charPlus_
	charMinus
	charPoint
	charZero_
	charDigit
	charLow_A
	charLow_B
	charLow_C
	charLow_D
	charLow_E
	charLow_F
	charLow_L
	charLow_N
	charLow_R
	charLow_S
	charLow_T
	charLow_U
	charABCDF
	charCap_E
	charEtc__
	charEof__
	numClasses
	_________ = -1
)

type tokState int8

const (
	sr tokState = iota
	ok
	ob
	ke
	co
	tc
	va
	ar
	st
	ec
	u1
	u2
	u3
	u4
	mi
	ze
	in
	fr
	fs
	e1
	e2
	e3
	t1
	t2
	t3
	f1
	f2
	f3
	f4
	n1
	n2
	n3
	c1
	c2
	c3
	c4
	numStates
)

const (
	__ tokState = -1 - iota
	ek
	ep
	es
	sa
	so
	ea
	aa
	eo
	ee
	ab
	an
	ai
	as
	sc
	ce
	cc
)

type tokMode int8

const (
	modeArray tokMode = iota
	modeDone
	modeKey
	modeObject
)

var asciiClasses = [129]charClass{
	_________, _________, _________, _________, _________, _________, _________, _________,
	_________, charWhite, charLF___, _________, _________, charWhite, _________, _________,
	_________, _________, _________, _________, _________, _________, _________, _________,
	_________, _________, _________, _________, _________, _________, _________, _________,

	charSpace, charEtc__, charQuote, charEtc__, charEtc__, charEtc__, charEtc__, charEtc__,
	charEtc__, charEtc__, charStar_, charPlus_, charComma, charMinus, charPoint, charSlash,
	charZero_, charDigit, charDigit, charDigit, charDigit, charDigit, charDigit, charDigit,
	charDigit, charDigit, charColon, charEtc__, charEtc__, charEtc__, charEtc__, charEtc__,

	charEtc__, charABCDF, charABCDF, charABCDF, charABCDF, charCap_E, charABCDF, charEtc__,
	charEtc__, charEtc__, charEtc__, charEtc__, charEtc__, charEtc__, charEtc__, charEtc__,
	charEtc__, charEtc__, charEtc__, charEtc__, charEtc__, charEtc__, charEtc__, charEtc__,
	charEtc__, charEtc__, charEtc__, charLSqrB, charBacks, charRSqrB, charEtc__, charEtc__,

	charEtc__, charLow_A, charLow_B, charLow_C, charLow_D, charLow_E, charLow_F, charEtc__,
	charEtc__, charEtc__, charEtc__, charEtc__, charLow_L, charEtc__, charLow_N, charEtc__,
	charEtc__, charEtc__, charLow_R, charLow_S, charLow_T, charLow_U, charEtc__, charEtc__,
	charEtc__, charEtc__, charEtc__, charLCurB, charEtc__, charRCurB, charEtc__, charEtc__,
	charEof__,
}

var stateTransitionTable = [numStates][numClasses]tokState{
	/* start  sr*/ {sr, sr, sr, so, __, sa, __, __, __, st, __, sc, __, __, mi, __, ze, in, __, __, __, __, __, f1, __, n1, __, __, t1, __, __, __, __, __},
	/* ok     ok*/ {ok, ok, ok, __, eo, __, ea, __, ep, __, __, sc, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, ok},
	/* object ob*/ {ob, ob, ob, __, ee, __, __, __, __, st, __, sc, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __},
	/* key    ke*/ {ke, ke, ke, __, ee, __, __, __, __, st, __, sc, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __},
	/* colon  co*/ {co, co, co, __, __, __, __, ek, __, __, __, sc, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __},
	/* comma  tc*/ {tc, tc, tc, so, __, sa, aa, __, __, st, __, sc, __, __, mi, __, ze, in, __, __, __, __, __, f1, __, n1, __, __, t1, __, __, __, __, __},
	/* value  va*/ {va, va, va, so, __, sa, __, __, __, st, __, sc, __, __, mi, __, ze, in, __, __, __, __, __, f1, __, n1, __, __, t1, __, __, __, __, __},
	/* array  ar*/ {ar, ar, ar, so, __, sa, aa, __, __, st, __, sc, __, __, mi, __, ze, in, __, __, __, __, __, f1, __, n1, __, __, t1, __, __, __, __, __},
	/* string st*/ {st, __, __, st, st, st, st, st, st, es, ec, st, st, st, st, st, st, st, st, st, st, st, st, st, st, st, st, st, st, st, st, st, st, __},
	/* escape ec*/ {__, __, __, __, __, __, __, __, __, st, st, st, __, __, __, __, __, __, __, st, __, __, __, st, __, st, st, __, st, u1, __, __, __, __},
	/* u1     u1*/ {__, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, u2, u2, u2, u2, u2, u2, u2, u2, __, __, __, __, __, __, u2, u2, __, __},
	/* u2     u2*/ {__, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, u3, u3, u3, u3, u3, u3, u3, u3, __, __, __, __, __, __, u3, u3, __, __},
	/* u3     u3*/ {__, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, u4, u4, u4, u4, u4, u4, u4, u4, __, __, __, __, __, __, u4, u4, __, __},
	/* u4     u4*/ {__, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, st, st, st, st, st, st, st, st, __, __, __, __, __, __, st, st, __, __},
	/* minus  mi*/ {__, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, ze, in, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __},
	/* zero   ze*/ {ok, ok, ok, __, eo, __, ea, __, ep, __, __, sc, __, __, __, fr, __, __, __, __, __, __, e1, __, __, __, __, __, __, __, __, e1, __, ok},
	/* int    in*/ {ok, ok, ok, __, eo, __, ea, __, ep, __, __, sc, __, __, __, fr, in, in, __, __, __, __, e1, __, __, __, __, __, __, __, __, e1, __, ok},
	/* frac   fr*/ {__, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, fs, fs, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __},
	/* fracs  fs*/ {ok, ok, ok, __, eo, __, ea, __, ep, __, __, sc, __, __, __, __, fs, fs, __, __, __, __, e1, __, __, __, __, __, __, __, __, e1, __, ok},
	/* e      e1*/ {__, __, __, __, __, __, __, __, __, __, __, __, __, e2, e2, __, e3, e3, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __},
	/* ex     e2*/ {__, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, e3, e3, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __},
	/* exp    e3*/ {ok, ok, ok, __, eo, __, ea, __, ep, __, __, sc, __, __, __, __, e3, e3, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, ok},
	/* tr     t1*/ {__, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, t2, __, __, __, __, __, __, __},
	/* tru    t2*/ {__, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, t3, __, __, __, __},
	/* true   t3*/ {__, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, ok, __, __, __, __, __, __, __, __, __, __, __},
	/* fa     f1*/ {__, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, f2, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __},
	/* fal    f2*/ {__, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, f3, __, __, __, __, __, __, __, __, __},
	/* fals   f3*/ {__, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, f4, __, __, __, __, __, __},
	/* false  f4*/ {__, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, ok, __, __, __, __, __, __, __, __, __, __, __},
	/* nu     n1*/ {__, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, n2, __, __, __, __},
	/* nul    n2*/ {__, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, n3, __, __, __, __, __, __, __, __, __},
	/* null   n3*/ {__, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, ok, __, __, __, __, __, __, __, __, __},
	/* /      c1*/ {__, __, __, __, __, __, __, __, __, __, __, c2, c3, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __, __},
	/* // \n  c2*/ {c2, ce, c2, c2, c2, c2, c2, c2, c2, c2, c2, c2, c2, c2, c2, c2, c2, c2, c2, c2, c2, c2, c2, c2, c2, c2, c2, c2, c2, c2, c2, c2, c2, cc},
	/* /* *   c3*/ {c3, c3, c3, c3, c3, c3, c3, c3, c3, c3, c3, c3, c4, c3, c3, c3, c3, c3, c3, c3, c3, c3, c3, c3, c3, c3, c3, c3, c3, c3, c3, c3, c3, __},
	/* /* * / c4*/ {c3, c3, c3, c3, c3, c3, c3, c3, c3, c3, c3, ce, c4, c3, c3, c3, c3, c3, c3, c3, c3, c3, c3, c3, c3, c3, c3, c3, c3, c3, c3, c3, c3, __},
}

// eventSink receives every SAX event the tokenizer produces, in input
// order (spec.md §4.3 "Ordering guarantee").
type eventSink func(Event) error

type tokenizer struct {
	sink eventSink

	state     tokState
	modeTop   int
	modeStack []tokMode
	buffer    string
	pos       int

	pending []byte // leftover bytes of a not-yet-complete UTF-8 rune
	closed  bool
}

func newTokenizer(sink eventSink) *tokenizer {
	t := &tokenizer{
		sink:      sink,
		state:     sr,
		modeTop:   -1,
		modeStack: make([]tokMode, 0, 16),
	}
	t.pushMode(modeDone)
	return t
}

func (t *tokenizer) pushMode(m tokMode) error {
	if len(t.modeStack) >= tokenizerModeDepth {
		return parseErr(t.pos, "", ErrTokenizer, "nested JSON exceeds internal safety limit at byte %d", t.pos)
	}
	t.modeStack = append(t.modeStack, m)
	t.modeTop = len(t.modeStack) - 1
	return nil
}

func (t *tokenizer) popMode(m tokMode) error {
	if t.modeTop < 0 || t.modeStack[t.modeTop] != m {
		return parseErr(t.pos, "", ErrTokenizer, "unmatched closing brace at byte %d", t.pos)
	}
	t.modeStack = t.modeStack[:t.modeTop]
	t.modeTop--
	return nil
}

func (t *tokenizer) peekMode() tokMode {
	return t.modeStack[t.modeTop]
}

func (t *tokenizer) reject() error {
	return parseErr(t.pos, "", ErrTokenizer, "invalid character reached at byte %d", t.pos)
}

func (t *tokenizer) emit(e Event) error {
	e.Offset = t.pos
	return t.sink(e)
}

// terminateLiterals closes a number literal that ends without passing
// through the "ok" state (i.e. right before a comma or a closing
// brace/bracket).
func (t *tokenizer) terminateLiterals() error {
	switch t.state {
	case ze, in:
		val, err := strconv.ParseInt(t.buffer, 10, 64)
		if err != nil {
			err = t.emitDouble()
			t.buffer = ""
			return err
		}
		t.buffer = ""
		return t.emit(Event{Kind: Int, Int: val})
	case fs, e3:
		val, _ := strconv.ParseFloat(t.buffer, 64)
		t.buffer = ""
		return t.emit(Event{Kind: Double, Double: val})
	}
	return nil
}

func (t *tokenizer) emitDouble() error {
	val, _ := strconv.ParseFloat(t.buffer, 64)
	return t.emit(Event{Kind: Double, Double: val})
}

func (t *tokenizer) consumeRune(r rune, isEOF bool) error {
	var nextClass charClass
	switch {
	case isEOF:
		nextClass = charEof__
	case r >= 128:
		nextClass = charEtc__
	default:
		nextClass = asciiClasses[r]
	}

	if nextClass == _________ {
		return t.reject()
	}

	nextState := stateTransitionTable[t.state][nextClass]
	if nextState >= 0 {
		switch nextState {
		case t1, t2, t3, f1, f2, f3, f4, mi, ze, in, fr, fs, e1, e2, e3, st, ec, u1, u2, u3, u4:
			t.buffer += string(r)
		case ok:
			switch t.state {
			case n3:
				t.buffer = ""
				if err := t.emit(Event{Kind: Null}); err != nil {
					return err
				}
			case f4, t3:
				t.buffer += string(r)
				val, _ := strconv.ParseBool(t.buffer)
				t.buffer = ""
				if err := t.emit(Event{Kind: Bool, Bool: val}); err != nil {
					return err
				}
			case ze, in:
				val, err := strconv.ParseInt(t.buffer, 10, 64)
				if err != nil {
					err = t.emitDouble()
					t.buffer = ""
					if err != nil {
						return err
					}
				} else {
					t.buffer = ""
					if err := t.emit(Event{Kind: Int, Int: val}); err != nil {
						return err
					}
				}
			case fs, e3:
				val, _ := strconv.ParseFloat(t.buffer, 64)
				t.buffer = ""
				if err := t.emit(Event{Kind: Double, Double: val}); err != nil {
					return err
				}
			}
		}
		t.state = nextState
		return nil
	}

	switch nextState {
	case ee:
		if err := t.popMode(modeKey); err != nil {
			return err
		}
		if err := t.emit(Event{Kind: MapEnd}); err != nil {
			return err
		}
		t.state = ok

	case eo:
		if err := t.popMode(modeObject); err != nil {
			return t.reject()
		}
		if err := t.terminateLiterals(); err != nil {
			return err
		}
		if err := t.emit(Event{Kind: MapEnd}); err != nil {
			return err
		}
		t.state = ok

	case aa:
		if err := t.popMode(modeArray); err != nil {
			return err
		}
		if err := t.emit(Event{Kind: ArrayEnd}); err != nil {
			return err
		}
		t.state = ok

	case ea:
		if err := t.popMode(modeArray); err != nil {
			return t.reject()
		}
		if err := t.terminateLiterals(); err != nil {
			return err
		}
		if err := t.emit(Event{Kind: ArrayEnd}); err != nil {
			return err
		}
		t.state = ok

	case so:
		if err := t.pushMode(modeKey); err != nil {
			return err
		}
		if err := t.emit(Event{Kind: MapStart}); err != nil {
			return err
		}
		t.state = ob

	case sa:
		if err := t.pushMode(modeArray); err != nil {
			return err
		}
		if err := t.emit(Event{Kind: ArrayStart}); err != nil {
			return err
		}
		t.state = ar

	case es:
		t.buffer += string(r)
		unquoted, err := strconv.Unquote(strings.Replace(t.buffer, `\/`, `/`, -1))
		t.buffer = ""
		if err != nil {
			return t.reject()
		}
		if t.peekMode() == modeKey {
			if err := t.emit(Event{Kind: MapKey, Str: unquoted}); err != nil {
				return err
			}
			t.state = co
		} else {
			if err := t.emit(Event{Kind: String, Str: unquoted}); err != nil {
				return err
			}
			t.state = ok
		}

	case ep:
		if err := t.terminateLiterals(); err != nil {
			return err
		}
		switch t.peekMode() {
		case modeArray:
			t.state = tc
		case modeObject:
			if err := t.popMode(modeObject); err != nil {
				return err
			}
			if err := t.pushMode(modeKey); err != nil {
				return err
			}
			t.state = ke
		default:
			return t.reject()
		}

	case ek:
		if err := t.popMode(modeKey); err != nil {
			return err
		}
		if err := t.pushMode(modeObject); err != nil {
			return err
		}
		t.state = va

	case sc:
		if err := t.pushMode(tokMode(t.state)); err != nil {
			return err
		}
		t.state = c1

	case ce:
		t.state = tokState(t.peekMode())
		if err := t.popMode(tokMode(t.state)); err != nil {
			return err
		}

	case cc:
		t.state = tokState(t.peekMode())
		if err := t.popMode(tokMode(t.state)); err != nil {
			return err
		}
		return t.consumeRune(r, isEOF)

	default:
		return t.reject()
	}
	return nil
}

// write feeds a chunk of bytes into the tokenizer, buffering any trailing
// incomplete UTF-8 sequence until the next call (spec.md §4.1
// "incremental: a value split across chunk boundaries is buffered
// internally until complete").
func (t *tokenizer) write(p []byte) error {
	if t.closed {
		return parseErr(t.pos, "", ErrTokenizer, "write after close")
	}
	if len(t.pending) > 0 {
		p = append(t.pending, p...)
		t.pending = nil
	}
	for len(p) > 0 {
		r, size := utf8.DecodeRune(p)
		if r == utf8.RuneError && size <= 1 {
			if !utf8.FullRune(p) {
				// Genuinely incomplete trailing sequence: keep it for the
				// next chunk.
				t.pending = append(t.pending[:0], p...)
				return nil
			}
			return parseErr(t.pos, "", ErrTokenizer, "invalid UTF-8 sequence at byte %d", t.pos)
		}
		if err := t.consumeRune(r, false); err != nil {
			return err
		}
		t.pos += size
		p = p[size:]
	}
	return nil
}

// close signals end of input.
func (t *tokenizer) close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	if len(t.pending) > 0 {
		return parseErr(t.pos, "", ErrTokenizer, "truncated UTF-8 sequence at byte %d", t.pos)
	}
	return t.consumeRune(0, true)
}

// atTopLevel reports whether the tokenizer has returned to its initial
// mode (modeDone at the bottom of the stack) — used by the facade to
// validate Finish() is only called once a complete, balanced document has
// been read.
func (t *tokenizer) atTopLevel() bool {
	return len(t.modeStack) == 1 && t.modeStack[0] == modeDone
}

func (t *tokenizer) reset() {
	t.state = sr
	t.modeStack = t.modeStack[:0]
	t.modeTop = -1
	t.buffer = ""
	t.pos = 0
	t.pending = nil
	t.closed = false
	t.pushMode(modeDone)
}
