package sjparser

// Parser is the top-level facade (spec.md §4.6, C6): it drives the
// tokenizer and dispatcher, accepts incremental Parse(chunk) and terminal
// Finish() calls, and owns the root node.
type Parser struct {
	root       Node
	tokenizer  *tokenizer
	dispatcher *Dispatcher
	started    bool
	failed     bool
}

// ParserOption configures a Parser at construction time, following the
// functional-options pattern dhamidi-sai's java/parser package uses for
// its own Option type.
type ParserOption func(*parserConfig)

type parserConfig struct {
	maxDepth int
}

// WithMaxDepth overrides the dispatcher's nesting limit (spec.md §5,
// default 128).
func WithMaxDepth(n int) ParserOption {
	return func(c *parserConfig) { c.maxDepth = n }
}

// New builds a Parser driving the given schema root.
func New(root Node, opts ...ParserOption) *Parser {
	cfg := parserConfig{maxDepth: defaultMaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}
	d := NewDispatcher(cfg.maxDepth)
	root.setDispatcher(d)
	p := &Parser{
		root:       root,
		dispatcher: d,
	}
	p.tokenizer = newTokenizer(p.dispatch)
	if err := d.push(root); err != nil {
		// Only reachable if maxDepth is configured to 0 on a non-empty
		// stack, which cannot happen for a fresh dispatcher; kept for
		// defensive symmetry with every other push call site.
		panic(err)
	}
	return p
}

func (p *Parser) dispatch(e Event) error {
	return p.dispatcher.dispatch(e)
}

// Parse feeds a chunk of input bytes. It may be called repeatedly with
// successive chunks of the same document. It fails fast on the first
// error, reporting the byte offset at which it occurred; after an error,
// the Parser must be Reset before Parse may be called again (spec.md §7).
func (p *Parser) Parse(chunk []byte) error {
	if p.failed {
		return parseErr(p.tokenizer.pos, "", ErrUnexpectedToken, "parse called after a previous error; call Reset first")
	}
	p.started = true
	if err := p.tokenizer.write(chunk); err != nil {
		p.failed = true
		return err
	}
	return nil
}

// Finish signals end of input. The dispatcher stack must be empty (the root
// has completed and been popped) and the root must be set, otherwise
// TruncatedInput is returned
// (spec.md §4.6).
func (p *Parser) Finish() error {
	if p.failed {
		return parseErr(p.tokenizer.pos, "", ErrUnexpectedToken, "finish called after a previous error; call Reset first")
	}
	if err := p.tokenizer.close(); err != nil {
		p.failed = true
		return err
	}
	if !p.tokenizer.atTopLevel() || p.dispatcher.depth() != 0 || !p.root.IsSet() {
		p.failed = true
		return parseErr(p.tokenizer.pos, "", ErrTruncatedInput, "input ended with an open structure or no value")
	}
	return nil
}

// Root returns the schema's root node, from which values are read once
// Finish has returned without error.
func (p *Parser) Root() Node {
	return p.root
}

// Reset restarts the Parser, and its whole schema tree, for another
// document (spec.md §4.6, §3 "Lifecycle").
func (p *Parser) Reset() {
	p.started = false
	p.failed = false
	p.tokenizer.reset()
	p.dispatcher.reset()
	p.root.reset()
	p.dispatcher.push(p.root)
}
