package tui

// recall walks back through sent messages. Leaving the newest end saves the
// text being typed so walking forward again restores it.
type recall struct {
	past  []string
	pos   int
	draft string
}

func newRecall() *recall { return &recall{} }

// load puts earlier messages ahead of any already sent.
func (r *recall) load(past []string) {
	r.past = append(append([]string{}, past...), r.past...)
	r.reset()
}

// push records a sent message unless it repeats the last one.
func (r *recall) push(text string) {
	if len(r.past) == 0 || r.past[len(r.past)-1] != text {
		r.past = append(r.past, text)
	}
	r.reset()
}

func (r *recall) reset() {
	r.pos = len(r.past)
	r.draft = ""
}

func (r *recall) prev(current string) (string, bool) {
	if r.pos == 0 {
		return "", false
	}
	if r.pos == len(r.past) {
		r.draft = current
	}
	r.pos--
	return r.past[r.pos], true
}

func (r *recall) next() (string, bool) {
	if r.pos >= len(r.past) {
		return "", false
	}
	r.pos++
	if r.pos == len(r.past) {
		return r.draft, true
	}
	return r.past[r.pos], true
}
