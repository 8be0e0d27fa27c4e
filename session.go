package quotecard

import "sync"

// Session holds the card being edited and the per-channel busy flags.
// Edits and export triggers may come from different goroutines.
type Session struct {
	mu       sync.Mutex
	card     Card
	revision uint64
	busy     [channelCount]bool
}

// NewSession creates a session editing card.
func NewSession(card Card) *Session {
	return &Session{card: card}
}

// NewDefaultSession creates a session editing the sample card.
func NewDefaultSession() *Session {
	return NewSession(DefaultCard())
}

// SetTitle replaces the title. Empty removes the heading.
func (s *Session) SetTitle(title string) {
	s.update(func(c *Card) { c.Title = title })
}

// SetBody replaces the body.
func (s *Session) SetBody(body string) {
	s.update(func(c *Card) { c.Body = body })
}

// SetAttribution replaces the attribution. Empty removes the footer.
func (s *Session) SetAttribution(attribution string) {
	s.update(func(c *Card) { c.Attribution = attribution })
}

// SetTheme selects a theme from the catalog. Unknown identifiers leave
// the card unchanged and return ErrUnknownTheme.
func (s *Session) SetTheme(id ThemeID) error {
	theme, err := ResolveTheme(id)
	if err != nil {
		return err
	}
	s.update(func(c *Card) { c.Theme = theme.ID })
	return nil
}

// Snapshot returns a copy of the card and its revision. The revision
// increases with every edit.
func (s *Session) Snapshot() (Card, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.card, s.revision
}

// Busy reports whether an export is in flight on ch.
func (s *Session) Busy(ch Channel) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ch.valid() && s.busy[ch]
}

func (s *Session) update(fn func(*Card)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.card)
	s.revision++
}

// begin marks ch busy and snapshots the card in one step.
// ok is false when ch is already busy.
func (s *Session) begin(ch Channel) (card Card, revision uint64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !ch.valid() || s.busy[ch] {
		return Card{}, 0, false
	}
	s.busy[ch] = true
	return s.card, s.revision, true
}

// end returns ch to idle.
func (s *Session) end(ch Channel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ch.valid() {
		s.busy[ch] = false
	}
}
