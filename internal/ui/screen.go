package ui

import "sync"

// Screen is an in-memory Binding. It is safe for concurrent use and notifies
// an observer with a copy of the panel whenever the visible state changes.
type Screen struct {
	batchMu  sync.Mutex
	mu       sync.Mutex
	panel    Panel
	handlers map[ControlID]func()
	onChange func(Panel)
	batching bool
}

// NewScreen creates an empty screen.
func NewScreen() *Screen {
	return &Screen{
		panel:    NewPanel(),
		handlers: make(map[ControlID]func()),
	}
}

// OnChange registers the observer. It is called outside the screen's lock.
func (s *Screen) OnChange(fn func(Panel)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Panel returns a copy of the current visible state.
func (s *Screen) Panel() Panel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.panel.Clone()
}

// OnClick binds a handler to a control, replacing any previous one.
func (s *Screen) OnClick(id ControlID, handler func()) {
	s.mu.Lock()
	s.handlers[id] = handler
	s.mu.Unlock()
}

// Click runs the handler bound to a control. It returns false if none is bound.
func (s *Screen) Click(id ControlID) bool {
	s.mu.Lock()
	handler := s.handlers[id]
	s.mu.Unlock()
	if handler == nil {
		return false
	}
	handler()
	return true
}

// SetText implements Binding.
func (s *Screen) SetText(id RegionID, text string) {
	s.mutate(func(p *Panel) bool {
		if old, ok := p.Texts[id]; ok && old == text {
			return false
		}
		p.Texts[id] = text
		return true
	})
}

// SetActive implements Binding.
func (s *Screen) SetActive(id ControlID, active bool) {
	s.mutate(func(p *Panel) bool {
		if old, ok := p.Active[id]; ok && old == active {
			return false
		}
		p.Active[id] = active
		return true
	})
}

// SetIconState implements Binding.
func (s *Screen) SetIconState(id ControlID, icon Icon) {
	s.mutate(func(p *Panel) bool {
		if p.Icons[id] == icon {
			return false
		}
		p.Icons[id] = icon
		return true
	})
}

// ShowError implements Binding.
func (s *Screen) ShowError(text string) {
	s.mutate(func(p *Panel) bool {
		if p.Error == text {
			return false
		}
		p.Error = text
		return true
	})
}

// ClearError implements Binding.
func (s *Screen) ClearError() {
	s.mutate(func(p *Panel) bool {
		if p.Error == "" {
			return false
		}
		p.Error = ""
		return true
	})
}

// DismissError hides the error banner, as the banner's close button does.
func (s *Screen) DismissError() {
	s.ClearError()
}

// Batch applies fn and notifies at most once, after fn returns. Batches are
// serialised; fn must not start another batch.
func (s *Screen) Batch(fn func(b Binding)) {
	s.batchMu.Lock()
	defer s.batchMu.Unlock()

	s.mu.Lock()
	s.batching = true
	before := s.panel.Clone()
	s.mu.Unlock()

	fn(s)

	s.mu.Lock()
	s.batching = false
	changed := !before.Equal(s.panel)
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

func (s *Screen) mutate(fn func(p *Panel) bool) {
	s.mu.Lock()
	changed := fn(&s.panel)
	batching := s.batching
	s.mu.Unlock()

	if changed && !batching {
		s.notify()
	}
}

func (s *Screen) notify() {
	s.mu.Lock()
	fn := s.onChange
	panel := s.panel.Clone()
	s.mu.Unlock()
	if fn != nil {
		fn(panel)
	}
}
