package ui

import "github.com/rivo/tview"

// Pages is a stack-based page manager wrapping tview.Pages. Only the top of
// the stack is visible.
type Pages struct {
	*tview.Pages
	stack    []string
	onChange func(top string)
}

// NewPages creates an empty page stack.
func NewPages() *Pages {
	return &Pages{
		Pages: tview.NewPages(),
	}
}

// SetOnChange sets a callback fired with the new top page after every change.
func (p *Pages) SetOnChange(fn func(top string)) {
	p.onChange = fn
}

// Push shows name on top of the stack. Pushing the current top is a no-op.
func (p *Pages) Push(name string) {
	if p.Current() == name {
		return
	}
	if top := p.Current(); top != "" {
		p.HidePage(top)
	}
	p.stack = append(p.stack, name)
	p.ShowPage(name)
	p.SendToFront(name)
	p.notify()
}

// Pop removes the top page and shows the previous one. The root page is
// never popped; Pop returns "" in that case.
func (p *Pages) Pop() string {
	if len(p.stack) <= 1 {
		return ""
	}
	top := p.stack[len(p.stack)-1]
	p.HidePage(top)
	p.stack = p.stack[:len(p.stack)-1]
	current := p.stack[len(p.stack)-1]
	p.ShowPage(current)
	p.SendToFront(current)
	p.notify()
	return top
}

// Current returns the name of the top page.
func (p *Pages) Current() string {
	if len(p.stack) == 0 {
		return ""
	}
	return p.stack[len(p.stack)-1]
}

// Depth returns the current stack depth.
func (p *Pages) Depth() int {
	return len(p.stack)
}

func (p *Pages) notify() {
	if p.onChange != nil {
		p.onChange(p.Current())
	}
}
