package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/quickblessing/internal/bus"
	"github.com/matheus3301/quickblessing/internal/cooldown"
	"github.com/matheus3301/quickblessing/internal/prefs"
	"github.com/matheus3301/quickblessing/internal/tui/keys"
	"github.com/matheus3301/quickblessing/internal/tui/model"
	"github.com/matheus3301/quickblessing/internal/tui/ui"
	"github.com/matheus3301/quickblessing/internal/tui/views"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

const (
	pageMain = "main"
	pageHelp = "help"
)

// App is the main TUI application shell.
type App struct {
	app      *tview.Application
	root     *tview.Flex
	pages    *ui.Pages
	vm       *model.ViewModel
	bus      *bus.Bus
	logger   *zap.Logger
	registry *keys.Registry
	flash    *ui.FlashModel
	profile  string

	theme *ui.Theme
	lang  prefs.Language

	header    *views.Header
	portrait  *views.Portrait
	button    *views.BlessButton
	countdown *views.Countdown
	info      *ui.ProfileInfo
	footer    *views.Footer
	help      *views.HelpView
	prompt    *ui.Prompt

	components []ui.Component
	promptOpen bool

	ctx    context.Context
	cancel context.CancelFunc
}

// NewApp creates the TUI over a restored manager.
func NewApp(mgr *cooldown.Manager, b *bus.Bus, counter model.Counter, profileName string, logger *zap.Logger) *App {
	ctx, cancel := context.WithCancel(context.Background())
	vm := model.NewViewModel(mgr, counter)
	if err := vm.Refresh(); err != nil {
		logger.Warn("initial refresh failed", zap.Error(err))
	}
	state := vm.State()
	theme := ui.ForTheme(state.Theme)

	a := &App{
		app:      tview.NewApplication(),
		pages:    ui.NewPages(),
		vm:       vm,
		bus:      b,
		logger:   logger,
		registry: keys.NewRegistry(),
		flash:    ui.NewFlashModel(),
		profile:  profileName,
		theme:    theme,
		lang:     state.Language,

		header:    views.NewHeader(theme, state.Language),
		portrait:  views.NewPortrait(theme),
		button:    views.NewBlessButton(theme, state.Language),
		countdown: views.NewCountdown(theme, state.Language),
		info:      ui.NewProfileInfo(theme),
		footer:    views.NewFooter(theme, state.Language),
		help:      views.NewHelpView(theme),
		prompt:    ui.NewPrompt(theme),
		ctx:       ctx,
		cancel:    cancel,
	}
	a.components = []ui.Component{a.header, a.portrait, a.button, a.countdown, a.footer, a.help}

	a.setupBindings()
	a.setupCallbacks()
	a.setupLayout()
	a.render()

	return a
}

// SetScreen makes the application draw on s instead of a screen of its own.
func (a *App) SetScreen(s tcell.Screen) {
	a.app.SetScreen(s)
}

func (a *App) setupBindings() {
	a.registry.AddPage(pageMain, &keys.Action{
		Name: "bless", Key: tcell.KeyEnter, Label: "Enter",
		Description: "Bless", Visible: true,
		Handler: a.bless,
	})
	a.registry.AddPage(pageMain, &keys.Action{
		Name: "bless-rune", Key: tcell.KeyRune, Rune: 'b', Label: "b",
		Description: "Bless",
		Handler:     a.bless,
	})
	a.registry.AddPage(pageHelp, &keys.Action{
		Name: "back", Key: tcell.KeyEscape, Label: "Esc",
		Description: "Back", Visible: true,
		Handler: func() { a.pages.Pop() },
	})
	a.registry.AddGlobal(&keys.Action{
		Name: "theme", Key: tcell.KeyRune, Rune: 't', Label: "t",
		Description: "Theme", Visible: true,
		Handler: a.toggleTheme,
	})
	a.registry.AddGlobal(&keys.Action{
		Name: "language", Key: tcell.KeyRune, Rune: 'l', Label: "l",
		Description: "Language", Visible: true,
		Handler: a.toggleLanguage,
	})
	a.registry.AddGlobal(&keys.Action{
		Name: "command", Key: tcell.KeyRune, Rune: ':', Label: ":",
		Description: "Command", Visible: true,
		Handler: a.openPrompt,
	})
	a.registry.AddGlobal(&keys.Action{
		Name: "help", Key: tcell.KeyRune, Rune: '?', Label: "?",
		Description: "Help", Visible: true,
		Handler: func() { a.pages.Push(pageHelp) },
	})
	a.registry.AddGlobal(&keys.Action{
		Name: "quit", Key: tcell.KeyRune, Rune: 'q', Label: "q",
		Description: "Quit", Visible: true,
		Handler: a.Stop,
	})
}

func (a *App) setupCallbacks() {
	a.button.SetSelectedFunc(a.bless)

	a.prompt.SetOnSubmit(func(text string) {
		a.closePrompt()
		a.runCommand(ParseCommand(text))
	})
	a.prompt.SetOnCancel(a.closePrompt)

	a.pages.SetOnChange(func(top string) {
		a.footer.Menu.Update(a.registry.Hints(top))
		if top == pageMain {
			a.app.SetFocus(a.button)
		} else {
			a.app.SetFocus(a.help)
		}
	})
}

func (a *App) setupLayout() {
	buttonRow := tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(a.button, 30, 0, true).
		AddItem(nil, 0, 1, false)

	center := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.portrait, 0, 1, false).
		AddItem(nil, 1, 0, false).
		AddItem(buttonRow, 3, 0, true).
		AddItem(nil, 1, 0, false).
		AddItem(a.countdown, 2, 0, false)

	body := tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(center, 48, 0, true).
		AddItem(nil, 0, 1, false).
		AddItem(a.info, 28, 0, false)

	a.pages.AddPage(pageMain, body, true, false)
	a.pages.AddPage(pageHelp, a.help, true, false)
	a.pages.Push(pageMain)

	a.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.header, 1, 0, false).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.prompt, 0, 0, false).
		AddItem(a.footer, 3, 0, false)

	a.app.SetRoot(a.root, true)
	a.app.SetFocus(a.button)

	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		// Let the prompt handle all keys normally.
		if a.promptOpen {
			return event
		}
		if a.registry.HandleEvent(a.pages.Current(), event) {
			return nil
		}
		return event
	})
}

func (a *App) openPrompt() {
	a.promptOpen = true
	a.root.ResizeItem(a.prompt, 3, 0)
	a.app.SetFocus(a.prompt)
}

func (a *App) closePrompt() {
	a.promptOpen = false
	a.root.ResizeItem(a.prompt, 0, 0)
	if a.pages.Current() == pageHelp {
		a.app.SetFocus(a.help)
		return
	}
	a.app.SetFocus(a.button)
}

func (a *App) runCommand(cmd Command) {
	switch cmd.Canonical() {
	case "bless":
		a.bless()
	case "theme":
		if cmd.Args == "" {
			a.toggleTheme()
			return
		}
		t, ok := prefs.ParseTheme(cmd.Args)
		if !ok {
			a.flash.Warn(fmt.Sprintf("unknown theme %q (light|dark)", cmd.Args))
			return
		}
		a.report(a.vm.SetTheme(t))
	case "lang":
		if cmd.Args == "" {
			a.toggleLanguage()
			return
		}
		l, ok := prefs.ParseLanguage(cmd.Args)
		if !ok {
			a.flash.Warn(fmt.Sprintf("unknown language %q (tr|en)", cmd.Args))
			return
		}
		a.report(a.vm.SetLanguage(l))
	case "help":
		a.pages.Push(pageHelp)
	case "quit":
		a.Stop()
	default:
		a.flash.Warn("unknown command: " + cmd.Name)
	}
}

func (a *App) bless() {
	accepted, err := a.vm.Bless()
	if err != nil {
		a.flash.Err(err)
	}
	if !accepted {
		state := a.vm.State()
		a.flash.Warn(views.TextFor(a.lang).TimeUntilNext + " " + cooldown.FormatTime(state.TimeLeft))
	}
	a.render()
}

func (a *App) toggleTheme() {
	a.report(a.vm.ToggleTheme())
}

func (a *App) toggleLanguage() {
	a.report(a.vm.ToggleLanguage())
}

func (a *App) report(err error) {
	if err != nil {
		a.logger.Warn("preference not saved", zap.Error(err))
		a.flash.Err(err)
	}
	a.render()
}

// render pushes the cached state into every view. It must run on the UI
// goroutine.
func (a *App) render() {
	state := a.vm.State()

	if state.Theme != a.theme.Name {
		a.theme = ui.ForTheme(state.Theme)
		for _, c := range a.components {
			c.ApplyTheme(a.theme)
		}
		a.info.ApplyTheme(a.theme)
		a.prompt.ApplyTheme(a.theme)
	}
	if state.Language != a.lang {
		a.lang = state.Language
		a.header.SetLanguage(a.lang)
		a.button.SetLanguage(a.lang)
		a.countdown.SetLanguage(a.lang)
		a.footer.SetLanguage(a.lang)
	}

	a.portrait.Update(state.Blessed, state.BlessingID)
	a.button.SetWaiting(state.Waiting())
	a.countdown.Update(state.Waiting(), state.TimeLeft)
	a.info.Update(&ui.ProfileData{
		Profile:   a.profile,
		Phase:     string(state.Phase),
		Blessings: a.vm.Blessings(),
		EndsAt:    state.EndTime,
	})
	a.footer.Flash.Update(a.flash.GetMessage())
	a.footer.Menu.Update(a.registry.Hints(a.pages.Current()))
}

// Run starts the TUI application and blocks until it stops.
func (a *App) Run() error {
	go a.watchEvents()
	go a.watchFlash()
	return a.app.Run()
}

func (a *App) watchEvents() {
	cooldownCh, unsubCooldown := a.bus.Subscribe("cooldown.", 16)
	prefsCh, unsubPrefs := a.bus.Subscribe("prefs.", 4)
	cueCh, unsubCue := a.bus.Subscribe("cue.", 4)
	defer unsubCooldown()
	defer unsubPrefs()
	defer unsubCue()

	for {
		select {
		case <-cooldownCh:
		case <-prefsCh:
		case evt := <-cueCh:
			if evt.Kind == bus.KindCueFailed {
				a.flash.Warn(fmt.Sprintf("blessing sound failed: %v", evt.Payload))
			}
		case <-a.ctx.Done():
			return
		}
		if err := a.vm.Refresh(); err != nil {
			a.logger.Debug("refresh failed", zap.Error(err))
		}
		a.app.QueueUpdateDraw(a.render)
	}
}

// watchFlash redraws when a flash message is set and again once it expires.
func (a *App) watchFlash() {
	var expire <-chan time.Time
	for {
		select {
		case msg := <-a.flash.Watch():
			expire = time.After(time.Until(msg.Expires))
		case <-expire:
			expire = nil
		case <-a.ctx.Done():
			return
		}
		a.app.QueueUpdateDraw(func() {
			a.footer.Flash.Update(a.flash.GetMessage())
		})
	}
}

// Stop gracefully shuts down the TUI.
func (a *App) Stop() {
	a.cancel()
	a.app.Stop()
}
