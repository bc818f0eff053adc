package ui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/five82/phrasebook/internal/browser"
	"github.com/five82/phrasebook/internal/catalog"
	"github.com/five82/phrasebook/internal/fetch"
	"github.com/five82/phrasebook/internal/modal"
	"github.com/five82/phrasebook/internal/nav"
	"github.com/five82/phrasebook/internal/phrases"
	"github.com/five82/phrasebook/internal/prefs"
)

// Region is a stop in the Tab focus ring.
type Region int

const (
	RegionTabs Region = iota
	RegionAbout
	RegionGrid
	RegionBadges
)

func (r Region) String() string {
	switch r {
	case RegionTabs:
		return "Page tabs"
	case RegionAbout:
		return "About section"
	case RegionGrid:
		return "Phrase grid"
	case RegionBadges:
		return "References"
	default:
		return "Unknown"
	}
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Fetcher   phrases.Fetcher
	Catalog   *catalog.Catalog
	Prefs     prefs.Port
	Opener    browser.Opener
	Clipboard browser.Clipboard
	StartPage string
	Log       zerolog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Dependencies
	ctx     context.Context
	fetcher phrases.Fetcher
	catalog *catalog.Catalog
	prefs   prefs.Port
	opener  browser.Opener
	clip    browser.Clipboard
	log     zerolog.Logger

	// UI state
	theme   Theme
	keys    keyMap
	help    help.Model
	spinner spinner.Model
	width   int
	height  int
	ready   bool

	// Page state
	page    int
	pageGen uint64
	pending *fetch.Request
	tabs    nav.Tabs
	fetch   *fetch.Controller
	grid    nav.Grid
	badges  nav.Strip
	region  Region

	// About panel
	aboutView  viewport.Model
	aboutCache map[aboutKey]string

	// Phrase details overlay
	modal     modal.Controller
	modalView viewport.Model

	showGuide    bool
	announcement string
}

// New creates a new Bubble Tea model positioned on opts.StartPage.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	store := opts.Prefs
	if store == nil {
		store = &prefs.Memory{}
	}

	m := Model{
		ctx:        ctx,
		fetcher:    opts.Fetcher,
		catalog:    cat,
		prefs:      store,
		opener:     opts.Opener,
		clip:       opts.Clipboard,
		log:        opts.Log,
		theme:      GetTheme(store.Theme()),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		aboutView:  viewport.New(0, 0),
		modalView:  viewport.New(0, 0),
		aboutCache: make(map[aboutKey]string),
		region:     RegionGrid,
		showGuide:  !store.GuideSeen(),
	}

	category, idx, redirected := cat.Resolve(opts.StartPage)
	if redirected && opts.StartPage != "" {
		m.log.Info().Str("requested", opts.StartPage).Str("page", category.Path).Msg("unknown page, redirecting")
	}
	m.tabs = nav.NewTabs(cat.Len(), idx)
	if req, ok := m.switchPage(idx); ok {
		m.pending = &req
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.pending == nil {
		return nil
	}
	return tea.Batch(fetchCmd(m.pageGen, *m.pending), m.spinner.Tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.setAboutContent()
		if m.modal.IsOpen() {
			m.setModalContent()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case fetchResultMsg:
		m.applyFetch(msg)
		return m, nil

	case clearSelectedMsg:
		m.modal.ClearSelected(msg.gen)
		return m, nil

	case openedMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Str("url", msg.url).Msg("open verse link failed")
			m.announce("Could not open " + msg.url)
		} else {
			m.log.Debug().Str("url", msg.url).Msg("opened verse link")
			m.announce("Opened " + msg.url)
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("copy phrase failed")
			m.announce("Copy failed")
		} else {
			m.announce("Phrase copied to clipboard")
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showGuide {
		return m.renderGuide()
	}
	if m.modal.IsOpen() {
		return m.renderModal()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	if k == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showGuide {
		m.dismissGuide()
		return m, nil
	}

	if m.modal.IsOpen() {
		return m.handleModalKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Guide):
		m.showGuide = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if err := m.prefs.SetTheme(m.theme.Name); err != nil {
			m.log.Warn().Err(err).Msg("save theme failed")
		}
		m.setAboutContent()
		m.announce("Theme " + m.theme.Name)
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		return m.stepPage(nav.KeyNext)

	case key.Matches(msg, m.keys.PrevPage):
		return m.stepPage(nav.KeyPrev)

	case key.Matches(msg, m.keys.GoToPage):
		n, err := strconv.Atoi(k)
		if err != nil || n < 1 || n > m.catalog.Len() {
			return m, nil
		}
		cmd := m.loadPage(n - 1)
		return m, cmd

	case key.Matches(msg, m.keys.Retry):
		cmd := m.retry()
		return m, cmd

	case key.Matches(msg, m.keys.Tab):
		m.cycleRegion(1)
		return m, nil

	case key.Matches(msg, m.keys.ShiftTab):
		m.cycleRegion(-1)
		return m, nil
	}

	switch m.region {
	case RegionTabs:
		return m.handleTabsKey(k)
	case RegionAbout:
		var cmd tea.Cmd
		m.aboutView, cmd = m.aboutView.Update(msg)
		return m, cmd
	case RegionGrid:
		nk := nav.KeyFromString(k)
		cmd := m.applyGrid(m.grid.Handle(nk, false), nk)
		return m, cmd
	case RegionBadges:
		return m.handleBadgesKey(k)
	}
	return m, nil
}

func (m Model) handleTabsKey(k string) (tea.Model, tea.Cmd) {
	out := m.tabs.Handle(nav.KeyFromString(k))
	switch {
	case out.Activate:
		cmd := m.loadPage(out.Index)
		return m, cmd
	case out.Moved:
		m.announce(m.catalog.At(out.Index).Label + ", " + out.Announcement)
	}
	return m, nil
}

func (m Model) handleBadgesKey(k string) (tea.Model, tea.Cmd) {
	nk := nav.KeyFromString(k)
	out := m.badges.Handle(nk)
	if out.Handled {
		if out.Activate {
			if p, ok := m.focusedPhrase(); ok && out.Index < len(p.References) {
				cmd := m.openReference(p.References[out.Index])
				return m, cmd
			}
			return m, nil
		}
		if out.Announcement != "" {
			m.announce(out.Announcement)
		}
		return m, nil
	}

	gout := m.grid.Handle(nk, true)
	if !gout.Handled && nk == nav.KeyEscape {
		m.region = RegionGrid
		m.announce(nav.PositionAnnouncement(m.grid.Index(), m.grid.Len()))
		return m, nil
	}
	cmd := m.applyGrid(gout, nk)
	return m, cmd
}

// applyGrid turns a grid outcome into focus changes and announcements.
func (m *Model) applyGrid(out nav.Outcome, k nav.Key) tea.Cmd {
	if !out.Handled {
		return nil
	}
	if out.Target.Kind == nav.TargetAbout {
		m.region = RegionAbout
		m.announce(out.Announcement)
		return nil
	}
	if out.Activate {
		m.openModal(out.Index)
		return nil
	}
	if out.Moved {
		m.syncBadges()
		if m.region == RegionBadges && m.badges.Len() == 0 {
			m.region = RegionGrid
		}
		m.announce(out.Announcement)
		return nil
	}
	switch k {
	case nav.KeySpace:
		if m.grid.Marked() {
			m.announce(fmt.Sprintf("Phrase %d marked", out.Index+1))
		} else {
			m.announce(fmt.Sprintf("Phrase %d unmarked", out.Index+1))
		}
	case nav.KeyEscape:
		m.announce("Mark cleared")
	}
	return nil
}

func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	act := m.modal.Handle(msg.String())
	switch act.Kind {
	case modal.ActionClose:
		out := m.grid.Focus(act.ReturnTo.Index)
		m.region = RegionGrid
		m.syncBadges()
		m.announce("Phrase details closed, " + nav.PositionAnnouncement(out.Index, m.grid.Len()))
		gen := act.ClearGen
		return m, tea.Tick(modal.ClearDelay, func(time.Time) tea.Msg {
			return clearSelectedMsg{gen: gen}
		})

	case modal.ActionOpenReference:
		cmd := m.openReference(act.Reference)
		return m, cmd

	case modal.ActionCopy:
		p, ok := m.modal.Selected()
		if !ok {
			return m, nil
		}
		return m, copyCmd(m.clip, p.PlainText())

	case modal.ActionFocus:
		m.announce(act.Announcement)
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.ScrollUp, m.keys.ScrollDown, m.keys.PageUp, m.keys.PageDown):
		var cmd tea.Cmd
		m.modalView, cmd = m.modalView.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) dismissGuide() {
	m.showGuide = false
	if m.prefs.GuideSeen() {
		return
	}
	if err := m.prefs.MarkGuideSeen(); err != nil {
		m.log.Warn().Err(err).Msg("save keyboard guide flag failed")
	}
}

// cycleRegion moves along the Tab ring: tabs, about, grid, then the focused
// card's references when it has any.
func (m *Model) cycleRegion(dir int) {
	ring := []Region{RegionTabs, RegionAbout}
	if m.grid.Len() > 0 {
		ring = append(ring, RegionGrid)
		if m.badges.Len() > 0 {
			ring = append(ring, RegionBadges)
		}
	}

	cur := 0
	for i, r := range ring {
		if r == m.region {
			cur = i
			break
		}
	}
	next := ring[(cur+dir+len(ring))%len(ring)]
	m.region = next

	switch next {
	case RegionTabs:
		m.tabs.Select(m.page)
		m.announce(fmt.Sprintf("%s, %s", next, m.catalog.At(m.page).Label))
	case RegionGrid:
		m.announce(fmt.Sprintf("%s, %s", next, nav.PositionAnnouncement(m.grid.Index(), m.grid.Len())))
	case RegionBadges:
		p, _ := m.focusedPhrase()
		m.announce(fmt.Sprintf("%s, %s", next, p.References[m.badges.Index()]))
	default:
		m.announce(next.String())
	}
}

func (m Model) stepPage(k nav.Key) (tea.Model, tea.Cmd) {
	m.tabs.Select(m.page)
	out := m.tabs.Handle(k)
	cmd := m.loadPage(out.Index)
	return m, cmd
}

// loadPage leaves the current page, discarding its fetch state, and starts
// loading page i.
func (m *Model) loadPage(i int) tea.Cmd {
	req, ok := m.switchPage(i)
	if !ok {
		return nil
	}
	return tea.Batch(fetchCmd(m.pageGen, req), m.spinner.Tick)
}

func (m *Model) switchPage(i int) (fetch.Request, bool) {
	if m.fetch != nil {
		m.fetch.Close()
	}
	m.page = i
	m.tabs.Select(i)
	m.pageGen++
	m.pending = nil

	cat := m.catalog.At(i)
	m.fetch = fetch.New(m.fetcher, fetch.Hooks{
		BeforeRequest: func(string) bool { return !cat.HasResource() },
	}, m.log.With().Str("page", cat.Path).Logger())
	m.grid = nav.NewGrid(0)
	m.badges = nav.NewStrip(0, nav.TargetBadge)
	if m.region == RegionBadges {
		m.region = RegionGrid
	}
	m.aboutView.GotoTop()
	m.setAboutContent()

	req, ok := m.fetch.Load(m.ctx, cat.Resource)
	if !ok {
		m.announce(cat.Label + ", no phrases published yet")
		return fetch.Request{}, false
	}
	m.announce("Loading " + cat.Label)
	return req, true
}

func (m *Model) retry() tea.Cmd {
	if m.fetch.InFlight() || !m.catalog.At(m.page).HasResource() {
		return nil
	}
	req, ok := m.fetch.Refetch(m.ctx)
	if !ok {
		return nil
	}
	m.announce("Retrying " + m.catalog.At(m.page).Label)
	return tea.Batch(fetchCmd(m.pageGen, req), m.spinner.Tick)
}

func (m *Model) applyFetch(msg fetchResultMsg) {
	if msg.gen != m.pageGen {
		return
	}
	if !m.fetch.Apply(msg.res) {
		return
	}
	st := m.fetch.State()
	if st.Err != "" {
		m.grid.Resize(0)
		m.syncBadges()
		if m.region == RegionBadges {
			m.region = RegionGrid
		}
		m.announce("Error: " + st.Err)
		return
	}
	n := st.Data.Len()
	m.grid.Resize(n)
	m.syncBadges()
	if n == 1 {
		m.announce("Loaded 1 phrase")
	} else {
		m.announce(fmt.Sprintf("Loaded %d phrases", n))
	}
}

func (m *Model) openModal(i int) {
	st := m.fetch.State()
	if st.Data == nil || i < 0 || i >= len(st.Data.Phrases) {
		return
	}
	m.modal.Open(st.Data.Phrases[i], i)
	m.setModalContent()
	m.modalView.GotoTop()
	m.announce("Phrase details, Close button")
}

func (m *Model) openReference(ref phrases.Reference) tea.Cmd {
	if err := ref.Validate(); err != nil {
		m.log.Warn().Err(err).Str("reference", ref.String()).Msg("refusing to open reference")
		m.announce("Invalid reference " + ref.String())
		return nil
	}
	return openCmd(m.opener, ref.URL())
}

// focusedPhrase returns the phrase under the grid cursor.
func (m Model) focusedPhrase() (phrases.Phrase, bool) {
	st := m.fetch.State()
	i := m.grid.Index()
	if st.Data == nil || m.grid.Len() == 0 || i >= len(st.Data.Phrases) {
		return phrases.Phrase{}, false
	}
	return st.Data.Phrases[i], true
}

func (m *Model) syncBadges() {
	p, _ := m.focusedPhrase()
	m.badges = nav.NewStrip(len(p.References), nav.TargetBadge)
}

func (m Model) loading() bool {
	return m.fetch != nil && m.fetch.InFlight()
}

func (m *Model) announce(s string) {
	if s != "" {
		m.announcement = s
	}
}

// Messages

type fetchResultMsg struct {
	gen uint64
	res fetch.Result
}

type clearSelectedMsg struct {
	gen uint64
}

type openedMsg struct {
	url string
	err error
}

type copiedMsg struct {
	err error
}

// Commands

func fetchCmd(gen uint64, req fetch.Request) tea.Cmd {
	return func() tea.Msg {
		return fetchResultMsg{gen: gen, res: req.Run()}
	}
}

func openCmd(opener browser.Opener, url string) tea.Cmd {
	return func() tea.Msg {
		if opener == nil {
			return openedMsg{url: url, err: fmt.Errorf("no browser configured")}
		}
		return openedMsg{url: url, err: opener.Open(url)}
	}
}

func copyCmd(clip browser.Clipboard, text string) tea.Cmd {
	return func() tea.Msg {
		if clip == nil {
			return copiedMsg{err: fmt.Errorf("no clipboard configured")}
		}
		return copiedMsg{err: clip.Copy(text)}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	final, err := p.Run()
	if fm, ok := final.(Model); ok && fm.fetch != nil {
		fm.fetch.Close()
	}
	return err
}
