package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/log"

	"github.com/sandeepkv93/hearth/internal/calendar"
	"github.com/sandeepkv93/hearth/internal/grouping"
	"github.com/sandeepkv93/hearth/internal/logging"
	"github.com/sandeepkv93/hearth/internal/model"
	progresspkg "github.com/sandeepkv93/hearth/internal/progress"
	"github.com/sandeepkv93/hearth/internal/reorder"
	"github.com/sandeepkv93/hearth/internal/scheduler"
	"github.com/sandeepkv93/hearth/internal/scope"
	"github.com/sandeepkv93/hearth/internal/service"
	"github.com/sandeepkv93/hearth/internal/storage"
)

type View string

const (
	ViewToday View = "Today"
	ViewWeek  View = "Week"
	ViewMonth View = "Month"
	ViewLists View = "Lists"
	ViewItems View = "Items"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Today string
	Week  string
	Month string
	Lists string
	Help  string
	Quit  string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// TaskBoard is the scope pipeline output for the anchor date.
type TaskBoard struct {
	Tasks  []model.Task
	Scoped []scope.ScopedTask
	Groups grouping.Groups
	Report progresspkg.Report
}

// mouseDrag tracks a press-hold gesture over a collection view. StartY is
// the terminal row of the press.
type mouseDrag struct {
	Active bool
	StartY int
}

type Deps struct {
	Service   service.Service
	Cache     storage.Repository
	Scheduler *scheduler.Engine
	Logger    *log.Logger
	// Today overrides the clock, for tests.
	Today func() calendar.Date
}

type Model struct {
	CurrentView View
	Anchor      calendar.Date
	Board       TaskBoard

	// Collections holds the last canonical entries per collection id.
	Collections map[string][]model.Entry
	OpenListID  string
	Reorders    *reorder.Board
	Cursors     map[View]int

	Alerts      []scheduler.DueEvent
	Palette     CommandPaletteState
	HelpVisible bool
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error

	svc       service.Service
	cache     storage.Repository
	scheduler *scheduler.Engine
	logger    *log.Logger
	today     func() calendar.Date
	cfg       RuntimeConfig
	drag      mouseDrag

	// loading counts reorders in flight.
	loading     int
	tasksLoaded bool
	listsLoaded bool

	commandInput textinput.Model
	syncSpinner  spinner.Model
	helpModel    help.Model
	progressBar  progress.Model
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// TasksLoadedMsg carries a fresh task snapshot, or the error that
// prevented fetching one. Note describes the mutation that preceded it.
type TasksLoadedMsg struct {
	Tasks []model.Task
	Err   error
	Note  string
}

// CollectionLoadedMsg carries a fresh canonical order for one collection.
type CollectionLoadedMsg struct {
	CollectionID string
	Entries      []model.Entry
	Err          error
	Note         string
	// Removed is set when the mutation deleted a whole shopping list.
	Removed string
}

type ReorderDoneMsg struct {
	Result reorder.Result
}

type DueAlertMsg struct {
	Event scheduler.DueEvent
}

func NewModel(cfg RuntimeConfig, deps Deps) Model {
	today := deps.Today
	if today == nil {
		today = calendar.Today
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	m := Model{
		CurrentView: ViewToday,
		Anchor:      today(),
		Collections: make(map[string][]model.Entry),
		Reorders: reorder.NewBoard(
			reorder.WithRowHeight(cfg.RowHeight),
			reorder.WithJitterThreshold(cfg.DragThreshold),
			reorder.WithLogger(logger),
		),
		Cursors: make(map[View]int),
		Keys: GlobalKeyMap{
			Today: "1",
			Week:  "2",
			Month: "3",
			Lists: "4",
			Help:  "?",
			Quit:  "q",
		},
		svc:       deps.Service,
		cache:     deps.Cache,
		scheduler: deps.Scheduler,
		logger:    logger,
		today:     today,
		cfg:       cfg,
	}
	m.initBubbleComponents()
	m.paintFromCache()
	m.regroup()
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.Placeholder = "add buy milk @today"
	m.commandInput.CharLimit = 200

	m.syncSpinner = spinner.New()
	m.syncSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.helpModel.ShowAll = true

	m.progressBar = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	m.progressBar.Width = 30
}

// regroup reruns the scope pipeline for the current anchor date.
func (m *Model) regroup() {
	m.Board.Scoped = scope.ResolveAll(m.Board.Tasks)
	m.Board.Groups = grouping.Group(m.Board.Scoped, grouping.ReferenceFor(m.Anchor))
	m.Board.Report = progresspkg.Compute(m.Board.Groups)
	m.clampCursor()
}

func (m *Model) setTasks(tasks []model.Task) {
	m.Board.Tasks = tasks
	m.regroup()
	m.rescheduleAlerts()
}

// setCollection stores a canonical order and offers it to the collection's
// reconciler, which holds it back while a drag or sync is active.
func (m *Model) setCollection(collectionID string, entries []model.Entry) {
	m.Collections[collectionID] = entries
	m.Reorders.Track(collectionID, model.EntryIDs(entries))
	m.clampCursor()
}

func (m *Model) setAnchor(d calendar.Date) {
	m.Anchor = d
	m.Cursors[m.CurrentView] = 0
	m.regroup()
}

func (m Model) now() time.Time {
	return time.Now()
}
