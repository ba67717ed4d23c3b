package update

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/hearth/internal/model"
	"github.com/sandeepkv93/hearth/internal/reorder"
	"github.com/sandeepkv93/hearth/internal/views"
)

func (m Model) collectionFor(v View) string {
	switch v {
	case ViewLists:
		return model.ListsCollection
	case ViewItems:
		return m.OpenListID
	default:
		return ""
	}
}

// entryRows returns a collection view's entries in working order. While a
// drag or sync is active that is the gesture's order, otherwise it mirrors
// the last canonical order.
func (m Model) entryRows(v View) []model.Entry {
	id := m.collectionFor(v)
	if id == "" {
		return nil
	}
	entries := m.Collections[id]
	rec, ok := m.Reorders.Get(id)
	if !ok {
		return entries
	}
	byID := make(map[string]model.Entry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}
	out := make([]model.Entry, 0, len(entries))
	for _, eid := range rec.Working() {
		if e, ok := byID[eid]; ok {
			out = append(out, e)
		}
	}
	return out
}

func (m Model) currentEntry() (model.Entry, bool) {
	rows := m.entryRows(m.CurrentView)
	i := m.Cursors[m.CurrentView]
	if i < 0 || i >= len(rows) {
		return model.Entry{}, false
	}
	return rows[i], true
}

func (m Model) reconciler() (*reorder.Reconciler, bool) {
	id := m.collectionFor(m.CurrentView)
	if id == "" {
		return nil, false
	}
	return m.Reorders.Get(id)
}

func (m Model) dragging() bool {
	rec, ok := m.reconciler()
	return ok && rec.State() == reorder.StateDragging
}

func (m Model) handleCollectionKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.dragging() {
		switch msg.String() {
		case "up", "k":
			m.nudge(-1)
		case "down", "j":
			m.nudge(1)
		case "enter", "m":
			return m.drop()
		case "esc":
			m.cancelDrag()
		}
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "m":
		m.pickUp()
	case "enter":
		if m.CurrentView == ViewLists {
			return m.openCurrentList()
		}
	case " ":
		if m.CurrentView == ViewItems {
			return m.toggleCurrentItem()
		}
	case "d":
		return m.removeCurrentEntry()
	case "esc", "backspace", "h", "left":
		if m.CurrentView == ViewItems {
			m.CurrentView = ViewLists
			m.clampCursor()
		}
	}
	return m, nil
}

// pickUp starts a drag on the selected row, the keyboard long-press.
func (m *Model) pickUp() {
	entry, ok := m.currentEntry()
	if !ok {
		return
	}
	rec, ok := m.reconciler()
	if !ok {
		return
	}
	if err := rec.Begin(entry.ID); err != nil {
		if errors.Is(err, reorder.ErrBusy) {
			m.Status = StatusBar{Text: "still saving the last move", IsError: true}
			return
		}
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("moving %s: j/k to move, enter to drop, esc to cancel", entry.Name)}
}

func (m *Model) nudge(rows int) {
	rec, ok := m.reconciler()
	if !ok {
		return
	}
	idx, err := rec.Nudge(rows)
	if err != nil {
		return
	}
	m.Cursors[m.CurrentView] = idx
}

func (m *Model) dragTo(offset float64) {
	rec, ok := m.reconciler()
	if !ok {
		return
	}
	idx, err := rec.Drag(offset)
	if err != nil {
		return
	}
	m.Cursors[m.CurrentView] = idx
}

func (m *Model) cancelDrag() {
	rec, ok := m.reconciler()
	if !ok {
		return
	}
	entryID, _ := rec.ActiveEntry()
	if rec.Cancel() {
		m.Cursors[m.CurrentView] = indexOfEntry(m.entryRows(m.CurrentView), entryID)
		m.clampCursor()
		m.Status = StatusBar{Text: "move cancelled"}
	}
}

// drop releases the gesture. A net move issues exactly one reorder request;
// anything else settles locally with no network call.
func (m Model) drop() (Model, tea.Cmd) {
	rec, ok := m.reconciler()
	if !ok {
		return m, nil
	}
	ins, moved, err := rec.Release()
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	if !moved {
		m.clampCursor()
		m.Status = StatusBar{Text: "no change"}
		return m, nil
	}
	if m.svc == nil {
		_ = rec.Complete(reorder.Result{Instruction: ins, Err: errors.New("no service configured")})
		return m, nil
	}
	m.loading++
	m.Status = StatusBar{Text: fmt.Sprintf("saving move: %s %d", ins.Direction, ins.Steps)}
	return m, tea.Batch(reorderCmd(m.svc, ins), m.syncSpinner.Tick)
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.CurrentView != ViewLists && m.CurrentView != ViewItems {
		return m, nil
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || m.Palette.Active {
			return m, nil
		}
		row := msg.Y - views.ListFirstRow
		if row < 0 || row >= len(m.entryRows(m.CurrentView)) {
			return m, nil
		}
		m.Cursors[m.CurrentView] = row
		m.pickUp()
		if m.dragging() {
			m.drag = mouseDrag{Active: true, StartY: msg.Y}
		}
	case tea.MouseActionMotion:
		if m.drag.Active {
			m.dragTo(float64(msg.Y-m.drag.StartY) * m.cfg.RowHeight)
		}
	case tea.MouseActionRelease:
		if m.drag.Active {
			m.drag = mouseDrag{}
			return m.drop()
		}
	}
	return m, nil
}

func (m Model) openCurrentList() (Model, tea.Cmd) {
	entry, ok := m.currentEntry()
	if !ok {
		return m, nil
	}
	m.OpenListID = entry.ID
	m.CurrentView = ViewItems
	m.Cursors[ViewItems] = 0
	m.Status = StatusBar{Text: fmt.Sprintf("list: %s", entry.Name)}
	if m.svc == nil {
		return m, nil
	}
	return m, loadCollectionCmd(m.svc, entry.ID)
}

func (m Model) toggleCurrentItem() (Model, tea.Cmd) {
	entry, ok := m.currentEntry()
	if !ok || m.svc == nil {
		return m, nil
	}
	listID := m.OpenListID
	note := "checked " + entry.Name
	if entry.Checked {
		note = "unchecked " + entry.Name
	}
	return m, entryMutationCmd(m.svc, listID, note, func(ctx context.Context) error {
		return m.svc.ToggleEntry(ctx, listID, entry.ID)
	})
}

func (m Model) removeCurrentEntry() (Model, tea.Cmd) {
	entry, ok := m.currentEntry()
	if !ok || m.svc == nil {
		return m, nil
	}
	collectionID := m.collectionFor(m.CurrentView)
	note := "removed " + entry.Name
	if collectionID != model.ListsCollection {
		return m, entryMutationCmd(m.svc, collectionID, note, func(ctx context.Context) error {
			return m.svc.RemoveEntry(ctx, collectionID, entry.ID)
		})
	}
	listID := entry.ID
	return m, func() tea.Msg {
		ctx := context.Background()
		if err := m.svc.RemoveEntry(ctx, model.ListsCollection, listID); err != nil {
			return CollectionLoadedMsg{CollectionID: model.ListsCollection, Err: fmt.Errorf("%s: %w", note, err)}
		}
		entries, err := m.svc.ListCollection(ctx, model.ListsCollection)
		return CollectionLoadedMsg{CollectionID: model.ListsCollection, Entries: entries, Err: err, Note: note, Removed: listID}
	}
}

func (m Model) addEntry(collectionID, name string) tea.Cmd {
	if m.svc == nil {
		return nil
	}
	return entryMutationCmd(m.svc, collectionID, "added "+name, func(ctx context.Context) error {
		_, err := m.svc.AddEntry(ctx, collectionID, name)
		return err
	})
}

// applyCollection handles a refreshed collection.
func (m Model) applyCollection(msg CollectionLoadedMsg) Model {
	if msg.Removed != "" {
		m.Reorders.Forget(msg.Removed)
		delete(m.Collections, msg.Removed)
		m.uncacheCollection(msg.Removed)
		if m.OpenListID == msg.Removed {
			m.OpenListID = ""
			if m.CurrentView == ViewItems {
				m.CurrentView = ViewLists
			}
		}
	}
	if msg.Err != nil {
		m.LastError = msg.Err
		m.Status = StatusBar{Text: msg.Err.Error(), IsError: true}
		m.logger.Error("collection refresh failed", "collection", msg.CollectionID, "err", msg.Err)
		return m
	}
	if msg.CollectionID != model.ListsCollection && !m.knownList(msg.CollectionID) && m.OpenListID != msg.CollectionID {
		m.logger.Debug("dropping refresh for unknown list", "collection", msg.CollectionID)
		return m
	}
	m.setCollection(msg.CollectionID, msg.Entries)
	m.cacheCollection(msg.CollectionID, msg.Entries)
	if msg.Note != "" {
		m.Status = StatusBar{Text: msg.Note}
	}
	return m
}

// applyReorder feeds a committed reorder back into its reconciler. Results
// for a list that was deleted meanwhile are dropped.
func (m Model) applyReorder(res reorder.Result) Model {
	if m.loading > 0 {
		m.loading--
	}
	id := res.Instruction.CollectionID
	applied, err := m.Reorders.Complete(res)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	if !applied {
		m.logger.Debug("discarding reorder result", "collection", id, "entry", res.Instruction.EntryID)
		return m
	}
	if res.Refreshed {
		m.Collections[id] = res.Entries
		m.cacheCollection(id, res.Entries)
	}
	if m.collectionFor(m.CurrentView) == id {
		m.Cursors[m.CurrentView] = indexOfEntry(m.entryRows(m.CurrentView), res.Instruction.EntryID)
		m.clampCursor()
	}
	switch {
	case res.Err != nil:
		m.LastError = res.Err
		m.Status = StatusBar{Text: "could not save the new order: " + res.Err.Error(), IsError: true}
	case res.RefreshErr != nil:
		m.LastError = res.RefreshErr
		m.Status = StatusBar{Text: "order saved, refresh failed: " + res.RefreshErr.Error(), IsError: true}
	default:
		m.Status = StatusBar{Text: "order saved"}
	}
	return m
}

func (m Model) knownList(id string) bool {
	for _, e := range m.Collections[model.ListsCollection] {
		if e.ID == id {
			return true
		}
	}
	return false
}

func indexOfEntry(entries []model.Entry, id string) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return 0
}
