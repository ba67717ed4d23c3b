package update

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/hearth/internal/model"
	"github.com/sandeepkv93/hearth/internal/reorder"
	"github.com/sandeepkv93/hearth/internal/service"
	"github.com/sandeepkv93/hearth/internal/storage"
)

// Every mutation is followed by a refetch; the UI only ever renders what
// the service returned last.

func loadTasksCmd(svc service.TaskService, note string) tea.Cmd {
	return func() tea.Msg {
		tasks, err := svc.ListTasks(context.Background())
		return TasksLoadedMsg{Tasks: tasks, Err: err, Note: note}
	}
}

func loadCollectionCmd(svc service.CollectionService, collectionID string) tea.Cmd {
	return func() tea.Msg {
		entries, err := svc.ListCollection(context.Background(), collectionID)
		return CollectionLoadedMsg{CollectionID: collectionID, Entries: entries, Err: err}
	}
}

func taskMutationCmd(svc service.TaskService, note string, op func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := op(ctx); err != nil {
			return TasksLoadedMsg{Err: fmt.Errorf("%s: %w", note, err)}
		}
		tasks, err := svc.ListTasks(ctx)
		return TasksLoadedMsg{Tasks: tasks, Err: err, Note: note}
	}
}

func entryMutationCmd(svc service.CollectionService, collectionID, note string, op func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := op(ctx); err != nil {
			return CollectionLoadedMsg{CollectionID: collectionID, Err: fmt.Errorf("%s: %w", note, err)}
		}
		entries, err := svc.ListCollection(ctx, collectionID)
		return CollectionLoadedMsg{CollectionID: collectionID, Entries: entries, Err: err, Note: note}
	}
}

// reorderCmd performs the one network call of a drop and the refetch that
// follows it, off the UI loop.
func reorderCmd(remote reorder.Remote, ins reorder.Instruction) tea.Cmd {
	return func() tea.Msg {
		return ReorderDoneMsg{Result: reorder.Commit(context.Background(), remote, ins)}
	}
}

func (m Model) initialLoadCmds() []tea.Cmd {
	if m.svc == nil {
		return nil
	}
	cmds := []tea.Cmd{
		loadTasksCmd(m.svc, ""),
		loadCollectionCmd(m.svc, model.ListsCollection),
	}
	if m.OpenListID != "" {
		cmds = append(cmds, loadCollectionCmd(m.svc, m.OpenListID))
	}
	return cmds
}

// paintFromCache fills the board from the local cache so the first frame
// is not empty while the initial fetch is in flight.
func (m *Model) paintFromCache() {
	if m.cache == nil {
		return
	}
	ctx := context.Background()
	rows, err := m.cache.ListTasks(ctx, storage.TaskListFilter{})
	if err != nil {
		m.logger.Warn("read task cache", "err", err)
	} else {
		tasks := make([]model.Task, 0, len(rows))
		for _, row := range rows {
			tasks = append(tasks, row.Model())
		}
		m.Board.Tasks = tasks
	}
	entries, err := m.cache.ListCollection(ctx, model.ListsCollection)
	if err != nil {
		m.logger.Warn("read list cache", "err", err)
		return
	}
	lists := make([]model.Entry, 0, len(entries))
	for _, e := range entries {
		lists = append(lists, e.Model())
	}
	m.setCollection(model.ListsCollection, lists)
}

func (m *Model) cacheTasks(tasks []model.Task) {
	if m.cache == nil {
		return
	}
	at := m.now()
	rows := make([]storage.Task, 0, len(tasks))
	for i, t := range tasks {
		rows = append(rows, storage.TaskFromModel(i, t, at))
	}
	if err := m.cache.ReplaceTasks(context.Background(), rows, at); err != nil {
		m.logger.Warn("write task cache", "err", err)
	}
}

func (m *Model) cacheCollection(collectionID string, entries []model.Entry) {
	if m.cache == nil {
		return
	}
	at := m.now()
	rows := make([]storage.CollectionEntry, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, storage.EntryFromModel(collectionID, i, e, at))
	}
	if err := m.cache.ReplaceCollection(context.Background(), collectionID, rows, at); err != nil {
		m.logger.Warn("write collection cache", "collection", collectionID, "err", err)
	}
}

func (m *Model) uncacheCollection(collectionID string) {
	if m.cache == nil {
		return
	}
	if err := m.cache.DeleteCollection(context.Background(), collectionID); err != nil && !errors.Is(err, storage.ErrNotFound) {
		m.logger.Warn("drop collection cache", "collection", collectionID, "err", err)
	}
}
