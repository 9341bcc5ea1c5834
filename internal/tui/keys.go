package tui

import (
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyHandler reacts to a key. handled=false lets lower priority bindings try.
type KeyHandler func(m Model, key string) (next Model, cmd tea.Cmd, handled bool)

type KeyBinding struct {
	Keys        []string
	Handler     KeyHandler
	Label       string
	Description string
	Priority    int
}

func (b KeyBinding) matches(key string) bool {
	for _, k := range b.Keys {
		if k == key {
			return true
		}
	}
	return false
}

type HandlerRegistry struct {
	bindings []KeyBinding
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{}
}

func (r *HandlerRegistry) Register(b KeyBinding) {
	r.bindings = append(r.bindings, b)
	sort.SliceStable(r.bindings, func(i, j int) bool {
		return r.bindings[i].Priority > r.bindings[j].Priority
	})
}

func (r *HandlerRegistry) Handle(m Model, key string) (Model, tea.Cmd, bool) {
	for _, b := range r.bindings {
		if b.matches(key) {
			next, cmd, handled := b.Handler(m, key)
			if handled {
				return next, cmd, true
			}
		}
	}
	return m, nil, false
}

// Help lists described bindings as "[key]description" tokens separated by "|".
func (r *HandlerRegistry) Help() string {
	var parts []string
	for _, b := range r.bindings {
		if b.Description == "" {
			continue
		}
		label := b.Label
		if label == "" {
			label = b.Keys[0]
		}
		parts = append(parts, "["+label+"]"+b.Description)
	}
	return strings.Join(parts, "|")
}

func defaultKeys() *HandlerRegistry {
	r := NewHandlerRegistry()
	r.Register(KeyBinding{Keys: []string{" "}, Label: "space", Description: "Start/Pause", Priority: 100, Handler: handleToggle})
	r.Register(KeyBinding{Keys: []string{"r"}, Description: "Reset", Priority: 90, Handler: handleReset})
	r.Register(KeyBinding{Keys: []string{"1", "2", "3"}, Label: "1-3", Description: "Mode", Priority: 80, Handler: handleSwitch})
	r.Register(KeyBinding{Keys: []string{"a"}, Description: "Add", Priority: 70, Handler: handleAdd})
	r.Register(KeyBinding{Keys: []string{"enter"}, Label: "enter", Description: "Focus task", Priority: 60, Handler: handleSelect})
	r.Register(KeyBinding{Keys: []string{"j", "down"}, Label: "j/k", Description: "Move", Priority: 50, Handler: handleMove})
	r.Register(KeyBinding{Keys: []string{"k", "up"}, Priority: 50, Handler: handleMove})
	r.Register(KeyBinding{Keys: []string{"x"}, Description: "Done", Priority: 40, Handler: handleToggleDone})
	r.Register(KeyBinding{Keys: []string{"d"}, Description: "Delete", Priority: 30, Handler: handleDelete})
	r.Register(KeyBinding{Keys: []string{"q"}, Description: "Quit", Priority: 0, Handler: handleQuit})
	return r
}
