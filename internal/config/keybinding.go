package config

import (
	"maps"
	"slices"
)

// Keybinding maps front-end actions to key combinations.
type Keybinding struct {
	Bindings map[string]string `json:"bindings"`
}

// Known keybinding actions.
const (
	ActionSave        = "save"
	ActionSaveApp     = "saveApp"
	ActionFind        = "find"
	ActionClose       = "close"
	ActionGotoDef     = "gotoDef"
	ActionRename      = "rename"
	ActionSwapView    = "swapView"
	ActionIncFontSize = "incFontSize"
	ActionDecFontSize = "decFontSize"
)

func defaultBindings() map[string]string {
	return map[string]string{
		ActionSave:        "Ctrl+S",
		ActionSaveApp:     "Ctrl+Shift+S",
		ActionFind:        "Ctrl+F",
		ActionClose:       "Ctrl+W",
		ActionGotoDef:     "F3",
		ActionRename:      "Ctrl+R",
		ActionSwapView:    "Ctrl+E",
		ActionIncFontSize: "Ctrl+Equals",
		ActionDecFontSize: "Ctrl+Minus",
	}
}

// NewKeybinding returns the keybinding section with default bindings.
func NewKeybinding() *Keybinding {
	return &Keybinding{Bindings: defaultBindings()}
}

func (k *Keybinding) Name() string { return KeyKeybinding }

// Load replaces the bindings with the file's map. A file without a bindings
// object keeps the defaults.
func (k *Keybinding) Load(path string) error {
	loaded := &Keybinding{}
	if err := readJSON(path, loaded); err != nil {
		return err
	}
	if loaded.Bindings == nil {
		loaded.Bindings = defaultBindings()
	}
	*k = *loaded
	return nil
}

func (k *Keybinding) Save(path string) error {
	return writeJSON(path, k)
}

// Binding returns the key combination bound to action.
func (k *Keybinding) Binding(action string) (string, bool) {
	b, ok := k.Bindings[action]
	return b, ok
}

// Rebind changes the binding for action. An empty binding removes it.
func (k *Keybinding) Rebind(action, binding string) {
	if k.Bindings == nil {
		k.Bindings = make(map[string]string)
	}
	if binding == "" {
		delete(k.Bindings, action)
		return
	}
	k.Bindings[action] = binding
}

// Actions returns the bound actions in sorted order.
func (k *Keybinding) Actions() []string {
	return slices.Sorted(maps.Keys(k.Bindings))
}
