// Package controls adapts the data service to property pane dropdowns: it
// validates control properties, turns lists and columns into options and
// reports selection changes.
package controls

import (
	"context"
	"sync"

	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/listpane/logging"
	"github.com/dev-mohitbeniwal/listpane/model"
	"github.com/dev-mohitbeniwal/listpane/util"
)

// NoSelection is the selected index when there are no options.
const NoSelection = -1

// OptionLoader is implemented by every dropdown control.
type OptionLoader interface {
	Key() string
	LoadOptions(ctx context.Context) ([]model.DropdownOption, error)
	Load(ctx context.Context) error
	State() State
}

// PropertyChangeFunc is called with the target property and the old and new selected keys.
type PropertyChangeFunc func(propertyPath string, oldValue, newValue string)

// State is a snapshot of a dropdown after its last load.
type State struct {
	Options       []model.DropdownOption
	SelectedIndex int
	Err           error
}

// SelectedKey returns the key of the selected option, or "" when nothing is selected.
func (s State) SelectedKey() string {
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Options) {
		return ""
	}
	return s.Options[s.SelectedIndex].Key
}

// SelectedIndex picks the option matching defaultKey, falling back to the
// first option. It returns NoSelection when there are no options.
func SelectedIndex(options []model.DropdownOption, defaultKey string) int {
	if len(options) == 0 {
		return NoSelection
	}
	if defaultKey != "" {
		for i, option := range options {
			if option.Key == defaultKey {
				return i
			}
		}
	}
	return 0
}

// queryDropdown holds the selection state shared by both dropdown controls.
type queryDropdown struct {
	key              string
	targetProperty   string
	label            string
	disabled         bool
	defaultKey       string
	onPropertyChange PropertyChangeFunc
	bus              *util.EventBus
	loadOptions      func(ctx context.Context) ([]model.DropdownOption, error)

	mu    sync.Mutex
	state State
}

func (d *queryDropdown) Key() string {
	return d.key
}

func (d *queryDropdown) Label() string {
	return d.label
}

// Disabled dropdowns still load their options but reject Select.
func (d *queryDropdown) Disabled() bool {
	return d.disabled
}

func (d *queryDropdown) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Load fetches the options, selects the default key and notifies the change
// of selection. Errors are kept in the state and returned.
func (d *queryDropdown) Load(ctx context.Context) error {
	d.mu.Lock()
	oldKey := d.state.SelectedKey()
	d.state = State{SelectedIndex: NoSelection}
	d.mu.Unlock()

	options, err := d.loadOptions(ctx)
	if d.bus != nil {
		d.bus.Publish(ctx, util.EventOptionsLoaded, util.OptionsLoaded{
			ComponentKey: d.key,
			Count:        len(options),
			Err:          err,
		})
	}
	if err != nil {
		logger.Warn("Failed to load dropdown options",
			zap.Error(err),
			zap.String("componentKey", d.key),
			zap.String("label", d.label))
		d.mu.Lock()
		d.state.Err = err
		d.mu.Unlock()
		return err
	}

	d.mu.Lock()
	d.state = State{Options: options, SelectedIndex: SelectedIndex(options, d.defaultKey)}
	newKey := d.state.SelectedKey()
	d.mu.Unlock()

	d.OnChanged(ctx, oldKey, newKey)
	return nil
}

// Select changes the selection to the option with key. Unknown keys are
// ignored, and so is any selection on a disabled dropdown.
func (d *queryDropdown) Select(ctx context.Context, key string) bool {
	if d.disabled {
		return false
	}
	d.mu.Lock()
	index := NoSelection
	for i, option := range d.state.Options {
		if option.Key == key {
			index = i
			break
		}
	}
	if index == NoSelection {
		d.mu.Unlock()
		return false
	}
	oldKey := d.state.SelectedKey()
	d.state.SelectedIndex = index
	d.mu.Unlock()

	d.OnChanged(ctx, oldKey, key)
	return true
}

// OnChanged tells the host about a new selected key: through the event bus
// and through the caller supplied callback.
func (d *queryDropdown) OnChanged(ctx context.Context, oldKey, newKey string) {
	if d.bus != nil {
		d.bus.Publish(ctx, util.EventPropertyChanged, util.PropertyChange{
			ComponentKey:   d.key,
			TargetProperty: d.targetProperty,
			OldValue:       oldKey,
			NewValue:       newKey,
		})
	}
	if d.onPropertyChange != nil {
		d.onPropertyChange(d.targetProperty, oldKey, newKey)
	}
}
