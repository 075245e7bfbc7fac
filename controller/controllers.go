// controller/controllers.go
package controller

import "github.com/dev-mohitbeniwal/listpane/controls"

type Controllers struct {
	Options *OptionsController
}

// InitializeControllers wires the controllers to the data services shared by
// the dropdown controls, so HTTP requests and controls hit the same caches.
func InitializeControllers(factory *controls.Factory, cacheTimeoutSecs int) (*Controllers, error) {
	lists, err := factory.DataService(controls.ListDropdownNamespace, cacheTimeoutSecs)
	if err != nil {
		return nil, err
	}
	columns, err := factory.DataService(controls.ListColumnDropdownNamespace, cacheTimeoutSecs)
	if err != nil {
		return nil, err
	}

	return &Controllers{
		Options: NewOptionsController(lists, columns),
	}, nil
}
