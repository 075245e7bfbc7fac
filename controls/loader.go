package controls

import (
	"context"

	"github.com/sourcegraph/conc"

	"github.com/dev-mohitbeniwal/listpane/model"
)

// LoadResult is the outcome of loading one control's options.
type LoadResult struct {
	Key         string
	Options     []model.DropdownOption
	SelectedKey string
	Err         error
}

// LoadAll loads every loader concurrently, as a property pane does when it
// mounts all its controls at once, so each control selects its default and
// reports the change. Results keep the order of loaders.
func LoadAll(ctx context.Context, loaders ...OptionLoader) []LoadResult {
	results := make([]LoadResult, len(loaders))

	var wg conc.WaitGroup
	for i, l := range loaders {
		i, l := i, l
		wg.Go(func() {
			err := l.Load(ctx)
			state := l.State()
			results[i] = LoadResult{
				Key:         l.Key(),
				Options:     state.Options,
				SelectedKey: state.SelectedKey(),
				Err:         err,
			}
		})
	}
	wg.Wait()

	return results
}
