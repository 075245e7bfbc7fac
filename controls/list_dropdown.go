package controls

import (
	"context"
	"strings"

	listpane_errors "github.com/dev-mohitbeniwal/listpane/errors"
	"github.com/dev-mohitbeniwal/listpane/model"
	"github.com/dev-mohitbeniwal/listpane/service"
)

const (
	ListDropdownNamespace       = "s32-spfx-splist-dropdown"
	ListColumnDropdownNamespace = "s32-spfx-splistcolumn-dropdown"

	// DefaultCacheTimeoutSecs applies when a control does not set CacheTimeoutSecs.
	DefaultCacheTimeoutSecs = 10
)

// ListDropdownProperties configures a dropdown of the custom lists of a site.
type ListDropdownProperties struct {
	WebAbsoluteURL   string
	DefaultKey       string
	Label            string
	Disabled         bool
	CacheTimeoutSecs int
	OnPropertyChange PropertyChangeFunc
}

// ListColumnDropdownProperties configures a dropdown of the columns of a list.
type ListColumnDropdownProperties struct {
	WebAbsoluteURL         string
	ListTitle              string
	DefaultKey             string
	Label                  string
	Disabled               bool
	IncludeInternalColumns bool
	CacheTimeoutSecs       int
	OnPropertyChange       PropertyChangeFunc
}

// componentKey derives a control key from its base namespace and target property.
func componentKey(base, targetProperty string) string {
	if targetProperty == "" {
		return base
	}
	return base + "-" + strings.Replace(targetProperty, " ", "-", 1)
}

type ListDropdown struct {
	queryDropdown
	Properties  ListDropdownProperties
	dataService service.ISharePointDataService
}

var _ OptionLoader = &ListDropdown{}

// LoadOptions returns one option per custom list title.
func (d *ListDropdown) LoadOptions(ctx context.Context) ([]model.DropdownOption, error) {
	if d.Properties.WebAbsoluteURL == "" {
		return nil, listpane_errors.NewConfigError("The URL of the site wasn't provided.")
	}

	titles, err := d.dataService.GetCustomListTitles(ctx, d.Properties.WebAbsoluteURL)
	if err != nil {
		return nil, err
	}

	return ListOptions(titles), nil
}

type ListColumnDropdown struct {
	queryDropdown
	Properties  ListColumnDropdownProperties
	dataService service.ISharePointDataService
}

var _ OptionLoader = &ListColumnDropdown{}

// LoadOptions returns one option per column, keyed by internal name and
// labelled "<display name> (<internal name>)".
func (d *ListColumnDropdown) LoadOptions(ctx context.Context) ([]model.DropdownOption, error) {
	if d.Properties.WebAbsoluteURL == "" || d.Properties.ListTitle == "" {
		return nil, listpane_errors.NewConfigError("The URL and/or the list title wasn't provided.")
	}

	columns, err := d.dataService.GetListColumns(ctx, d.Properties.WebAbsoluteURL, d.Properties.ListTitle, d.Properties.IncludeInternalColumns)
	if err != nil {
		return nil, err
	}

	return ColumnOptions(columns), nil
}

// ColumnOptions turns column pairs into dropdown options.
func ColumnOptions(columns []model.KeyValuePair[string, string]) []model.DropdownOption {
	options := make([]model.DropdownOption, 0, len(columns))
	for _, column := range columns {
		options = append(options, model.DropdownOption{
			Key:  column.Key,
			Text: column.Value + " (" + column.Key + ")",
		})
	}
	return options
}

// ListOptions turns list titles into dropdown options.
func ListOptions(titles []string) []model.DropdownOption {
	options := make([]model.DropdownOption, 0, len(titles))
	for _, title := range titles {
		options = append(options, model.DropdownOption{Key: title, Text: title})
	}
	return options
}
