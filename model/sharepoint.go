// model/sharepoint.go
package model

import "strings"

// List is the subset of a SharePoint list the dropdowns need.
type List struct {
	Title string `json:"Title"`
}

// Field is the subset of a SharePoint field (list column) definition used for
// filtering and display.
type Field struct {
	Title         string    `json:"Title"`
	InternalName  string    `json:"InternalName"`
	TypeAsString  string    `json:"TypeAsString,omitempty"`
	FieldTypeKind FieldType `json:"FieldTypeKind,omitempty"`
	Hidden        bool      `json:"Hidden,omitempty"`
	CanBeDeleted  bool      `json:"CanBeDeleted,omitempty"`
}

// REST property names.
const (
	ListPropertyTitle          = "Title"
	ListPropertyBaseType       = "BaseType"
	ListPropertyBaseTemplate   = "BaseTemplate"
	FieldPropertyTitle         = "Title"
	FieldPropertyInternalName  = "InternalName"
	FieldPropertyTypeAsString  = "TypeAsString"
	FieldPropertyFieldTypeKind = "FieldTypeKind"
	FieldPropertyHidden        = "Hidden"
	FieldPropertyCanBeDeleted  = "CanBeDeleted"
)

const (
	// BaseTypeGenericList excludes document libraries, surveys and issue lists.
	BaseTypeGenericList = 0
	// TemplateGenericList is the "Custom List" template.
	TemplateGenericList = 100
	// TaxonomyHiddenList is created by managed metadata and never shown to users.
	TaxonomyHiddenList = "TaxonomyHiddenList"
	// TitleFieldName is the primary title column, always offered.
	TitleFieldName = "Title"
)

// FieldType mirrors SharePoint's SPFieldType enumeration.
type FieldType int

const (
	FieldTypeInvalid FieldType = iota
	FieldTypeInteger
	FieldTypeText
	FieldTypeNote
	FieldTypeDateTime
	FieldTypeCounter
	FieldTypeChoice
	FieldTypeLookup
	FieldTypeBoolean
	FieldTypeNumber
	FieldTypeCurrency
	FieldTypeURL
	FieldTypeComputed
	FieldTypeThreading
	FieldTypeGUID
	FieldTypeMultiChoice
	FieldTypeGridChoice
	FieldTypeCalculated
	FieldTypeFile
	FieldTypeAttachments
	FieldTypeUser
	FieldTypeRecurrence
	FieldTypeCrossProjectLink
	FieldTypeModStat
	FieldTypeError
	FieldTypeContentTypeID
	FieldTypePageSeparator
	FieldTypeThreadIndex
	FieldTypeWorkflowStatus
	FieldTypeAllDayEvent
	FieldTypeWorkflowEventType
	FieldTypeMaxItems
)

// IsInternalName reports whether an internal name follows one of the naming
// conventions SharePoint uses for system columns: an underscore in second
// position ("_ows_...", "x_...") or a leading underscore ("_UIVersion").
// A leading "_xHHHH_" is the XML encoding of a character a user column name
// cannot start with ("2024 Budget" is "_x0032_024_x0020_Budget"), so it does
// not mark the column as internal.
func IsInternalName(internalName string) bool {
	if internalName == TitleFieldName {
		return false
	}
	if len(internalName) > 1 && internalName[1] == '_' {
		return true
	}
	return len(internalName) > 0 && internalName[0] == '_' && !hasEncodedPrefix(internalName)
}

// hasEncodedPrefix reports whether name starts with an "_xHHHH_" escape.
func hasEncodedPrefix(name string) bool {
	if len(name) < 7 || name[0] != '_' || name[1] != 'x' || name[6] != '_' {
		return false
	}
	for _, c := range name[2:6] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}

// IsInternal is the full client-side version of the internal-column predicate.
func (f Field) IsInternal() bool {
	if f.InternalName == TitleFieldName {
		return false
	}
	return IsInternalName(f.InternalName) ||
		f.FieldTypeKind == FieldTypeContentTypeID ||
		f.FieldTypeKind == FieldTypeGUID ||
		f.Hidden ||
		!f.CanBeDeleted
}
