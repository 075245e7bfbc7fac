package sharepoint

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/dev-mohitbeniwal/listpane/model"
)

// customListFilter keeps user-created generic lists and drops the managed metadata list.
var customListFilter = fmt.Sprintf("(%s eq %d) and (%s eq %d) and (%s ne '%s')",
	model.ListPropertyBaseType, model.BaseTypeGenericList,
	model.ListPropertyBaseTemplate, model.TemplateGenericList,
	model.ListPropertyTitle, model.TaxonomyHiddenList)

// internalColumnFilter keeps the title column and every user-deletable, visible
// column that is not a content type id or guid. OData evaluates "and" before "or".
var internalColumnFilter = fmt.Sprintf(
	"%s eq '%s' or %s ne %d and %s ne %d and %s eq false and %s eq true",
	model.FieldPropertyInternalName, model.TitleFieldName,
	model.FieldPropertyFieldTypeKind, model.FieldTypeContentTypeID,
	model.FieldPropertyFieldTypeKind, model.FieldTypeGUID,
	model.FieldPropertyHidden,
	model.FieldPropertyCanBeDeleted)

// FieldQuery narrows the columns returned by GetFields.
type FieldQuery struct {
	IncludeInternal bool
	// Filter is an extra OData predicate and-ed to the defaults.
	Filter string
}

// filterExpression builds the OData $filter expression for the query.
func (q FieldQuery) filterExpression() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s ne ''", model.FieldPropertyTitle)
	if q.Filter != "" {
		fmt.Fprintf(&b, " and %s", q.Filter)
	}
	if !q.IncludeInternal {
		fmt.Fprintf(&b, " and %s", internalColumnFilter)
	}
	return b.String()
}

func listsURL(webURL string) string {
	v := url.Values{}
	v.Set("$select", model.ListPropertyTitle)
	v.Set("$filter", customListFilter)
	v.Set("$orderby", model.ListPropertyTitle+" asc")
	return strings.TrimRight(webURL, "/") + "/_api/web/lists?" + encode(v)
}

func fieldsURL(webURL, listTitle string, q FieldQuery) string {
	v := url.Values{}
	v.Set("$select", strings.Join([]string{
		model.FieldPropertyTitle,
		model.FieldPropertyInternalName,
		model.FieldPropertyTypeAsString,
		model.FieldPropertyFieldTypeKind,
		model.FieldPropertyHidden,
		model.FieldPropertyCanBeDeleted,
	}, ","))
	v.Set("$filter", q.filterExpression())
	v.Set("$orderby", model.FieldPropertyTitle+" asc")
	return fmt.Sprintf("%s/_api/web/lists/getByTitle('%s')/fields?%s",
		strings.TrimRight(webURL, "/"), url.PathEscape(escapeODataString(listTitle)), encode(v))
}

// escapeODataString doubles single quotes inside an OData string literal.
func escapeODataString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// encode is url.Values.Encode with %20 instead of '+', which SharePoint
// does not accept inside $filter.
func encode(v url.Values) string {
	return strings.ReplaceAll(v.Encode(), "+", "%20")
}
