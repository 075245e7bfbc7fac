// controller/options_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dev-mohitbeniwal/listpane/controls"
	listpane_errors "github.com/dev-mohitbeniwal/listpane/errors"
	"github.com/dev-mohitbeniwal/listpane/model"
	"github.com/dev-mohitbeniwal/listpane/service"
	"github.com/dev-mohitbeniwal/listpane/util"
)

type listQuery struct {
	WebURL string `form:"webUrl"`
}

type columnQuery struct {
	WebURL          string `form:"webUrl"`
	IncludeInternal bool   `form:"includeInternal"`
	Filter          string `form:"filter" binding:"max=1024"`
}

// OptionsController serves list titles and list columns, raw or as dropdown options.
type OptionsController struct {
	listService   service.ISharePointDataService
	columnService service.ISharePointDataService
}

// NewOptionsController takes one data service per dropdown kind, matching the
// cache namespaces the controls use.
func NewOptionsController(listService, columnService service.ISharePointDataService) *OptionsController {
	return &OptionsController{
		listService:   listService,
		columnService: columnService,
	}
}

// RegisterRoutes registers the API routes
func (oc *OptionsController) RegisterRoutes(r *gin.RouterGroup) {
	lists := r.Group("/lists")
	{
		lists.GET("", oc.GetListTitles)
		lists.GET("/:listTitle/columns", oc.GetListColumns)
	}
	options := r.Group("/options/lists")
	{
		options.GET("", oc.GetListOptions)
		options.GET("/:listTitle/columns", oc.GetColumnOptions)
	}
}

func (oc *OptionsController) listTitles(c *gin.Context) ([]string, bool) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid query parameters", listpane_errors.ErrInvalidQuery)
		return nil, false
	}

	titles, err := oc.listService.GetCustomListTitles(c, q.WebURL)
	if err != nil {
		util.RespondWithServiceError(c, err)
		return nil, false
	}
	return titles, true
}

func (oc *OptionsController) listColumns(c *gin.Context) ([]model.KeyValuePair[string, string], bool) {
	var q columnQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid query parameters", listpane_errors.ErrInvalidQuery)
		return nil, false
	}

	var opts []service.RequestOption
	if q.Filter != "" {
		opts = append(opts, service.WithFilter(q.Filter))
	}

	columns, err := oc.columnService.GetListColumns(c, q.WebURL, c.Param("listTitle"), q.IncludeInternal, opts...)
	if err != nil {
		util.RespondWithServiceError(c, err)
		return nil, false
	}
	return columns, true
}

// GetListTitles endpoint
func (oc *OptionsController) GetListTitles(c *gin.Context) {
	if titles, ok := oc.listTitles(c); ok {
		c.JSON(http.StatusOK, titles)
	}
}

// GetListColumns endpoint
func (oc *OptionsController) GetListColumns(c *gin.Context) {
	if columns, ok := oc.listColumns(c); ok {
		c.JSON(http.StatusOK, columns)
	}
}

// GetListOptions endpoint
func (oc *OptionsController) GetListOptions(c *gin.Context) {
	if titles, ok := oc.listTitles(c); ok {
		c.JSON(http.StatusOK, controls.ListOptions(titles))
	}
}

// GetColumnOptions endpoint
func (oc *OptionsController) GetColumnOptions(c *gin.Context) {
	if columns, ok := oc.listColumns(c); ok {
		c.JSON(http.StatusOK, controls.ColumnOptions(columns))
	}
}
