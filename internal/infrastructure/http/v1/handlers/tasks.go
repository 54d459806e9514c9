package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"livefilter/internal/core/apperror"
	"livefilter/internal/domain/filter"
	"livefilter/internal/domain/task"
	"livefilter/internal/infrastructure/http/v1/dto"
	"livefilter/internal/infrastructure/storage/postgres"
	"livefilter/internal/urlcodec"
)

// TaskHandler serves the tasks resource. The list endpoint accepts the full
// bracketed filter query string; whatever state it carries is decoded,
// compiled, and executed, and the canonical re-encoding is returned so the
// client can normalize its address bar.
type TaskHandler struct {
	BaseHandler
	store *postgres.Store[task.Task]
}

// NewTaskHandler creates a task handler.
func NewTaskHandler(store *postgres.Store[task.Task]) *TaskHandler {
	return &TaskHandler{store: store}
}

// List handles GET /tasks with filter, sort, and pagination parameters.
func (h *TaskHandler) List(c *gin.Context) {
	params := urlcodec.Expand(c.Request.URL.Query())

	group := task.NormalizeGroup(urlcodec.Decode(params))
	sorts := urlcodec.DecodeSort(params)
	page := urlcodec.DecodePage(params)

	result, err := h.store.List(c.Request.Context(), postgres.ListQuery{
		Filters: group,
		Sorts:   sorts,
		Limit:   page.Size,
		Offset:  page.Offset(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c, dto.ListResponse[task.Task]{
		Data:       result.Items,
		Pagination: dto.NewPaginationResponse(page.Number, page.Size, result.TotalCount),
		Query:      urlcodec.EncodeQuery(group, sorts, page),
	})
}

// Get handles GET /tasks/:id.
func (h *TaskHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.HandleError(c, apperror.NewValidation("invalid task id"))
		return
	}

	t, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c, t)
}

// Fields handles GET /tasks/fields: the filterable field registry with the
// operator vocabulary per field, for filter form rendering.
func (h *TaskHandler) Fields(c *gin.Context) {
	type operatorInfo struct {
		Operator      string `json:"operator"`
		Label         string `json:"label"`
		RequiresValue bool   `json:"requiresValue"`
	}
	type fieldInfo struct {
		Field           string         `json:"field"`
		Type            string         `json:"type"`
		DefaultOperator string         `json:"defaultOperator"`
		UIComponent     string         `json:"uiComponent"`
		Operators       []operatorInfo `json:"operators"`
	}

	fields := make([]fieldInfo, 0, len(task.FieldTypes))
	for _, col := range task.Columns {
		t, ok := task.FieldTypes[col]
		if !ok {
			continue
		}
		def, ok := filter.Definition(t)
		if !ok {
			continue
		}
		ops := def.Operators()
		infos := make([]operatorInfo, len(ops))
		for i, op := range ops {
			infos[i] = operatorInfo{
				Operator:      op.String(),
				Label:         op.Label(),
				RequiresValue: op.RequiresValue(),
			}
		}
		fields = append(fields, fieldInfo{
			Field:           col,
			Type:            string(t),
			DefaultOperator: def.DefaultOperator().String(),
			UIComponent:     def.UIComponentHint(),
			Operators:       infos,
		})
	}

	h.OK(c, gin.H{"fields": fields})
}
