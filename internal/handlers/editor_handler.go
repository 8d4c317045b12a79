package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"union-site-backend/internal/blocks"
	"union-site-backend/internal/editor"
	"union-site-backend/internal/models"
	"union-site-backend/internal/service"
)

// EditorHandler drives block-editor sessions over HTTP: one session per
// open admin editing view, mutated through a small operation vocabulary.
type EditorHandler struct {
	service *service.EditorService
}

func NewEditorHandler(svc *service.EditorService) *EditorHandler {
	return &EditorHandler{service: svc}
}

type createSessionRequest struct {
	Kind    string           `json:"kind"`
	Content models.BlockList `json:"content"`
}

type editorOpRequest struct {
	Op        string `json:"op" binding:"required"`
	Index     int    `json:"index"`
	BlockType string `json:"block_type"`
	Field     string `json:"field"`
	Value     string `json:"value"`
	URL       string `json:"url"`
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	SelStart  int    `json:"sel_start"`
	SelEnd    int    `json:"sel_end"`
}

func (h *EditorHandler) Create(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.service.Create(req.Kind, req.Content)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, sessionState(session))
}

func (h *EditorHandler) Get(c *gin.Context) {
	session, err := h.session(c)
	if err != nil {
		return
	}
	c.JSON(http.StatusOK, sessionState(session))
}

// Apply executes one editing operation against the session.
func (h *EditorHandler) Apply(c *gin.Context) {
	session, err := h.session(c)
	if err != nil {
		return
	}

	var req editorOpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := applyOp(session.Editor, req); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, editor.ErrMinRows) || errors.Is(err, editor.ErrMinColumns) || errors.Is(err, editor.ErrNoSelection) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sessionState(session))
}

// Preview forces a refresh and returns the current preview markup. A
// render error keeps the previous markup and blocks submission.
func (h *EditorHandler) Preview(c *gin.Context) {
	session, err := h.session(c)
	if err != nil {
		return
	}

	session.Preview.Refresh()

	reply := gin.H{
		"html": session.Preview.HTML(),
		"ok":   session.Preview.Err() == nil,
	}
	if err := session.Preview.Err(); err != nil {
		reply["error"] = err.Error()
	}
	c.JSON(http.StatusOK, reply)
}

func (h *EditorHandler) Close(c *gin.Context) {
	if err := h.service.Close(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Editor session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session closed"})
}

// BlockTypes lists the available block schemas for the editor toolbar.
func (h *EditorHandler) BlockTypes(c *gin.Context) {
	types := blocks.Types()
	schemas := make([]blocks.Schema, 0, len(types))
	for _, t := range types {
		if schema, ok := blocks.SchemaFor(t); ok {
			schemas = append(schemas, schema)
		}
	}
	c.JSON(http.StatusOK, gin.H{"types": schemas})
}

func (h *EditorHandler) session(c *gin.Context) (*service.EditorSession, error) {
	session, err := h.service.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Editor session not found"})
		return nil, err
	}
	return session, nil
}

func sessionState(session *service.EditorSession) gin.H {
	ed := session.Editor
	widgets := make([]gin.H, 0, ed.Len())
	for i := 0; i < ed.Len(); i++ {
		w, err := ed.Widget(i)
		if err != nil {
			continue
		}
		widgets = append(widgets, gin.H{
			"id":    w.ID(),
			"type":  w.Type(),
			"block": w.Serialize(),
		})
	}

	return gin.H{
		"id":      session.ID,
		"widgets": widgets,
		"content": ed.Serialize(),
		"preview": session.Preview.HTML(),
	}
}

func applyOp(ed *editor.Editor, req editorOpRequest) error {
	switch req.Op {
	case "add":
		_, err := ed.AddBlock(req.BlockType)
		return err
	case "move_up":
		return ed.MoveUp(req.Index)
	case "move_down":
		return ed.MoveDown(req.Index)
	case "delete":
		return ed.Delete(req.Index)
	case "set_field":
		return ed.SetField(req.Index, req.Field, req.Value)
	case "focus":
		return ed.Focus(req.Index, req.Field, req.SelStart, req.SelEnd)
	case "bold":
		return ed.FormatBold()
	case "italic":
		return ed.FormatItalic()
	case "link":
		return ed.FormatLink(req.URL)
	case "table_focus":
		return ed.FocusTableCell(req.Index, req.Row, req.Col)
	case "table_set_cell":
		return ed.SetTableCell(req.Index, req.Row, req.Col, req.Value)
	case "table_add_row":
		return ed.TableAddRow(req.Index)
	case "table_add_column":
		return ed.TableAddColumn(req.Index)
	case "table_delete_row":
		return ed.TableDeleteRow(req.Index)
	case "table_delete_column":
		return ed.TableDeleteColumn(req.Index)
	case "table_toggle_headings":
		return ed.TableToggleHeadings(req.Index)
	default:
		return fmt.Errorf("unknown operation %q", req.Op)
	}
}
