package handlers

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/atelierhq/atelier-api/internal/navstack"
	"github.com/atelierhq/atelier-api/internal/services"
	"github.com/atelierhq/atelier-api/internal/session"
)

// DrawerHandler exposes the drawer navigation stack over HTTP. Each UI
// session owns one stack; every mutation returns the resulting drawer state
// so the client can render without a follow-up request.
type DrawerHandler struct {
	svcs     *services.Services
	sessions *session.Store

	mu      sync.Mutex
	loaders map[string]*services.RevalidatingLoader[any]
}

func NewDrawerHandler(svcs *services.Services, sessions *session.Store) *DrawerHandler {
	return &DrawerHandler{
		svcs:     svcs,
		sessions: sessions,
		loaders:  make(map[string]*services.RevalidatingLoader[any]),
	}
}

// pushRequest is the body for Push. Entity carries optional seed data the
// client already has (e.g. the clicked list row) so the drawer renders
// immediately while fresh data loads.
type pushRequest struct {
	EntityType string `json:"entity_type" binding:"required"`
	EntityID   uint   `json:"entity_id"`
	Entity     any    `json:"entity"`
	Mode       string `json:"mode"`
}

// drawerState is the response shape for every drawer endpoint.
type drawerState struct {
	Open      bool            `json:"open"`
	Depth     int             `json:"depth"`
	Title     string          `json:"title"`
	CanGoBack bool            `json:"can_go_back"`
	Top       *navstack.Frame `json:"top,omitempty"`
}

// @Summary Create Drawer Session
// @Description Register a new drawer session for a UI instance
// @Tags Drawer
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Security BearerAuth
// @Router /drawer/sessions [post]
func (h *DrawerHandler) CreateSession(c *gin.Context) {
	sess := h.sessions.Create()
	c.JSON(http.StatusCreated, gin.H{"session_id": sess.ID})
}

// @Summary Drawer State
// @Description Get the current drawer state for a session
// @Tags Drawer
// @Produce json
// @Param sid path string true "Session ID"
// @Success 200 {object} drawerState
// @Security BearerAuth
// @Router /drawer/{sid} [get]
func (h *DrawerHandler) State(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, stateOf(sess.Stack))
}

// @Summary Push Frame
// @Description Push a frame onto the drawer stack; existing entities are refreshed in the background style
// @Tags Drawer
// @Accept json
// @Produce json
// @Param sid path string true "Session ID"
// @Param frame body pushRequest true "Frame to push"
// @Success 200 {object} drawerState
// @Security BearerAuth
// @Router /drawer/{sid}/push [post]
func (h *DrawerHandler) Push(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req pushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entityType := navstack.EntityType(req.EntityType)
	switch entityType {
	case navstack.EntityClient, navstack.EntityProject, navstack.EntityInvoice,
		navstack.EntityIncome, navstack.EntityExpense:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown entity type"})
		return
	}

	sess.Stack.Push(entityType, req.EntityID, req.Entity, navstack.Mode(req.Mode))

	// Existing entities get a fresh fetch; the seed (whatever the client
	// already had) stays on screen until it lands. A stale fetch result
	// from an earlier push never wins.
	if req.EntityID != 0 {
		var seed *any
		if req.Entity != nil {
			seed = &req.Entity
		}
		err := h.loader(sess.ID).Load(c.Request.Context(), seed,
			func(ctx context.Context) (any, error) {
				return h.fetchEntity(ctx, entityType, req.EntityID)
			},
			func(entity any) {
				sess.Stack.RefreshTop(entityType, req.EntityID, entity)
			})
		if err != nil {
			respondServiceError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, stateOf(sess.Stack))
}

// @Summary Pop Frame
// @Description Remove the top frame; the drawer closes when the stack empties
// @Tags Drawer
// @Produce json
// @Param sid path string true "Session ID"
// @Success 200 {object} drawerState
// @Security BearerAuth
// @Router /drawer/{sid}/pop [post]
func (h *DrawerHandler) Pop(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	sess.Stack.Pop()
	c.JSON(http.StatusOK, stateOf(sess.Stack))
}

// @Summary Back
// @Description Unwind one frame, or demote a lone edit frame to view
// @Tags Drawer
// @Produce json
// @Param sid path string true "Session ID"
// @Success 200 {object} drawerState
// @Security BearerAuth
// @Router /drawer/{sid}/back [post]
func (h *DrawerHandler) Back(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	sess.Stack.Back()
	c.JSON(http.StatusOK, stateOf(sess.Stack))
}

// @Summary Set Mode
// @Description Switch the top frame between view and edit without changing depth
// @Tags Drawer
// @Accept json
// @Produce json
// @Param sid path string true "Session ID"
// @Success 200 {object} drawerState
// @Security BearerAuth
// @Router /drawer/{sid}/mode [post]
func (h *DrawerHandler) SetMode(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var body struct {
		Mode string `json:"mode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess.Stack.SetMode(navstack.Mode(body.Mode))
	c.JSON(http.StatusOK, stateOf(sess.Stack))
}

// @Summary Cancel Edit
// @Description Revert the top frame to view mode; a new-entity frame is popped
// @Tags Drawer
// @Produce json
// @Param sid path string true "Session ID"
// @Success 200 {object} drawerState
// @Security BearerAuth
// @Router /drawer/{sid}/cancel [post]
func (h *DrawerHandler) CancelEdit(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	sess.Stack.CancelEdit()
	c.JSON(http.StatusOK, stateOf(sess.Stack))
}

// @Summary Replace Top Frame
// @Description Swap in saved entity data after a successful create or update
// @Tags Drawer
// @Accept json
// @Produce json
// @Param sid path string true "Session ID"
// @Success 200 {object} drawerState
// @Security BearerAuth
// @Router /drawer/{sid}/replace_top [post]
func (h *DrawerHandler) ReplaceTop(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var body struct {
		EntityID uint `json:"entity_id" binding:"required"`
		Entity   any  `json:"entity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess.Stack.ReplaceTop(body.EntityID, body.Entity)
	c.JSON(http.StatusOK, stateOf(sess.Stack))
}

// @Summary Close Drawer
// @Description Clear the stack and close the drawer
// @Tags Drawer
// @Produce json
// @Param sid path string true "Session ID"
// @Success 200 {object} drawerState
// @Security BearerAuth
// @Router /drawer/{sid}/close [post]
func (h *DrawerHandler) Close(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	sess.Stack.CloseAll()
	c.JSON(http.StatusOK, stateOf(sess.Stack))
}

// @Summary Delete Drawer Session
// @Description Remove a drawer session entirely
// @Tags Drawer
// @Produce json
// @Param sid path string true "Session ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /drawer/{sid} [delete]
func (h *DrawerHandler) DeleteSession(c *gin.Context) {
	sid := c.Param("sid")
	h.sessions.Delete(sid)

	h.mu.Lock()
	delete(h.loaders, sid)
	h.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"message": "Session deleted"})
}

func (h *DrawerHandler) session(c *gin.Context) (*session.Session, bool) {
	sess, ok := h.sessions.Get(c.Param("sid"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown session"})
		return nil, false
	}
	return sess, true
}

func (h *DrawerHandler) loader(sid string) *services.RevalidatingLoader[any] {
	h.mu.Lock()
	defer h.mu.Unlock()
	l, ok := h.loaders[sid]
	if !ok {
		l = &services.RevalidatingLoader[any]{}
		h.loaders[sid] = l
	}
	return l
}

// fetchEntity loads fresh data for a pushed frame. Clients and projects get
// their full detail aggregate; the rest load the record itself.
func (h *DrawerHandler) fetchEntity(ctx context.Context, t navstack.EntityType, id uint) (any, error) {
	switch t {
	case navstack.EntityClient:
		return h.svcs.Clients.Detail(ctx, id)
	case navstack.EntityProject:
		return h.svcs.Projects.Detail(ctx, id)
	case navstack.EntityInvoice:
		return h.svcs.Invoices.Get(ctx, id)
	case navstack.EntityIncome:
		return h.svcs.Incomes.Get(ctx, id)
	default:
		return h.svcs.Expenses.Get(ctx, id)
	}
}

func stateOf(s *navstack.Stack) drawerState {
	st := drawerState{
		Open:      s.IsOpen(),
		Depth:     s.Depth(),
		Title:     s.Title(),
		CanGoBack: s.CanGoBack(),
	}
	if top, ok := s.Top(); ok {
		st.Top = &top
	}
	return st
}
