package panel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"liftsim/src/elev"
	"liftsim/src/types"
)

const shutdownTimeout = 2 * time.Second

// Controller is the side of the executor the panel talks to.
type Controller interface {
	Submit(ctx context.Context, btn types.ButtonEvent) (bool, error)
	State(ctx context.Context) (elev.Snapshot, error)
}

type pressResponse struct {
	Button   string `json:"button"`
	Accepted bool   `json:"accepted"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// NewRouter returns the panel routes: cabin and hall buttons, the car state and a health check.
func NewRouter(ctrl Controller, numFloors int) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	h := &handler{ctrl: ctrl, numFloors: numFloors}
	router.POST("/cabin/:floor", h.pressCabin)
	router.POST("/hall/:floor/:dir", h.pressHall)
	router.GET("/state", h.getState)
	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

type handler struct {
	ctrl      Controller
	numFloors int
}

// /cabin/5
func (h *handler) pressCabin(c *gin.Context) {
	floor, ok := h.floorParam(c)
	if !ok {
		return
	}
	h.press(c, types.ButtonEvent{Floor: floor, Button: types.BT_Cab})
}

// /hall/5/up
func (h *handler) pressHall(c *gin.Context) {
	floor, ok := h.floorParam(c)
	if !ok {
		return
	}
	var button types.ButtonType
	switch c.Param("dir") {
	case "up":
		button = types.BT_HallUp
	case "down":
		button = types.BT_HallDown
	default:
		c.JSON(http.StatusBadRequest, errorResponse{Message: fmt.Sprintf("direction must be up or down, got %q", c.Param("dir"))})
		return
	}
	h.press(c, types.ButtonEvent{Floor: floor, Button: button})
}

func (h *handler) press(c *gin.Context, btn types.ButtonEvent) {
	accepted, err := h.ctrl.Submit(c.Request.Context(), btn)
	if err != nil {
		unavailable(c, err)
		return
	}
	// Requests the dispatch policy ignores are still acknowledged.
	c.JSON(http.StatusAccepted, pressResponse{Button: btn.String(), Accepted: accepted})
}

func (h *handler) getState(c *gin.Context) {
	snap, err := h.ctrl.State(c.Request.Context())
	if err != nil {
		unavailable(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *handler) floorParam(c *gin.Context) (int, bool) {
	floor, err := strconv.Atoi(c.Param("floor"))
	if err != nil || floor < 1 || floor > h.numFloors {
		c.JSON(http.StatusBadRequest, errorResponse{Message: fmt.Sprintf("floor must be between 1 and %d, got %q", h.numFloors, c.Param("floor"))})
		return 0, false
	}
	return floor, true
}

func unavailable(c *gin.Context, err error) {
	slog.Warn("Panel request failed", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusServiceUnavailable, errorResponse{Message: err.Error()})
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("Panel request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start))
	}
}

// Serve runs the panel on addr until ctx is cancelled, then shuts it down.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Panel listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("panel server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down panel: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("panel server: %w", err)
	}
	return nil
}
