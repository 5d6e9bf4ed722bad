package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/danmuck/cotyledon/internal/auth"
	"github.com/danmuck/cotyledon/internal/garden"
	"github.com/danmuck/cotyledon/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxBodyBytes = 1 << 20

type sowRequest struct {
	PlantType string             `json:"plant_type"`
	Garden    garden.SignedState `json:"garden"`
}

type plantInfo struct {
	Name     string `json:"name"`
	GrowTime uint64 `json:"grow_time"`
}

func (g *Garden) RegisterRoutes() {
	g.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(g.Appeared).String(),
			"service": g.Name,
			"version": "0.1.0",
		})
	})

	g.router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ready":   g.gardener.Catalog().Len() > 0,
			"uptime":  time.Since(g.Appeared).String(),
			"service": g.Name,
			"plants":  g.gardener.Catalog().Len(),
		})
	})

	metrics := []gin.HandlerFunc{gin.WrapH(promhttp.Handler())}
	if g.metricsToken != "" {
		metrics = append([]gin.HandlerFunc{auth.RequireToken(auth.StaticToken{Token: g.metricsToken})}, metrics...)
	}
	g.router.GET("/metrics", metrics...)

	g.router.GET("/plants", g.listPlants)
	g.router.GET("/plants/:name", g.plantInfo)
	g.router.POST("/plants/isRipe", g.isRipe)
	g.router.POST("/sow", g.sow)
}

func (g *Garden) listPlants(c *gin.Context) {
	c.JSON(http.StatusOK, g.gardener.Catalog().Names())
}

func (g *Garden) plantInfo(c *gin.Context) {
	name := c.Param("name")
	growTime, ok := g.gardener.Catalog().Lookup(name)
	if !ok {
		g.respondError(c, &garden.PlantTypeError{Name: name})
		return
	}
	c.JSON(http.StatusOK, plantInfo{Name: name, GrowTime: uint64(growTime / time.Second)})
}

func (g *Garden) isRipe(c *gin.Context) {
	var plant garden.Plant
	if err := decodeJSON(c, &plant); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ripeness, err := g.gardener.Ripeness(plant)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ripeness)
}

func (g *Garden) sow(c *gin.Context) {
	var req sowRequest
	if err := decodeJSON(c, &req); err != nil {
		observability.RecordSow(g.Name, "bad_request", 0)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logger := g.requestLogger(c)
	ctx := logger.WithContext(c.Request.Context())
	state, err := g.gardener.Sow(ctx, req.Garden, req.PlantType)
	if err != nil {
		observability.RecordSow(g.Name, sowOutcome(err), 0)
		g.respondError(c, err)
		return
	}

	observability.RecordSow(g.Name, "ok", state.Plot.Len())
	c.JSON(http.StatusOK, state)
}

// decodeJSON reads exactly one JSON value from the request body.
func decodeJSON(c *gin.Context, out any) error {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("invalid request body: trailing data")
	}
	return nil
}

func sowOutcome(err error) string {
	switch {
	case errors.Is(err, garden.ErrInvalidPlantType):
		return "invalid_plant_type"
	case errors.Is(err, garden.ErrInvalidSignature):
		return "invalid_signature"
	default:
		return "internal"
	}
}
