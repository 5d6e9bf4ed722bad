package server

import (
	"errors"
	"net/http"

	"github.com/danmuck/cotyledon/internal/garden"
	"github.com/danmuck/cotyledon/internal/observability"
	"github.com/gin-gonic/gin"
)

// Every signature fault gets this same body.
const lostGardenMessage = "A locust swarm has eaten all of your crops! Make sure you don't modify your garden and just let nature run its course."

const internalMessage = "internal server error"

// respondError maps garden errors to statuses. Internal detail is logged and
// never written to the response.
func (g *Garden) respondError(c *gin.Context, err error) {
	logger := g.requestLogger(c)
	switch {
	case errors.Is(err, garden.ErrInvalidPlantType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, garden.ErrInvalidSignature):
		fault, _ := garden.FaultOf(err)
		logger.Warn().Str("fault", fault.String()).Err(err).Msg("garden rejected")
		observability.RecordSignatureRejection(g.Name, fault.String())
		c.JSON(http.StatusForbidden, gin.H{"error": lostGardenMessage})
	default:
		logger.Error().Err(err).Msg("internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalMessage})
	}
}
