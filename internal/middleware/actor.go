package middleware

import "github.com/gin-gonic/gin"

// ActorHeader names the header carrying the acting user's identifier.
// Authentication lives in front of this service; the header is trusted input.
const ActorHeader = "X-Actor-ID"

const defaultActor = "anonymous"

// GetActorID returns the acting user's identifier from the request, falling
// back to a fixed anonymous identity when the header is absent.
func GetActorID(c *gin.Context) string {
	if actor := c.GetHeader(ActorHeader); actor != "" {
		return actor
	}
	return defaultActor
}
