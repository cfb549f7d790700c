package health

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// DBPinger abstracts the record-store connection check.
type DBPinger interface {
	Ping() error
}

// SearchPinger abstracts the search-index health check.
type SearchPinger interface {
	Health() error
}

// Handlers holds dependencies for the health endpoint.
type Handlers struct {
	DB     DBPinger
	Rdb    *redis.Client
	Search SearchPinger
}

// JSON reports per-dependency status. Degraded dependencies do not fail the
// request; callers read the body.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	deps := fiber.Map{}

	deps["database"] = depStatus(h.DB != nil, func() error { return h.DB.Ping() })
	deps["redis"] = depStatus(h.Rdb != nil, func() error {
		return h.Rdb.Ping(context.Background()).Err()
	})
	deps["search"] = depStatus(h.Search != nil, func() error { return h.Search.Health() })

	status := "ok"
	for _, v := range deps {
		if v != "ok" {
			status = "degraded"
			break
		}
	}

	return c.JSON(fiber.Map{
		"service":      "gearshare-api",
		"status":       status,
		"dependencies": deps,
	})
}

func depStatus(configured bool, ping func() error) string {
	if !configured {
		return "not configured"
	}
	if err := ping(); err != nil {
		return "down: " + err.Error()
	}
	return "ok"
}
