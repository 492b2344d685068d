package middleware

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimit limits requests per client IP. rate uses the limiter format, e.g. "100-M".
func RateLimit(rate string) (fiber.Handler, error) {
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, err
	}
	instance := limiter.New(memory.NewStore(), r)

	return func(c *fiber.Ctx) error {
		ctx, err := instance.Get(c.UserContext(), c.IP())
		if err != nil {
			slog.Error("rate limiter", "error", err)
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.FormatInt(ctx.Limit, 10))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(ctx.Remaining, 10))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(ctx.Reset, 10))

		if ctx.Reached {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many requests"})
		}
		return c.Next()
	}, nil
}
