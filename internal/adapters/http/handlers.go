package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// requiredFloat parses a mandatory float query parameter.
func requiredFloat(c *fiber.Ctx, name string) (float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, fmt.Errorf("%s query parameter is required", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", name, raw)
	}
	return v, nil
}

// ClassifyHandler evaluates one cation/anion radius pair.
func ClassifyHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cation, err := requiredFloat(c, "cation")
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		anion, err := requiredFloat(c, "anion")
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		result, err := deps.Classifier.Evaluate(c.UserContext(), cation, anion)
		if err != nil {
			return errClassification(c, err)
		}

		return c.JSON(result)
	}
}

// TableHandler returns the full ordered stability table.
func TableHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// The table is process-wide constant data.
		c.Set("Cache-Control", "public, max-age=86400, immutable")
		return c.JSON(deps.Classifier.Table())
	}
}

// SweepHandler returns the r/R curve for a fixed cation radius over an
// anion radius range. Range and resolution default to the configured
// simulator sliders.
func SweepHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cation, err := requiredFloat(c, "cation")
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		minAnion := c.QueryFloat("min_anion", deps.Simulator.AnionMin)
		maxAnion := c.QueryFloat("max_anion", deps.Simulator.AnionMax)
		steps := c.QueryInt("steps", deps.Simulator.SweepSteps)

		points, err := deps.Classifier.Sweep(c.UserContext(), cation, minAnion, maxAnion, steps)
		if err != nil {
			return errClassification(c, err)
		}

		return c.JSON(points)
	}
}
