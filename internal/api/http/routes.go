package httpapi

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

const sessionHeader = "X-Session-ID"

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, defaultCity string) {
	v1 := app.Group("/api/v1")

	v1.Get("/geocode", func(c *fiber.Ctx) error {
		q, err := parsePlaceQuery(c, "")
		if err != nil {
			return err
		}

		place, err := service.Resolve(c.UserContext(), q.Query)
		if err != nil {
			return err
		}
		return c.JSON(place)
	})

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		q, err := parsePlaceQuery(c, "")
		if err != nil {
			return err
		}

		place, err := service.Resolve(c.UserContext(), q.Query)
		if err != nil {
			return err
		}
		current, err := service.GetCurrent(c.UserContext(), place)
		if err != nil {
			return err
		}
		return c.JSON(newCurrentView(current))
	})

	v1.Get("/weather/forecast", func(c *fiber.Ctx) error {
		var q forecastQuery
		if err := q.bind(c); err != nil {
			return err
		}

		place, err := service.Resolve(c.UserContext(), q.Query)
		if err != nil {
			return err
		}
		series, err := service.BuildSeries(c.UserContext(), place)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"place":    place,
			"forecast": series,
			"daily":    newDailyViews(weather.Truncate(weather.Summarize(series), q.Days)),
		})
	})

	v1.Get("/dashboard", func(c *fiber.Ctx) error {
		var q dashboardQuery
		if err := q.bind(c, defaultCity); err != nil {
			return err
		}

		c.Set(sessionHeader, q.Session)
		report, gen, err := service.SearchSession(c.UserContext(), q.Session, q.Query)
		if err != nil {
			return err
		}
		return c.JSON(newDashboardView(q.Session, gen, q.Query, report))
	})

	v1.Get("/dashboard/:session", func(c *fiber.Ctx) error {
		session := c.Params("session")
		if err := validate.Var(session, "required,uuid"); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
		}

		state, err := service.Latest(session)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no dashboard state for session")
			}
			return err
		}
		return c.JSON(state)
	})
}

// placeQuery holds the free-text place name of a request.
type placeQuery struct {
	Query string `validate:"required,max=200"`
}

func parsePlaceQuery(c *fiber.Ctx, def string) (placeQuery, error) {
	q := placeQuery{Query: strings.TrimSpace(c.Query("q"))}
	if q.Query == "" {
		q.Query = def
	}
	if err := validate.Struct(q); err != nil {
		return q, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return q, nil
}

// forecastQuery holds query parameters for the forecast endpoint.
type forecastQuery struct {
	Query string `validate:"required,max=200"`
	Days  int    `validate:"min=1,max=5"`
}

func (f *forecastQuery) bind(c *fiber.Ctx) error {
	pq, err := parsePlaceQuery(c, "")
	if err != nil {
		return err
	}
	f.Query = pq.Query
	f.Days = c.QueryInt("days", weather.ForecastDays)

	if err := validate.Struct(f); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

// dashboardQuery holds query parameters for a dashboard search.
type dashboardQuery struct {
	Query   string `validate:"required,max=200"`
	Session string `validate:"required,uuid"`
}

func (d *dashboardQuery) bind(c *fiber.Ctx, defaultCity string) error {
	pq, err := parsePlaceQuery(c, defaultCity)
	if err != nil {
		return err
	}
	d.Query = pq.Query

	d.Session = c.Query("session", c.Get(sessionHeader))
	if d.Session == "" {
		d.Session = uuid.NewString()
	}

	if err := validate.Struct(d); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}
