package api

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourname/habittracker/internal/service"
)

func parseDateParam(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("missing 'date' query parameter")
	}
	if t, err := time.ParseInLocation("2006-01-02", value, time.UTC); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func GetDay(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		date, err := parseDateParam(c.Query("date"))
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid date")
			return
		}

		detail, err := service.GetDayDetail(c.Request.Context(), app.HabitRepo(), app.DayRepo(), date)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch day detail")
			return
		}

		HandleSuccess(c, app.Logger(), 200, detail, nil)
	}
}

func GetSummary(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		summaries, err := service.Summary(c.Request.Context(), app.HabitRepo(), app.DayRepo())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to compute summary")
			return
		}
		HandleSuccess(c, app.Logger(), 200, summaries, nil)
	}
}

func GetHello(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		HandleSuccess(c, app.Logger(), 200, gin.H{"result": "Hello World!"}, nil)
	}
}
