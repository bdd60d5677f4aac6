package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourname/habittracker/internal/service"
)

func PostHabit(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body service.HabitRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		app.Logger().Infof("Parsed HabitRequest: %+v", body)

		habit, err := service.CreateHabit(c.Request.Context(), app.HabitRepo(), &body)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to create habit")
			return
		}

		HandleSuccess(c, app.Logger(), 201, habit, nil)
	}
}

func GetHabits(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		habits, err := service.ListHabits(c.Request.Context(), app.HabitRepo())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch habits")
			return
		}
		HandleSuccess(c, app.Logger(), 200, habits, nil)
	}
}

func PatchToggleHabit(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		habitID := c.Param("id")

		completed, err := service.ToggleHabit(c.Request.Context(), app.HabitRepo(), app.DayRepo(), habitID, time.Now())
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to toggle habit")
			return
		}

		HandleSuccess(c, app.Logger(), 200, gin.H{"completed": completed}, nil)
	}
}
