package api

import "github.com/gin-gonic/gin"

// NewRouter wires middleware and routes onto a gin engine.
func NewRouter(app App, corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(CORSMiddleware(corsOrigins))

	r.GET("/hello", GetHello(app))
	r.POST("/habits", PostHabit(app))
	r.GET("/habits", GetHabits(app))
	r.PATCH("/habits/:id/toggle", PatchToggleHabit(app))
	r.GET("/day", GetDay(app))
	r.GET("/summary", GetSummary(app))

	return r
}
