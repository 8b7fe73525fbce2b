package server

func (s *Server) registerRoutes() {
	// Pages
	s.engine.GET("/", s.handleIndex)
	s.engine.GET("/preview/:name", s.handlePreview)

	api := s.engine.Group("/api/v1")
	{
		api.GET("/health", s.handleHealth)

		api.GET("/sets", s.handleListSets)
		api.GET("/sets/:name", s.handleGetSet)
		api.GET("/sets/:name/render", s.handleRender)

		write := api.Group("", requireToken(s.cfg.GetServer().Token))
		write.PUT("/sets/:name", s.handlePutSet)
		write.DELETE("/sets/:name", s.handleDeleteSet)
		write.POST("/sets/:name/gestures", s.handleGestures)
		write.POST("/sets/:name/widgets", s.handleAddWidget)
	}
}
