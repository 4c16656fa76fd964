package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the catalog resources on rg.
func RegisterRoutes(rg *gin.RouterGroup, authors *AuthorHandler, genres *GenreHandler, books *BookHandler) {
	a := rg.Group("/authors")
	{
		a.GET("", authors.GetAll)
		a.POST("", authors.Create)
		a.GET("/:id", authors.GetByID)
		a.PUT("/:id", authors.Update)
		a.DELETE("/:id", authors.Delete)
	}

	g := rg.Group("/genres")
	{
		g.GET("", genres.GetAll)
		g.POST("", genres.Create)
		g.GET("/:id", genres.GetByID)
		g.PUT("/:id", genres.Update)
		g.DELETE("/:id", genres.Delete)
	}

	b := rg.Group("/books")
	{
		b.GET("", books.GetAll)
		b.POST("", books.Create)
		b.GET("/search/title", books.SearchByTitle())
		b.GET("/search/author", books.SearchByAuthor())
		b.GET("/search/genre", books.SearchByGenre())
		b.GET("/:id", books.GetByID)
		b.PUT("/:id", books.Update)
		b.DELETE("/:id", books.Delete)
	}
}
