package search

import (
	"codeberg.org/openshelf/server/internal/llm"
	"github.com/gin-gonic/gin"
)

// registers the search endpoints. Each route is bound to one provider so
// query vectors are only ever compared against vectors from the same model.
func RegisterRoutes(router gin.IRoutes, searcher Searcher) {
	router.POST("/search/", SearchHandler(searcher, llm.ProviderOpenAISmall))
	router.POST("/search_ollama/", SearchHandler(searcher, llm.ProviderOllama))
}
