package contracts

import "github.com/gorilla/mux"

// Handler is anything that can mount its routes on the API router.
type Handler interface {
	RegisterRoutes(router *mux.Router)
}
