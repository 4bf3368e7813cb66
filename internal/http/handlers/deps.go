package handlers

import (
	"github.com/jmoiron/sqlx"

	"altindan/internal/repos"
	"altindan/internal/services"
)

type Deps struct {
	CatalogHandler *CatalogHandler
	OrderHandler   *OrderHandler
	APIHandler     *APIHandler
}

func NewDeps(db *sqlx.DB, webURL string, notifier services.Notifier) *Deps {
	prodRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo)
	orderSvc := services.NewOrderService(catalogSvc, orderRepo, notifier)

	return &Deps{
		CatalogHandler: &CatalogHandler{Catalog: catalogSvc, WebURL: webURL},
		OrderHandler:   &OrderHandler{Catalog: catalogSvc, Orders: orderSvc},
		APIHandler:     &APIHandler{Orders: orderSvc},
	}
}
