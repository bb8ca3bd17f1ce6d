package main

import (
	"net/http"

	"popis/export"
	"popis/inventory"
	"popis/lists"
	"popis/masterdata"
	"popis/prefs"
	"popis/product"
)

// App bundles the services the routes are built from.
type App struct {
	Prefs      *prefs.Store
	MasterData *masterdata.Service
	Products   *product.Service
	Inventory  *inventory.Service
	Lists      *lists.Service
	Export     *export.Service
}

func SetupRoutes(mux *http.ServeMux, app *App) {

	mux.HandleFunc("POST /api/sync/upload", masterdata.SyncUploadHandler(app.MasterData))
	mux.HandleFunc("POST /api/config/store_code", masterdata.ChangeStoreCodeHandler(app.MasterData))

	mux.HandleFunc("GET /api/config", GetConfigHandler(app.Prefs))
	mux.HandleFunc("POST /api/config", UpdateConfigHandler(app.Prefs))

	mux.HandleFunc("GET /api/master/by_barcode/", product.ByBarcodeHandler(app.Products))
	mux.HandleFunc("GET /api/master/by_ident/", product.ByIdentHandler(app.Products))
	mux.HandleFunc("GET /api/master/by_alt/", product.ByAltIDHandler(app.Products))
	mux.HandleFunc("GET /api/master/units", product.UnitsHandler(app.Products))
	mux.HandleFunc("GET /api/master/damage_info", product.DamageInfoHandler(app.Products))
	mux.HandleFunc("GET /api/master/damage_desc/", product.DamageDescriptionHandler(app.Products))
	mux.HandleFunc("POST /api/master/search", product.SearchHandler(app.Products))

	mux.HandleFunc("POST /api/inventory/add", inventory.AddHandler(app.Inventory))
	mux.HandleFunc("POST /api/inventory/void", inventory.VoidHandler(app.Inventory))
	mux.HandleFunc("POST /api/inventory/update", inventory.UpdateHandler(app.Inventory))
	mux.HandleFunc("GET /api/inventory/item/", inventory.ItemHandler(app.Inventory))
	mux.HandleFunc("GET /api/inventory/recent", inventory.RecentHandler(app.Inventory))
	mux.HandleFunc("POST /api/inventory/search", inventory.SearchHandler(app.Inventory))
	mux.HandleFunc("POST /api/inventory/delete_all", inventory.DeleteAllHandler(app.Inventory))
	mux.HandleFunc("GET /api/inventory/exists", inventory.ExistsHandler(app.Inventory))

	mux.HandleFunc("GET /api/lists", lists.AllHandler(app.Lists))
	mux.HandleFunc("POST /api/lists/create", lists.CreateHandler(app.Lists))
	mux.HandleFunc("POST /api/lists/select", lists.SelectHandler(app.Lists))
	mux.HandleFunc("GET /api/lists/current", lists.CurrentHandler(app.Lists))
	mux.HandleFunc("GET /api/lists/exists", lists.ExistsHandler(app.Lists))

	mux.HandleFunc("POST /api/export", export.ExportHandler(app.Export))
}
