package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"smartfinance/internal/auth"
	authctrl "smartfinance/internal/auth/controller"
	backupctrl "smartfinance/internal/backup/controller"
	"smartfinance/internal/config"
	ledgerctrl "smartfinance/internal/ledger/controller"
	productctrl "smartfinance/internal/product/controller"
	receiptctrl "smartfinance/internal/receipt/controller"
	reportctrl "smartfinance/internal/report/controller"
	"smartfinance/internal/respond"
	salectrl "smartfinance/internal/sale/controller"
	orderctrl "smartfinance/internal/serviceorder/controller"
	stockctrl "smartfinance/internal/stockentry/controller"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Controllers struct {
	Auth         *authctrl.AuthController
	Products     *productctrl.ProductController
	StockEntries *stockctrl.StockEntryController
	Sales        *salectrl.SaleController
	Services     *orderctrl.ServiceOrderController
	Cash         *ledgerctrl.CashController
	Reports      *reportctrl.ReportController
	Receipts     *receiptctrl.ReceiptController
	Backup       *backupctrl.BackupController
}

func NewRouter(cfg config.ServerConfig, ctrls Controllers, sessions *auth.Manager, db Pinger, logger *zap.Logger) http.Handler {
	out := respond.NewWriter(logger)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(RequestID)
	r.Use(AccessLog(logger))
	r.Use(CORS(cfg.AllowedOrigin))
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	r.Get("/health", health(db, out))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", ctrls.Auth.Login)
		r.Post("/auth/logout", ctrls.Auth.Logout)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(sessions, out))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", ctrls.Products.List)
				r.Post("/", ctrls.Products.Create)
				r.Get("/{id}", ctrls.Products.Get)
				r.Put("/{id}", ctrls.Products.Update)
				r.Delete("/{id}", ctrls.Products.Delete)
			})

			r.Route("/stock-entries", func(r chi.Router) {
				r.Get("/", ctrls.StockEntries.List)
				r.Post("/", ctrls.StockEntries.Create)
				r.Get("/{id}", ctrls.StockEntries.Get)
				r.Put("/{id}", ctrls.StockEntries.Update)
				r.Delete("/{id}", ctrls.StockEntries.Delete)
			})

			r.Route("/sales", func(r chi.Router) {
				r.Get("/", ctrls.Sales.List)
				r.Post("/", ctrls.Sales.Create)
				r.Get("/{id}", ctrls.Sales.Get)
				r.Put("/{id}", ctrls.Sales.Update)
				r.Delete("/{id}", ctrls.Sales.Delete)
				r.Get("/{id}/receipt", ctrls.Receipts.Sale)
			})

			r.Route("/services", func(r chi.Router) {
				r.Get("/", ctrls.Services.List)
				r.Post("/", ctrls.Services.Create)
				r.Get("/{id}", ctrls.Services.Get)
				r.Put("/{id}", ctrls.Services.Update)
				r.Delete("/{id}", ctrls.Services.Delete)
				r.Get("/{id}/receipt", ctrls.Receipts.Service)
				r.Post("/{id}/print", ctrls.Receipts.PrintService)
			})

			r.Route("/cash", func(r chi.Router) {
				r.Get("/", ctrls.Cash.List)
				r.Post("/", ctrls.Cash.Create)
				r.Get("/balance", ctrls.Cash.Balance)
				r.Delete("/{id}", ctrls.Cash.Delete)
			})

			r.Get("/reports", ctrls.Reports.Get)

			r.Get("/backup", ctrls.Backup.Download)
			r.Post("/restore", ctrls.Backup.Restore)
		})
	})

	return r
}

func health(db Pinger, out *respond.Writer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			out.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		out.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
