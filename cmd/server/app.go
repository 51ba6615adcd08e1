package main

import (
	"net/http"

	"github.com/diewo77/go-freelance/internal/auth"
	"github.com/diewo77/go-freelance/internal/config"
	"github.com/diewo77/go-freelance/internal/handlers"
	"github.com/diewo77/go-freelance/internal/i18n"
	"github.com/diewo77/go-freelance/internal/money"
	"github.com/diewo77/go-freelance/internal/services"
	"github.com/diewo77/go-freelance/internal/view"
	"gorm.io/gorm"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux *http.ServeMux
	db  *gorm.DB
	cfg *config.Config
}

// NewApp creates a new application with all routes configured.
func NewApp(db *gorm.DB, cfg *config.Config) *App {
	app := &App{
		mux: http.NewServeMux(),
		db:  db,
		cfg: cfg,
	}

	defaultCurrency, ok := money.Supported(cfg.App.DefaultCurrency)
	if !ok {
		defaultCurrency = money.EUR
	}
	view.SetCurrencyResolver(func(r *http.Request) money.Code {
		if c, err := r.Cookie("currency"); err == nil {
			if code, ok := money.Supported(c.Value); ok {
				return code
			}
		}
		return defaultCurrency
	})

	app.setupRoutes()
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	handler := auth.Middleware(withPreferences(a.mux))
	handler.ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	invoiceService := services.NewInvoiceService(a.db)
	debtService := services.NewDebtService(a.db)
	financeService := services.NewFinanceService(a.db)
	timerService := services.NewTimerService(a.db)

	ah := handlers.NewAuthHandler(a.db)
	ch := handlers.NewClientHandler(a.db)
	ph := handlers.NewProjectHandler(a.db)
	th := handlers.NewTaskHandler(a.db)
	teh := handlers.NewTimeEntryHandler(a.db, timerService)
	ih := handlers.NewInvoiceHandler(a.db, invoiceService)
	eh := handlers.NewExpenseHandler(a.db)
	dh := handlers.NewDebtHandler(a.db, debtService)
	inh := handlers.NewIncomeHandler(a.db)
	fh := handlers.NewFinanceHandler(a.db, financeService)
	sh := handlers.NewSettingsHandler(a.db)

	// Public routes
	a.mux.HandleFunc("GET /", a.landingPage)
	a.mux.HandleFunc("GET /login", ah.Login)
	a.mux.HandleFunc("POST /login", ah.Login)
	a.mux.HandleFunc("GET /signup", ah.Signup)
	a.mux.HandleFunc("POST /signup", ah.Signup)
	a.mux.HandleFunc("GET /logout", ah.Logout)
	a.mux.HandleFunc("POST /logout", ah.Logout)

	// Dashboard
	a.mux.Handle("GET /dashboard", a.requireAuth(http.HandlerFunc(fh.Dashboard)))

	// Clients
	a.mux.Handle("GET /clients", a.requireAuth(http.HandlerFunc(ch.List)))
	a.mux.Handle("GET /clients/new", a.requireAuth(http.HandlerFunc(ch.New)))
	a.mux.Handle("POST /clients", a.requireAuth(http.HandlerFunc(ch.Create)))
	a.mux.Handle("GET /clients/{id}", a.requireAuth(http.HandlerFunc(ch.View)))
	a.mux.Handle("GET /clients/{id}/edit", a.requireAuth(http.HandlerFunc(ch.Edit)))
	a.mux.Handle("POST /clients/{id}", a.requireAuth(http.HandlerFunc(ch.Update)))
	a.mux.Handle("POST /clients/{id}/delete", a.requireAuth(http.HandlerFunc(ch.Delete)))

	// Projects
	a.mux.Handle("GET /projects", a.requireAuth(http.HandlerFunc(ph.List)))
	a.mux.Handle("GET /projects/new", a.requireAuth(http.HandlerFunc(ph.New)))
	a.mux.Handle("POST /projects", a.requireAuth(http.HandlerFunc(ph.Create)))
	a.mux.Handle("GET /projects/{id}", a.requireAuth(http.HandlerFunc(ph.View)))
	a.mux.Handle("GET /projects/{id}/edit", a.requireAuth(http.HandlerFunc(ph.Edit)))
	a.mux.Handle("POST /projects/{id}", a.requireAuth(http.HandlerFunc(ph.Update)))
	a.mux.Handle("POST /projects/{id}/delete", a.requireAuth(http.HandlerFunc(ph.Delete)))

	// Tasks
	a.mux.Handle("GET /tasks", a.requireAuth(http.HandlerFunc(th.List)))
	a.mux.Handle("GET /tasks/new", a.requireAuth(http.HandlerFunc(th.New)))
	a.mux.Handle("POST /tasks", a.requireAuth(http.HandlerFunc(th.Create)))
	a.mux.Handle("GET /tasks/{id}/edit", a.requireAuth(http.HandlerFunc(th.Edit)))
	a.mux.Handle("POST /tasks/{id}", a.requireAuth(http.HandlerFunc(th.Update)))
	a.mux.Handle("POST /tasks/{id}/status", a.requireAuth(http.HandlerFunc(th.UpdateStatus)))
	a.mux.Handle("POST /tasks/{id}/delete", a.requireAuth(http.HandlerFunc(th.Delete)))

	// Time tracking
	a.mux.Handle("GET /time", a.requireAuth(http.HandlerFunc(teh.List)))
	a.mux.Handle("POST /time", a.requireAuth(http.HandlerFunc(teh.Create)))
	a.mux.Handle("POST /time/start", a.requireAuth(http.HandlerFunc(teh.Start)))
	a.mux.Handle("POST /time/{id}/stop", a.requireAuth(http.HandlerFunc(teh.Stop)))
	a.mux.Handle("POST /time/{id}/delete", a.requireAuth(http.HandlerFunc(teh.Delete)))

	// Invoices
	a.mux.Handle("GET /invoices", a.requireAuth(http.HandlerFunc(ih.List)))
	a.mux.Handle("GET /invoices/new", a.requireAuth(http.HandlerFunc(ih.New)))
	a.mux.Handle("POST /invoices", a.requireAuth(http.HandlerFunc(ih.Create)))
	a.mux.Handle("GET /invoices/{id}", a.requireAuth(http.HandlerFunc(ih.View)))
	a.mux.Handle("POST /invoices/{id}/status", a.requireAuth(http.HandlerFunc(ih.UpdateStatus)))
	a.mux.Handle("POST /invoices/{id}/delete", a.requireAuth(http.HandlerFunc(ih.Delete)))

	// Expenses and categories
	a.mux.Handle("GET /expenses", a.requireAuth(http.HandlerFunc(eh.List)))
	a.mux.Handle("GET /expenses/new", a.requireAuth(http.HandlerFunc(eh.New)))
	a.mux.Handle("POST /expenses", a.requireAuth(http.HandlerFunc(eh.Create)))
	a.mux.Handle("GET /expenses/{id}/edit", a.requireAuth(http.HandlerFunc(eh.Edit)))
	a.mux.Handle("POST /expenses/{id}", a.requireAuth(http.HandlerFunc(eh.Update)))
	a.mux.Handle("POST /expenses/{id}/delete", a.requireAuth(http.HandlerFunc(eh.Delete)))
	a.mux.Handle("POST /expense-categories", a.requireAuth(http.HandlerFunc(eh.CreateCategory)))
	a.mux.Handle("POST /expense-categories/{id}/delete", a.requireAuth(http.HandlerFunc(eh.DeleteCategory)))

	// Debts
	a.mux.Handle("GET /debts", a.requireAuth(http.HandlerFunc(dh.List)))
	a.mux.Handle("GET /debts/new", a.requireAuth(http.HandlerFunc(dh.New)))
	a.mux.Handle("POST /debts", a.requireAuth(http.HandlerFunc(dh.Create)))
	a.mux.Handle("GET /debts/{id}", a.requireAuth(http.HandlerFunc(dh.View)))
	a.mux.Handle("POST /debts/{id}/payments", a.requireAuth(http.HandlerFunc(dh.RecordPayment)))
	a.mux.Handle("POST /debts/{id}/cancel", a.requireAuth(http.HandlerFunc(dh.Cancel)))
	a.mux.Handle("POST /debts/{id}/delete", a.requireAuth(http.HandlerFunc(dh.Delete)))

	// Income
	a.mux.Handle("GET /income", a.requireAuth(http.HandlerFunc(inh.List)))
	a.mux.Handle("GET /income/new", a.requireAuth(http.HandlerFunc(inh.New)))
	a.mux.Handle("POST /income", a.requireAuth(http.HandlerFunc(inh.Create)))
	a.mux.Handle("POST /income/{id}/delete", a.requireAuth(http.HandlerFunc(inh.Delete)))

	// Settings
	a.mux.Handle("GET /settings", a.requireAuth(http.HandlerFunc(sh.Edit)))
	a.mux.Handle("POST /settings", a.requireAuth(http.HandlerFunc(sh.Update)))

	// Static files
	a.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
}

// requireAuth wraps a handler to require authentication.
func (a *App) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok || userID == 0 {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withPreferences injects language and currency preferences from cookies/query.
func withPreferences(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		lang := "fr"
		if c, err := r.Cookie("lang"); err == nil && c.Value != "" {
			lang = c.Value
		}
		if q := r.URL.Query().Get("lang"); q != "" {
			lang = q
			http.SetCookie(w, &http.Cookie{
				Name:     "lang",
				Value:    lang,
				Path:     "/",
				MaxAge:   86400 * 365,
				HttpOnly: true,
			})
		}
		ctx = i18n.WithLang(ctx, lang)

		if q := r.URL.Query().Get("currency"); q != "" {
			if _, ok := money.Supported(q); ok {
				http.SetCookie(w, &http.Cookie{
					Name:     "currency",
					Value:    q,
					Path:     "/",
					MaxAge:   86400 * 365,
					HttpOnly: true,
				})
			}
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *App) landingPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	userID, loggedIn := auth.UserIDFromContext(r.Context())
	if loggedIn && userID != 0 {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	if err := view.Render(w, r, "index.html", nil); err != nil {
		http.Error(w, "Failed to render template: "+err.Error(), http.StatusInternalServerError)
	}
}
