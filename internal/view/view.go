// Package view renders HTML templates with the shared layout and helpers.
package view

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/diewo77/go-freelance/internal/auth"
	"github.com/diewo77/go-freelance/internal/i18n"
	"github.com/diewo77/go-freelance/internal/money"
)

var (
	baseDir  string
	once     sync.Once
	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}

	langResolver     = func(r *http.Request) string { return i18n.LangFromContext(r.Context()) }
	currencyResolver = func(_ *http.Request) money.Code { return money.EUR }
)

// SetLangResolver lets the host app provide a custom language resolver.
func SetLangResolver(f func(*http.Request) string) {
	if f != nil {
		langResolver = f
	}
}

// SetCurrencyResolver lets the host app resolve the display currency
// (typically from a cookie) for the money template helpers.
func SetCurrencyResolver(f func(*http.Request) money.Code) {
	if f != nil {
		currencyResolver = f
	}
}

func detectBase() {
	candidates := []string{"templates", "../templates", "../../templates"}
	for _, c := range candidates {
		if fi, err := os.Stat(filepath.Clean(c)); err == nil && fi.IsDir() {
			baseDir = filepath.Clean(c)
			return
		}
	}
	baseDir = "templates"
}

// SetBaseDir overrides the template base directory (useful for tests).
func SetBaseDir(path string) {
	if path == "" {
		return
	}
	baseDir = filepath.Clean(path)
	once = sync.Once{}
}

// ResetForTests clears caches and forces base dir detection to rerun.
func ResetForTests() {
	tplCache.Lock()
	tplCache.m = map[string]*template.Template{}
	tplCache.Unlock()
	baseDir = ""
	once = sync.Once{}
}

// Funcs returns the standard func map shared by all templates.
func Funcs(r *http.Request) template.FuncMap {
	lang := langResolver(r)
	currency := currencyResolver(r)
	return template.FuncMap{
		"t":    func(code string) string { return i18n.T(lang, code) },
		"lang": func() string { return lang },
		"year": func() int { return time.Now().Year() },
		"money": func(amount float64) string {
			return money.Format(money.Convert(amount, money.EUR, currency), currency)
		},
		"moneyCompact": func(amount float64) string {
			return money.FormatCompact(money.Convert(amount, money.EUR, currency), currency)
		},
		"date": func(t time.Time) string { return t.Format("02/01/2006") },
		"dateptr": func(t *time.Time) string {
			if t == nil {
				return "—"
			}
			return t.Format("02/01/2006")
		},
		"duration": func(minutes *int) string {
			if minutes == nil {
				return "0h 00min"
			}
			return fmt.Sprintf("%dh %02dmin", *minutes/60, *minutes%60)
		},
		"asset": func(rel string) string { return versionedAsset(rel) },
		"list": func(values ...string) []string { return values },
		"deref": func(p *uint) uint {
			if p == nil {
				return 0
			}
			return *p
		},
		// dict creates a map from key-value pairs for sub-templates.
		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			m := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				m[key] = values[i+1]
			}
			return m
		},
	}
}

// versionedAsset returns /static/<name>?v=<hash> for cache busting.
func versionedAsset(rel string) string {
	if strings.HasPrefix(rel, "http://") || strings.HasPrefix(rel, "https://") || strings.HasPrefix(rel, "//") {
		return rel
	}
	b, err := os.ReadFile(filepath.Join("static", rel))
	if err != nil {
		return "/static/" + rel
	}
	h := sha1.Sum(b)
	return "/static/" + rel + "?v=" + fmt.Sprintf("%x", h[:8])
}

// Render parses and executes a template file with the shared layout.
// name is relative to the templates dir (e.g. "clients/index.html").
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	if baseDir == "" {
		once.Do(detectBase)
	}
	if data == nil {
		data = map[string]any{}
	}
	if _, exists := data["Year"]; !exists {
		data["Year"] = time.Now().Year()
	}
	if _, exists := data["IsLoggedIn"]; !exists {
		_, loggedIn := auth.UserIDFromContext(r.Context())
		data["IsLoggedIn"] = loggedIn
	}

	devMode := os.Getenv("DEV") == "1"
	if !devMode {
		tplCache.RLock()
		cached, ok := tplCache.m[name]
		tplCache.RUnlock()
		if ok && cached != nil {
			// Funcs close over the request language and currency, so the
			// cached tree is cloned and rebound per request.
			t, err := cached.Clone()
			if err != nil {
				return err
			}
			return t.Funcs(Funcs(r)).Execute(w, data)
		}
	}

	mainPath := filepath.Join(baseDir, name)
	if _, err := os.Stat(mainPath); err != nil {
		return err
	}

	funcMap := Funcs(r)
	var t *template.Template

	// Pages providing a full document skip the layout wrapping.
	contentBytes, _ := os.ReadFile(mainPath)
	useLayout := !bytes.Contains(bytes.ToLower(contentBytes), []byte("<!doctype"))

	layoutPath := filepath.Join(baseDir, "layout.html")
	if useLayout {
		if fi, err := os.Stat(layoutPath); err != nil || fi.IsDir() {
			useLayout = false
		}
	}
	if useLayout {
		parsed, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, mainPath)
		if err != nil {
			return err
		}
		t = parsed
	} else {
		parsed, err := template.New(filepath.Base(mainPath)).Funcs(funcMap).ParseFiles(mainPath)
		if err != nil {
			return err
		}
		t = parsed
	}

	if !devMode {
		tplCache.Lock()
		tplCache.m[name] = t
		tplCache.Unlock()
		// Clone fails on a template that has executed, so the cached tree
		// must stay pristine. Every execution, including this first one,
		// runs on a clone.
		exec, err := t.Clone()
		if err != nil {
			return err
		}
		t = exec
	}
	return t.Execute(w, data)
}
