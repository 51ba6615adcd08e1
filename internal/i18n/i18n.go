// Package i18n provides the fr/en translation table for UI labels.
// French is the product's default language.
package i18n

import (
	"context"
	"strings"
)

type ctxKey struct{}

// WithLang stores the language in context.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ctxKey{}, lang)
}

// LangFromContext retrieves the language from context, defaulting to "fr".
func LangFromContext(ctx context.Context) string {
	if lang, ok := ctx.Value(ctxKey{}).(string); ok && lang != "" {
		return lang
	}
	return "fr"
}

// DetectLanguage picks a supported language from an Accept-Language header.
func DetectLanguage(header string) string {
	h := strings.ToLower(header)
	if strings.HasPrefix(h, "en") {
		return "en"
	}
	return "fr"
}

var translations = map[string]map[string]string{
	"fr": {
		// Validation codes
		"required":               "Requis",
		"must_be_positive":       "Doit être positif",
		"must_not_be_negative":   "Ne peut pas être négatif",
		"out_of_range":           "Hors limites",
		"invalid":                "Invalide",
		"invalid_date":           "Date invalide",
		"invalid_amount":         "Montant invalide",
		"amount_exceeds_balance": "Le montant dépasse le solde restant",
		"debt_closed":            "Cette dette n'accepte plus de paiements",
		"timer_running":          "Un chronomètre est déjà en cours",
		"form.invalid":           "Le formulaire contient des erreurs",

		// Navigation
		"nav.dashboard": "Tableau de bord",
		"nav.clients":   "Clients",
		"nav.projects":  "Projets",
		"nav.tasks":     "Tâches",
		"nav.time":      "Temps",
		"nav.invoices":  "Factures",
		"nav.expenses":  "Dépenses",
		"nav.income":    "Revenus",
		"nav.debts":     "Dettes",
		"nav.settings":  "Paramètres",
		"nav.login":     "Connexion",
		"nav.signup":    "Inscription",
		"nav.logout":    "Déconnexion",

		"landing.title":    "Gérez votre activité freelance",
		"landing.subtitle": "Clients, projets, factures et finances au même endroit",

		// Auth
		"auth.login":        "Connexion",
		"auth.signup":       "Inscription",
		"auth.email":        "Email",
		"auth.password":     "Mot de passe",
		"auth.name":         "Nom",
		"auth.no_account":   "Pas encore de compte ?",
		"auth.have_account": "Déjà un compte ?",

		// Generic actions and fields
		"action.create": "Créer",
		"action.save":   "Enregistrer",
		"action.edit":   "Modifier",
		"action.delete": "Supprimer",
		"action.search": "Rechercher",
		"action.filter": "Filtrer",
		"list.empty":    "Aucun élément",
		"filter.all":    "Tous",

		"field.description": "Description",
		"field.notes":       "Notes",
		"field.status":      "Statut",
		"field.date":        "Date",
		"field.amount":      "Montant",
		"field.currency":    "Devise",
		"field.start_date":  "Date de début",
		"field.end_date":    "Date de fin",

		// Clients
		"client.new":     "Nouveau client",
		"client.edit":    "Modifier le client",
		"client.name":    "Nom",
		"client.company": "Entreprise",
		"client.email":   "Email",
		"client.phone":   "Téléphone",
		"client.address": "Adresse",

		// Projects
		"project.new":              "Nouveau projet",
		"project.edit":             "Modifier le projet",
		"project.name":             "Nom du projet",
		"project.value":            "Valeur attendue",
		"project.fixed_price":      "Prix fixe",
		"project.budget":           "Budget",
		"project.hourly_rate":      "Taux horaire",
		"project.status.draft":     "Brouillon",
		"project.status.active":    "Actif",
		"project.status.paused":    "Pausé",
		"project.status.completed": "Terminé",

		// Tasks
		"task.new":                 "Nouvelle tâche",
		"task.edit":                "Modifier la tâche",
		"task.title":               "Titre",
		"task.priority":            "Priorité",
		"task.due_date":            "Échéance",
		"task.estimated_hours":     "Heures estimées",
		"task.status.todo":         "À faire",
		"task.status.in_progress":  "En cours",
		"task.status.review":       "En révision",
		"task.status.done":         "Terminé",
		"task.priority.low":        "Basse",
		"task.priority.medium":     "Moyenne",
		"task.priority.high":       "Haute",
		"task.priority.urgent":     "Urgente",

		// Time tracking
		"time.start":         "Démarrer",
		"time.stop":          "Arrêter",
		"time.running":       "En cours",
		"time.running_since": "Chronomètre démarré à",
		"time.duration":      "Durée",
		"time.tracked":       "Temps suivi",

		// Invoices
		"invoice.new":              "Nouvelle facture",
		"invoice.number":           "Numéro",
		"invoice.issue_date":       "Date d'émission",
		"invoice.due_date":         "Date d'échéance",
		"invoice.items":            "Lignes",
		"invoice.quantity":         "Quantité",
		"invoice.unit_price":       "Prix unitaire",
		"invoice.subtotal":         "Sous-total",
		"invoice.tax":              "TVA",
		"invoice.tax_rate":         "Taux de TVA",
		"invoice.total":            "Total",
		"invoice.update_status":    "Changer le statut",
		"invoice.status.draft":     "Brouillon",
		"invoice.status.sent":      "Envoyée",
		"invoice.status.paid":      "Payée",
		"invoice.status.overdue":   "En retard",
		"invoice.status.cancelled": "Annulée",

		// Expenses
		"expense.new":        "Nouvelle dépense",
		"expense.edit":       "Modifier la dépense",
		"expense.category":   "Catégorie",
		"expense.categories": "Catégories",
		"expense.method":     "Moyen de paiement",
		"expense.total":      "Total des dépenses",
		"expense.business":   "Dépense professionnelle",

		"payment.cash":          "Espèces",
		"payment.card":          "Carte",
		"payment.bank_transfer": "Virement bancaire",
		"payment.mobile_money":  "Mobile Money",
		"payment.other":         "Autre",

		// Debts
		"debt.new":            "Nouvelle dette",
		"debt.person":         "Personne",
		"debt.contact":        "Contact",
		"debt.paid":           "Payé",
		"debt.remaining":      "Restant",
		"debt.due_date":       "Échéance",
		"debt.outstanding":    "Total dû",
		"debt.record_payment": "Enregistrer un paiement",
		"debt.cancel":         "Annuler la dette",
		"debt.payments":       "Paiements",
		"debt.status.pending":   "En attente",
		"debt.status.partial":   "Partiel",
		"debt.status.paid":      "Payée",
		"debt.status.cancelled": "Annulée",

		// Income
		"income.new":       "Nouveau revenu",
		"income.source":    "Source",
		"income.total":     "Total des revenus",
		"income.auto":      "Facture",
		"income.recurring": "Récurrent",

		// Periods
		"period.all":        "Tout",
		"period.week":       "Cette semaine",
		"period.month":      "Ce mois",
		"period.last_month": "Mois dernier",
		"period.year":       "Cette année",

		// Finance dashboard
		"finance.paid_revenue":      "Revenus encaissés",
		"finance.pending_revenue":   "Revenus en attente",
		"finance.projected_revenue": "Revenus prévisionnels",
		"finance.expenses":          "Dépenses",
		"finance.manual_income":     "Revenus manuels",
		"finance.net_balance":       "Solde net",
		"finance.pending_debts":     "Dettes en attente",
		"finance.recent_expenses":   "Dépenses récentes",
		"finance.recent_income":     "Revenus récents",
		"finance.open_debts":        "Dettes ouvertes",

		// Settings
		"settings.company_name":    "Nom de l'entreprise",
		"settings.company_tagline": "Slogan",
		"settings.company_email":   "Email",
		"settings.company_phone":   "Téléphone",
		"settings.company_address": "Adresse",
		"settings.company_website": "Site web",
	},
	"en": {
		"required":               "Required",
		"must_be_positive":       "Must be positive",
		"must_not_be_negative":   "Must not be negative",
		"out_of_range":           "Out of range",
		"invalid":                "Invalid",
		"invalid_date":           "Invalid date",
		"invalid_amount":         "Invalid amount",
		"amount_exceeds_balance": "Amount exceeds the remaining balance",
		"debt_closed":            "This debt no longer accepts payments",
		"timer_running":          "A timer is already running",
		"form.invalid":           "The form contains errors",

		"nav.dashboard": "Dashboard",
		"nav.clients":   "Clients",
		"nav.projects":  "Projects",
		"nav.tasks":     "Tasks",
		"nav.time":      "Time",
		"nav.invoices":  "Invoices",
		"nav.expenses":  "Expenses",
		"nav.income":    "Income",
		"nav.debts":     "Debts",
		"nav.settings":  "Settings",
		"nav.login":     "Log in",
		"nav.signup":    "Sign up",
		"nav.logout":    "Log out",

		"landing.title":    "Run your freelance business",
		"landing.subtitle": "Clients, projects, invoices and finances in one place",

		"auth.login":        "Log in",
		"auth.signup":       "Sign up",
		"auth.email":        "Email",
		"auth.password":     "Password",
		"auth.name":         "Name",
		"auth.no_account":   "No account yet?",
		"auth.have_account": "Already have an account?",

		"action.create": "Create",
		"action.save":   "Save",
		"action.edit":   "Edit",
		"action.delete": "Delete",
		"action.search": "Search",
		"action.filter": "Filter",
		"list.empty":    "Nothing here",
		"filter.all":    "All",

		"field.description": "Description",
		"field.notes":       "Notes",
		"field.status":      "Status",
		"field.date":        "Date",
		"field.amount":      "Amount",
		"field.currency":    "Currency",
		"field.start_date":  "Start date",
		"field.end_date":    "End date",

		"client.new":     "New client",
		"client.edit":    "Edit client",
		"client.name":    "Name",
		"client.company": "Company",
		"client.email":   "Email",
		"client.phone":   "Phone",
		"client.address": "Address",

		"project.new":              "New project",
		"project.edit":             "Edit project",
		"project.name":             "Project name",
		"project.value":            "Expected value",
		"project.fixed_price":      "Fixed price",
		"project.budget":           "Budget",
		"project.hourly_rate":      "Hourly rate",
		"project.status.draft":     "Draft",
		"project.status.active":    "Active",
		"project.status.paused":    "Paused",
		"project.status.completed": "Completed",

		"task.new":                "New task",
		"task.edit":               "Edit task",
		"task.title":              "Title",
		"task.priority":           "Priority",
		"task.due_date":           "Due date",
		"task.estimated_hours":    "Estimated hours",
		"task.status.todo":        "To do",
		"task.status.in_progress": "In progress",
		"task.status.review":      "In review",
		"task.status.done":        "Done",
		"task.priority.low":       "Low",
		"task.priority.medium":    "Medium",
		"task.priority.high":      "High",
		"task.priority.urgent":    "Urgent",

		"time.start":         "Start",
		"time.stop":          "Stop",
		"time.running":       "Running",
		"time.running_since": "Timer started at",
		"time.duration":      "Duration",
		"time.tracked":       "Tracked time",

		"invoice.new":              "New invoice",
		"invoice.number":           "Number",
		"invoice.issue_date":       "Issue date",
		"invoice.due_date":         "Due date",
		"invoice.items":            "Items",
		"invoice.quantity":         "Quantity",
		"invoice.unit_price":       "Unit price",
		"invoice.subtotal":         "Subtotal",
		"invoice.tax":              "Tax",
		"invoice.tax_rate":         "Tax rate",
		"invoice.total":            "Total",
		"invoice.update_status":    "Update status",
		"invoice.status.draft":     "Draft",
		"invoice.status.sent":      "Sent",
		"invoice.status.paid":      "Paid",
		"invoice.status.overdue":   "Overdue",
		"invoice.status.cancelled": "Cancelled",

		"expense.new":        "New expense",
		"expense.edit":       "Edit expense",
		"expense.category":   "Category",
		"expense.categories": "Categories",
		"expense.method":     "Payment method",
		"expense.total":      "Total expenses",
		"expense.business":   "Business expense",

		"payment.cash":          "Cash",
		"payment.card":          "Card",
		"payment.bank_transfer": "Bank transfer",
		"payment.mobile_money":  "Mobile money",
		"payment.other":         "Other",

		"debt.new":              "New debt",
		"debt.person":           "Person",
		"debt.contact":          "Contact",
		"debt.paid":             "Paid",
		"debt.remaining":        "Remaining",
		"debt.due_date":         "Due date",
		"debt.outstanding":      "Total outstanding",
		"debt.record_payment":   "Record payment",
		"debt.cancel":           "Cancel debt",
		"debt.payments":         "Payments",
		"debt.status.pending":   "Pending",
		"debt.status.partial":   "Partial",
		"debt.status.paid":      "Paid",
		"debt.status.cancelled": "Cancelled",

		"income.new":       "New income",
		"income.source":    "Source",
		"income.total":     "Total income",
		"income.auto":      "Invoice",
		"income.recurring": "Recurring",

		"period.all":        "All time",
		"period.week":       "This week",
		"period.month":      "This month",
		"period.last_month": "Last month",
		"period.year":       "This year",

		"finance.paid_revenue":      "Paid revenue",
		"finance.pending_revenue":   "Pending revenue",
		"finance.projected_revenue": "Projected revenue",
		"finance.expenses":          "Expenses",
		"finance.manual_income":     "Manual income",
		"finance.net_balance":       "Net balance",
		"finance.pending_debts":     "Pending debts",
		"finance.recent_expenses":   "Recent expenses",
		"finance.recent_income":     "Recent income",
		"finance.open_debts":        "Open debts",

		"settings.company_name":    "Company name",
		"settings.company_tagline": "Tagline",
		"settings.company_email":   "Email",
		"settings.company_phone":   "Phone",
		"settings.company_address": "Address",
		"settings.company_website": "Website",
	},
}

// T translates a code for a language. Unknown languages fall back to
// French; unknown codes fall back to the code itself.
func T(lang, code string) string {
	if m, ok := translations[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := translations["fr"][code]; ok {
		return s
	}
	return code
}
