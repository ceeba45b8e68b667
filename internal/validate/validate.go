package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// sortColumns is the only set of values a client may order listings by.
var sortColumns = map[string]string{
	"nombre":                "p.nombre",
	"precio_publico":        "p.precio_publico",
	"created_at":            "p.created_at",
	"stock_actual":          "p.stock_actual",
	"calificacion_promedio": "calificacion_promedio",
}

var roles = map[string]bool{
	"user":      true,
	"admin":     true,
	"webmaster": true,
}

// OrderBy maps client sort parameters onto a safe ORDER BY clause. Anything
// outside the allow-list falls back to newest-first.
func OrderBy(orden, direccion string) string {
	col, ok := sortColumns[orden]
	dir := strings.ToUpper(strings.TrimSpace(direccion))
	if !ok || (dir != "ASC" && dir != "DESC") {
		return "p.created_at DESC"
	}
	return col + " " + dir
}

// Rol reports whether s is one of the fixed role values.
func Rol(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, roles[s]
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Pagina parses a 1-based page number, defaulting to 1.
func Pagina(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Limite parses a page size, defaulting to 20 and clamped to 100.
func Limite(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 20
	}
	if n > 100 {
		return 100
	}
	return n
}

// Bool parses an optional boolean query parameter; nil means absent.
func Bool(s string) *bool {
	switch strings.TrimSpace(s) {
	case "true", "1":
		v := true
		return &v
	case "false", "0":
		v := false
		return &v
	}
	return nil
}

// ID parses a numeric row id.
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n, err == nil && n > 0
}

// Float parses an optional numeric query parameter; nil means absent.
func Float(s string) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &f
}
