package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
)

// ParseEnum reads an optional query parameter that must be one of allowed.
// An absent parameter yields "" and true; an invalid one answers 400 and yields false.
func ParseEnum(w http.ResponseWriter, r *http.Request, logger *slog.Logger, key string, allowed ...string) (string, bool) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return "", true
	}
	if !slices.Contains(allowed, value) {
		RespondError(w, logger, http.StatusBadRequest,
			fmt.Sprintf("Invalid %s: %s, expected one of %s", key, value, strings.Join(allowed, ", ")))
		return "", false
	}
	return value, true
}

// ParseList collects a list parameter given either repeated (?ids=a&ids=b) or comma separated (?ids=a,b).
// It returns nil when the parameter is absent and an empty non-nil slice when it is present but blank.
func ParseList(r *http.Request, key string) []string {
	raw, ok := r.URL.Query()[key]
	if !ok {
		return nil
	}
	list := make([]string, 0, len(raw))
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				list = append(list, part)
			}
		}
	}
	return list
}
