package web

import (
	"encoding/base64"
	"net/http"
	"strings"

	vm "github.com/ericfisherdev/trainerpanel/internal/adapter/driving/web/viewmodel"
)

const flashCookieName = "flash"

// setFlash stores an alert to be shown by the next rendered page.
func setFlash(w http.ResponseWriter, alert vm.AlertViewModel) {
	kind := "i"
	if alert.IsError {
		kind = "e"
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    kind + ":" + base64.RawURLEncoding.EncodeToString([]byte(alert.Message)),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// popFlash returns the pending alert, if any, and clears it.
func popFlash(w http.ResponseWriter, r *http.Request) vm.AlertViewModel {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return vm.AlertViewModel{}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	kind, encoded, ok := strings.Cut(cookie.Value, ":")
	if !ok {
		return vm.AlertViewModel{}
	}
	msg, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return vm.AlertViewModel{}
	}
	return vm.AlertViewModel{Message: string(msg), IsError: kind == "e"}
}
