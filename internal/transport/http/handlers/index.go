package handlers

import "net/http"

const indexPage = "<p>API TEMPLATE EJS (localhost:3000)</p>" +
	"<p>Developed By : Vince Dale D. Alcantara</p>" +
	"<p>Version 1.0.0</p>"

func Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(indexPage))
}
