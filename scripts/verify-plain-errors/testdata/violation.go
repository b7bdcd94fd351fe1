package violation

import "net/http"

func handler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	http.Error(w, "nope", http.StatusInternalServerError)
}
