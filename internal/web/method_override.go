package web

import "net/http"

// MethodOverride lets HTML forms issue PUT and DELETE: a POST carrying a
// `_method` field is rewritten before routing. Only the two methods the
// forms use are honored.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if err := r.ParseForm(); err == nil {
				switch r.PostFormValue("_method") {
				case http.MethodPut:
					r.Method = http.MethodPut
				case http.MethodDelete:
					r.Method = http.MethodDelete
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}
