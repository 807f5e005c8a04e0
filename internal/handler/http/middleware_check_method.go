// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/warehouse-keeper/internal/utils"
)

// CheckHTTPMethod is meant for [chi.Mux.MethodNotAllowed].
//
// chi calls it only when the path matched a route but the method did not.
// It answers 404 with the standard {"message": ...} body instead of chi's
// bare 405, so callers cannot tell which routes exist.
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod)
func CheckHTTPMethod(w http.ResponseWriter, r *http.Request) {
	utils.WriteMessage(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
}
