// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
)

// notFound is registered for both [chi.Mux.NotFound] and
// [chi.Mux.MethodNotAllowed].
//
// Chi answers 405 when a path is known but the method is not. Reporting 404
// instead keeps unsupported methods from revealing which paths exist. Chi
// calls this handler only after routing failed, so it never dispatches the
// request again.
func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, ErrRouteNotFound, "no route for request")
}
