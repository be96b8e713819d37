// Package swaggerkit serves the OpenAPI document and Swagger UI under /api/docs
package swaggerkit

import (
	"net/http"

	phttp "spoilerguard/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	docsRoot = "/api/docs"
	docJSON  = docsRoot + "/doc.json"
)

// Options control the docs surface
type Options struct {
	Enabled bool
	// TitleSuffix is appended to info.title, e.g. an environment name
	TitleSuffix string
}

// Mount registers the UI and the JSON document when enabled
func Mount(r phttp.Router, o Options) {
	if !o.Enabled {
		return
	}
	r.Get(docsRoot, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, docsRoot+"/", http.StatusPermanentRedirect)
	})
	r.Get(docJSON, serveDocJSON(o.TitleSuffix))
	r.Handle(docsRoot+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName("spoilerguard"),
		httpSwagger.URL(docJSON),
	))
}
