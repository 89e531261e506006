package httpadapter

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var openAPISpecYAML []byte

var (
	openAPIOnce sync.Once
	openAPIJSON []byte
	openAPIErr  error
)

// loadOpenAPISpec parses and validates the embedded contract on first use
// and caches the JSON rendering.
func loadOpenAPISpec() ([]byte, error) {
	openAPIOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(openAPISpecYAML)
		if err != nil {
			openAPIErr = fmt.Errorf("load openapi spec: %w", err)
			return
		}
		if err := doc.Validate(context.Background()); err != nil {
			openAPIErr = fmt.Errorf("validate openapi spec: %w", err)
			return
		}
		openAPIJSON, openAPIErr = doc.MarshalJSON()
	})
	return openAPIJSON, openAPIErr
}

func (rt *Router) openAPISpec(w http.ResponseWriter, _ *http.Request) {
	spec, err := loadOpenAPISpec()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec)
}
