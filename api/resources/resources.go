// FilePath: api/resources/resources.go
package resources

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strconv"
	"time"

	"github.com/gorilla/schema"

	"github.com/agrotechfields/islehub/internal/config"
	"github.com/agrotechfields/islehub/internal/errors"
	"github.com/agrotechfields/islehub/internal/hubservice"
	"github.com/agrotechfields/islehub/internal/monitoring"
	"github.com/agrotechfields/islehub/internal/token"
	nuts "github.com/vaudience/go-nuts"
)

// Resources holds all HTTP resource handlers
type Resources struct {
	Auth     *AuthHandlers
	Isles    *IsleHandlers
	Measures *MeasureHandlers
	Users    *UserHandlers
	Images   *ImageHandlers
}

// NewResources creates a new Resources instance
func NewResources(svc *hubservice.HubService, codec *token.Codec, monitor *monitoring.Service, imageCfg config.ImageStoreConfig) *Resources {
	return &Resources{
		Auth:     &AuthHandlers{hubservice: svc, codec: codec, monitoring: monitor},
		Isles:    &IsleHandlers{hubservice: svc},
		Measures: &MeasureHandlers{hubservice: svc},
		Users:    &UserHandlers{hubservice: svc},
		Images:   &ImageHandlers{hubservice: svc, config: imageCfg},
	}
}

// queryDecoder decodes query-string filters. Unknown keys are ignored so
// pagination params can share the query string with filter structs.
var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	d.RegisterConverter(time.Time{}, func(value string) reflect.Value {
		t, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return reflect.Value{}
		}
		return reflect.ValueOf(t)
	})
	return d
}

// Helper functions

func getPaginationParams(r *http.Request) (offset, limit int) {
	query := r.URL.Query()
	offset, _ = strconv.Atoi(query.Get("offset"))
	limit, _ = strconv.Atoi(query.Get("limit"))

	if limit <= 0 || limit > 100 {
		limit = 50 // Default limit
	}
	if offset < 0 {
		offset = 0
	}

	return offset, limit
}

// respondWithError translates any error into the structured payload. Service
// errors keep their kind and status; anything else becomes an internal error.
func respondWithError(w http.ResponseWriter, err error, requestID string) {
	apiErr, ok := err.(*errors.APIError)
	if !ok {
		apiErr = errors.NewInternalError("internal server error", err)
	}
	apiErr = apiErr.WithRequestID(requestID)
	if apiErr.Type == errors.ErrorTypeInternal || apiErr.Type == errors.ErrorTypeDatabase {
		nuts.L.Errorf("[API] %s", apiErr.Error())
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Code)
	json.NewEncoder(w).Encode(apiErr)
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
