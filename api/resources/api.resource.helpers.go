package resources

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	"github.com/itsatony/stationhub/api/middleware"
	"github.com/itsatony/stationhub/internal/access"
	"github.com/itsatony/stationhub/internal/errors"
	"github.com/swaggo/swag"
	nuts "github.com/vaudience/go-nuts"
)

var formDecoder = newFormDecoder()

func newFormDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	d.RegisterConverter(time.Time{}, convertTime)
	return d
}

// convertTime accepts plain dates from HTML date inputs as well as RFC3339
func convertTime(value string) reflect.Value {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return reflect.ValueOf(t)
		}
	}
	return reflect.Value{}
}

// decodeInput fills dst from a JSON body or from form values. Empty form values
// are dropped so optional fields stay unset. An empty body decodes to the zero input.
func decodeInput(r *http.Request, dst interface{}) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseForm(); err != nil {
			return errors.NewValidationError("invalid form body", err)
		}
		if err := formDecoder.Decode(dst, nonEmpty(r.PostForm)); err != nil {
			return errors.NewValidationError("invalid form values", err)
		}
		return nil
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && err != io.EOF {
		return errors.NewValidationError("invalid request body", err)
	}
	return nil
}

func nonEmpty(values url.Values) url.Values {
	out := url.Values{}
	for key, vals := range values {
		for _, v := range vals {
			if strings.TrimSpace(v) != "" {
				out.Add(key, v)
			}
		}
	}
	return out
}

func pathID(r *http.Request) string {
	return mux.Vars(r)["id"]
}

func actorOf(r *http.Request) *access.Actor {
	return middleware.ActorFromContext(r.Context())
}

// queryInt returns the integer query parameter or def when absent or malformed
func queryInt(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return def
	}
	return v
}

// handleServiceError answers with the status the error maps to
func handleServiceError(w http.ResponseWriter, err error, requestID string) {
	respondWithError(w, errors.As(err).WithRequestID(requestID))
}

func respondWithError(w http.ResponseWriter, err *errors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	json.NewEncoder(w).Encode(err)
	if err.Code >= http.StatusInternalServerError {
		nuts.L.Errorf("[API] %s", err.Error())
		return
	}
	nuts.L.Warnf("[API] %s", err.Error())
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// SwaggerDoc serves the registered OpenAPI document
func SwaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		respondWithError(w, errors.NewNotFoundError("api documentation not registered", err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, doc)
}
