package sanitizer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/iancoleman/orderedmap"

	"github.com/dmitrymomot/storefront/pkg/logger"
)

// Refusal is the body sent when InjectionGuard rejects a request.
type Refusal struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

const (
	RefusalError   = "Suspicious request"
	RefusalMessage = "SQL injection patterns detected"
)

// Middleware replaces the request body, query string and chi path parameters
// with sanitized versions and always calls the next handler.
// JSON bodies keep their key order; form bodies are parsed and sanitized.
func Middleware(opts ...Option) func(http.Handler) http.Handler {
	o := newMiddlewareOptions(opts)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			hook := o.dropHook(r)

			if err := o.sanitizeBody(r, hook); err != nil {
				o.logger.WarnContext(ctx, "request body left unsanitized",
					logger.Component("sanitizer"),
					logger.Error(err),
				)
			}

			if r.URL != nil && r.URL.RawQuery != "" {
				r.URL.RawQuery = SanitizeValues(r.URL.Query(), WithDropHook(hook)).Encode()
			}

			if r.Form != nil {
				r.Form = SanitizeValues(r.Form, WithDropHook(hook))
			}
			if r.PostForm != nil {
				r.PostForm = SanitizeValues(r.PostForm, WithDropHook(hook))
			}

			if rctx := chi.RouteContext(ctx); rctx != nil {
				sanitizeRouteParams(&rctx.URLParams, hook)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// InjectionGuard rejects requests whose body looks like SQL injection with
// 400 and a Refusal body. Query and path parameters are not inspected.
func InjectionGuard(opts ...Option) func(http.Handler) http.Handler {
	o := newMiddlewareOptions(opts)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			payload, ok := o.bodyPayload(r)
			if ok && DetectInjection(payload) {
				o.logger.WarnContext(r.Context(), "suspicious request rejected",
					logger.Component("sanitizer"),
					logger.Event("injection_detected"),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				)
				writeRefusal(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeRefusal(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(Refusal{
		Success: false,
		Error:   RefusalError,
		Message: RefusalMessage,
	})
}

func (o *middlewareOptions) dropHook(r *http.Request) DropHook {
	return func(key string, reason DropReason) {
		o.logger.WarnContext(r.Context(), "dropped request key",
			logger.Component("sanitizer"),
			slog.String("key", key),
			slog.String("reason", string(reason)),
		)
	}
}

// sanitizeBody rewrites JSON and urlencoded bodies in place.
func (o *middlewareOptions) sanitizeBody(r *http.Request, hook DropHook) error {
	switch bodyKind(r) {
	case kindJSON:
		raw, err := o.readBody(r)
		if err != nil || len(bytes.TrimSpace(raw)) == 0 {
			return err
		}

		decoded, err := decodeJSON(raw)
		if err != nil {
			// Leave malformed bodies for the binder to reject.
			return nil
		}

		sanitized, err := json.Marshal(SanitizeStructure(decoded, WithDropHook(hook)))
		if err != nil {
			return fmt.Errorf("encode sanitized body: %w", err)
		}
		replaceBody(r, sanitized)
		return nil

	case kindForm:
		raw, err := o.readBody(r)
		if err != nil || len(raw) == 0 {
			return err
		}

		values, err := url.ParseQuery(string(raw))
		if err != nil {
			return nil
		}

		replaceBody(r, []byte(SanitizeValues(values, WithDropHook(hook)).Encode()))
		return nil
	}
	return nil
}

// bodyPayload returns the decoded body for injection scanning and restores
// the body for downstream handlers.
func (o *middlewareOptions) bodyPayload(r *http.Request) (any, bool) {
	kind := bodyKind(r)
	if kind == kindOther {
		return nil, false
	}

	raw, err := o.readBody(r)
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil, false
	}

	if kind == kindForm {
		values, err := url.ParseQuery(string(raw))
		if err != nil {
			return string(raw), true
		}
		return values, true
	}

	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return string(raw), true
	}
	return payload, true
}

// readBody reads the whole body and puts an identical reader back.
func (o *middlewareOptions) readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, o.maxBodySize+1))
	_ = r.Body.Close()
	if err != nil {
		replaceBody(r, raw)
		return nil, errors.Join(ErrBodyReadFailed, err)
	}
	if int64(len(raw)) > o.maxBodySize {
		replaceBody(r, raw)
		return nil, ErrBodyTooLarge
	}

	r.Body = io.NopCloser(bytes.NewReader(raw))
	return raw, nil
}

func replaceBody(r *http.Request, body []byte) {
	r.Body = io.NopCloser(bytes.NewReader(body))
	r.ContentLength = int64(len(body))
	r.Header.Set("Content-Length", strconv.Itoa(len(body)))
}

var errTrailingJSON = errors.New("trailing data after json value")

// decodeJSON decodes raw into ordered maps, slices and scalars. Object key
// order is kept and numbers stay json.Number so integers beyond float64
// precision survive re-encoding.
func decodeJSON(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errTrailingJSON
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		m := orderedmap.New()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, _ := keyTok.(string)
			item, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			m.Set(key, item)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return m, nil

	case '[':
		items := []any{}
		for dec.More() {
			item, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return items, nil
	}
	return nil, fmt.Errorf("unexpected json delimiter %q", delim)
}

func sanitizeRouteParams(params *chi.RouteParams, hook DropHook) {
	keys := make([]string, 0, len(params.Keys))
	values := make([]string, 0, len(params.Values))
	for i, key := range params.Keys {
		if reason, drop := KeyDropReason(key); drop {
			hook(key, reason)
			continue
		}
		value := ""
		if i < len(params.Values) {
			value = StripString(params.Values[i])
		}
		keys = append(keys, key)
		values = append(values, value)
	}
	params.Keys = keys
	params.Values = values
}

type contentKind int

const (
	kindOther contentKind = iota
	kindJSON
	kindForm
)

func bodyKind(r *http.Request) contentKind {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return kindOther
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return kindOther
	}
	switch {
	case mediaType == "application/json", strings.HasSuffix(mediaType, "+json"):
		return kindJSON
	case mediaType == "application/x-www-form-urlencoded":
		return kindForm
	}
	return kindOther
}
