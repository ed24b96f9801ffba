package handler

import (
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

type emptyResponse struct {
	status int
}

func (e emptyResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.WriteHeader(e.status)
	return nil
}

// Empty responds 204 No Content.
func Empty() Response {
	return emptyResponse{status: http.StatusNoContent}
}

func EmptyWithStatus(status int) Response {
	return emptyResponse{status: status}
}

type redirectResponse struct {
	url string
}

func (rr redirectResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		return datastar.NewSSE(w, r).Redirect(rr.url)
	}
	http.Redirect(w, r, rr.url, http.StatusSeeOther)
	return nil
}

// Redirect answers 303 See Other, or a datastar redirect script.
func Redirect(url string) Response {
	return redirectResponse{url: url}
}

type errorResponse struct {
	err error
}

func (e errorResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return e.err
}

// Error hands err to the error handler configured on Wrap, which picks the
// JSON, toast or page presentation for the client.
func Error(err error) Response {
	return errorResponse{err: err}
}
