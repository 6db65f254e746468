// Package webapp exposes the calculator as a JSON over HTTP API.
package webapp

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/charithe/notation/pkg/calculator"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const defaultMaxBodyBytes = 1 << 20

// Evaluator evaluates a single expression.
type Evaluator interface {
	Evaluate(ctx context.Context, n calculator.Notation, expression string) (calculator.Number, error)
}

type evaluateRequest struct {
	Expression string `json:"expression"`
}

type evaluateResponse struct {
	Result calculator.Number `json:"result"`
}

type errorResponse struct {
	Message string `json:"message"`
}

type statusResponse struct {
	Status string `json:"status"`
}

// Handler serves the calculator routes.
type Handler struct {
	router       *httprouter.Router
	eval         Evaluator
	maxBodyBytes int64
}

// Option configures a Handler.
type Option func(*Handler)

// WithMaxBodyBytes caps the size of request bodies. Zero or less disables
// the cap.
func WithMaxBodyBytes(n int64) Option {
	return func(h *Handler) {
		h.maxBodyBytes = n
	}
}

// New creates the handler and registers its routes.
func New(eval Evaluator, opts ...Option) *Handler {
	h := &Handler{
		router:       httprouter.New(),
		eval:         eval,
		maxBodyBytes: defaultMaxBodyBytes,
	}

	for _, opt := range opts {
		opt(h)
	}

	h.router.GET("/status/", h.handleStatus)
	h.router.POST("/calculator/prefix/", h.handleEvaluate(calculator.Prefix))
	h.router.POST("/calculator/infix/", h.handleEvaluate(calculator.Infix))

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "Webapp is running."})
}

func (h *Handler) handleEvaluate(n calculator.Notation) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		body := r.Body
		if h.maxBodyBytes > 0 {
			body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
		}

		var req evaluateRequest
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Message: "Request body must be a JSON object with an \"expression\" field.",
			})
			return
		}

		result, err := h.eval.Evaluate(r.Context(), n, req.Expression)
		if err != nil {
			writeJSON(w, httpStatus(err), errorResponse{Message: calculator.UserMessage(n, err)})
			return
		}

		writeJSON(w, http.StatusOK, evaluateResponse{Result: result})
	}
}

func httpStatus(err error) int {
	cause := errors.Cause(err)
	switch {
	case calculator.IsInputError(cause):
		return http.StatusBadRequest
	case cause == calculator.ErrExpressionTooLong:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.S().Warnw("Failed to write response", "error", err)
	}
}
