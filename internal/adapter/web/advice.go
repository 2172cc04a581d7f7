// Package web adapts the failure translator to gin.
package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resultguard/internal/platform/metrics"
	"resultguard/internal/shared"
	"resultguard/internal/translate"
)

// Advice is the final error funnel for a gin engine. Handlers report
// failures with c.Error (or return them through Handle) and Advice renders
// the first one as a result envelope.
type Advice struct {
	tr           *translate.Translator
	metrics      *metrics.Metrics
	mirrorStatus bool
}

// Option configures Advice.
type Option func(*Advice)

// WithMetrics counts every translated failure.
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Advice) { a.metrics = m }
}

// WithMirrorStatus sends the result code as the HTTP status when it is a
// known status. By default every envelope is sent with 200.
func WithMirrorStatus(on bool) Option {
	return func(a *Advice) { a.mirrorStatus = on }
}

// NewAdvice creates Advice around tr.
func NewAdvice(tr *translate.Translator, opts ...Option) *Advice {
	a := &Advice{tr: tr}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Middleware recovers panics and translates the first error recorded on
// the context. It must be installed before any handler that can fail.
// Every failure is translated, logged and counted; the envelope is only
// written when the handler has not written a response yet.
func (a *Advice) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if v := recover(); v != nil {
				if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(v)
				}
				a.respond(c, shared.Recovered(v))
			}
		}()

		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		a.respond(c, c.Errors[0].Err)
	}
}

// NoRoute reports unknown paths as RouteNotFound.
func (a *Advice) NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = c.Error(shared.RouteNotFound(c.Request.Method, c.Request.URL.Path))
	}
}

// NoMethod reports methods a route does not accept. It only fires when the
// engine has HandleMethodNotAllowed set.
func (a *Advice) NoMethod() gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = c.Error(shared.UnsupportedMethod(c.Request.Method, c.Request.URL.Path))
	}
}

func (a *Advice) respond(c *gin.Context, err error) {
	res, rec := a.tr.TranslateContext(c.Request.Context(), err)
	a.metrics.ObserveFailure(rec.Kind.String(), rec.Code)
	c.Abort()
	if c.Writer.Written() {
		return
	}
	c.JSON(a.status(res.Code), res)
}

func (a *Advice) status(code int) int {
	if a.mirrorStatus && http.StatusText(code) != "" {
		return code
	}
	return http.StatusOK
}

// HandlerFunc is a gin handler that reports failure by returning it.
type HandlerFunc func(c *gin.Context) error

// Handle adapts h to gin, recording a returned error for Advice.
func Handle(h HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h(c); err != nil {
			_ = c.Error(err)
			c.Abort()
		}
	}
}

// OK writes a successful envelope.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, translate.Result{Code: http.StatusOK, Message: "ok", Data: data, Success: true})
}
