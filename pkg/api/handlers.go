package api

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/flowviz/pkg/buildinfo"
	"github.com/matzehuels/flowviz/pkg/errors"
	"github.com/matzehuels/flowviz/pkg/pipeline"
)

// Response headers.
const (
	HeaderRenderID = "X-Render-ID"
	HeaderCache    = "X-Cache"
)

type errorBody struct {
	Code      errors.Code  `json:"code"`
	Stage     errors.Stage `json:"stage,omitempty"`
	Message   string       `json:"message"`
	RequestID string       `json:"request_id,omitempty"`
}

type healthBody struct {
	Status string `json:"status"`
	buildinfo.Info
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthBody{Status: "ok", Info: buildinfo.Current()})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.writeError(w, r, http.StatusRequestEntityTooLarge,
				errors.New(errors.ErrCodeInvalidInput, "records exceed %d bytes", tooLarge.Limit))
			return
		}
		s.writeError(w, r, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}

	opts, err := s.renderOptions(r.URL.Query())
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	opts.Records = body
	opts.Logger = s.logger.With("request_id", middleware.GetReqID(r.Context()))

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}

	format := opts.Formats[0]
	data := result.Artifacts[format]
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set(HeaderRenderID, result.ID.String())
	if result.CacheInfo.RenderHit {
		w.Header().Set(HeaderCache, "HIT")
	} else {
		w.Header().Set(HeaderCache, "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// renderOptions applies the query overrides to the server's base config.
func (s *Server) renderOptions(q url.Values) (pipeline.Options, error) {
	cfg := s.base
	opts := pipeline.Options{Config: &cfg}

	format := q.Get("format")
	if format == "" {
		format = pipeline.DefaultFormat
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return opts, err
	}
	opts.Formats = []string{format}
	opts.Engine = q.Get("engine")

	var err error
	if cfg.Width, err = floatParam(q, "width", cfg.Width); err != nil {
		return opts, err
	}
	if cfg.Height, err = floatParam(q, "height", cfg.Height); err != nil {
		return opts, err
	}
	if cfg.Dash, err = floatParam(q, "dash", cfg.Dash); err != nil {
		return opts, err
	}
	if cfg.Rotate, err = boolParam(q, "rotate", cfg.Rotate); err != nil {
		return opts, err
	}
	if opts.Header, err = boolParam(q, "header", false); err != nil {
		return opts, err
	}
	if opts.Legacy, err = boolParam(q, "legacy", false); err != nil {
		return opts, err
	}
	return opts, nil
}

func floatParam(q url.Values, name string, def float64) (float64, error) {
	v := q.Get(name)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a number", name, v)
	}
	return f, nil
}

func boolParam(q url.Values, name string, def bool) (bool, error) {
	v := q.Get(name)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a boolean", name, v)
	}
	return b, nil
}

// statusFor maps pipeline errors to HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidRecord, errors.ErrCodeInvalidConfig,
		errors.ErrCodeInvalidColor, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidAlignment:
		return http.StatusBadRequest
	case errors.ErrCodePrecondition:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	body := errorBody{
		Code:      errors.GetCode(err),
		Stage:     errors.StageOf(err),
		Message:   errors.UserMessage(err),
		RequestID: middleware.GetReqID(r.Context()),
	}
	if body.Code == "" {
		body.Code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("render failed", "request_id", body.RequestID, "error", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

