package server

import (
	"encoding/json"
	stderrors "errors"

	cplxerror "github.com/msto63/cplx/foundation/core/error"
	"github.com/msto63/cplx/foundation/core/errors"
	"github.com/msto63/cplx/internal/calc"
)

// Message types sent by clients
const (
	TypeEval      = "eval"
	TypePing      = "ping"
	TypeFunctions = "functions"
)

// Message types sent by the server
const (
	TypeResult  = "result"
	TypeError   = "error"
	TypePong    = "pong"
	TypeWelcome = "welcome"
)

// Message is a client request
type Message struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// EvalPayload requests one evaluation, either as function and arguments
// or as a single input line ("sin 1+2i")
type EvalPayload struct {
	Function string   `json:"function,omitempty"`
	Args     []string `json:"args,omitempty"`
	Line     string   `json:"line,omitempty"`
}

// Response is a server message. ID echoes the request id.
type Response struct {
	Type    string      `json:"type"`
	ID      string      `json:"id,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
}

// ResultPayload carries an evaluation result. Text uses the configured
// output precision; Exact is the shortest exact form.
type ResultPayload struct {
	Function string   `json:"function"`
	Kind     string   `json:"kind"`
	Text     string   `json:"text"`
	Exact    string   `json:"exact"`
	Real     *float64 `json:"real,omitempty"`
	Imag     *float64 `json:"imag,omitempty"`
	Bool     *bool    `json:"bool,omitempty"`
}

// ErrorPayload describes a failed request
type ErrorPayload struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// WelcomePayload is sent once after the upgrade
type WelcomePayload struct {
	SessionID string `json:"session_id"`
	Version   string `json:"version"`
	Protocol  string `json:"protocol"`
	Strict    bool   `json:"strict"`
}

// FunctionInfo describes one registered function
type FunctionInfo struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Signature   string   `json:"signature"`
	Description string   `json:"description"`
	Aliases     []string `json:"aliases,omitempty"`
}

func newResultPayload(function string, res calc.Result, format byte, precision int) ResultPayload {
	p := ResultPayload{
		Function: function,
		Kind:     res.Kind.String(),
		Text:     res.Format(format, precision),
		Exact:    res.String(),
	}
	switch res.Kind {
	case calc.KindComplex:
		if !res.IsDegenerate() {
			re, im := res.Value.Real, res.Value.Imag
			p.Real, p.Imag = &re, &im
		}
	case calc.KindReal:
		if !res.IsDegenerate() {
			re := res.Real
			p.Real = &re
		}
	case calc.KindBool:
		b := res.Bool
		p.Bool = &b
	}
	return p
}

// newErrorPayload exposes the public details of structured errors.
// Stack traces and causes stay in the server log.
func newErrorPayload(err error) ErrorPayload {
	p := ErrorPayload{
		Code:    string(cplxerror.GetCode(err)),
		Message: err.Error(),
	}
	var ce *cplxerror.Error
	if stderrors.As(err, &ce) {
		p.Message = ce.Message()
		details := errors.ExtractDetails(err)
		if len(details) > 0 {
			p.Details = make(map[string]interface{}, len(details))
			for k, v := range details {
				if k == "module" || k == "operation" {
					continue
				}
				p.Details[k] = v
			}
		}
	}
	return p
}

func functionInfos(r *calc.Registry) []FunctionInfo {
	fns := r.Functions()
	infos := make([]FunctionInfo, len(fns))
	for i, fn := range fns {
		infos[i] = FunctionInfo{
			Name:        fn.Name,
			Category:    string(fn.Category),
			Signature:   fn.Signature(),
			Description: fn.Description,
			Aliases:     fn.Aliases,
		}
	}
	return infos
}
