package restserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/chrissnell/panchanga/internal/types"
	"github.com/chrissnell/panchanga/pkg/panchanga"
	"github.com/chrissnell/panchanga/pkg/responseformat"
)

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	controller *Controller
	formatter  *responseformat.Formatter
	now        func() time.Time
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{
		controller: ctrl,
		formatter:  responseformat.NewFormatter(),
		now:        time.Now,
	}
}

// query holds the parameters shared by every endpoint
type query struct {
	at          time.Time
	withLimit   bool
	withAbhijit bool
}

// parseQuery reads at, limits and abhijit. at accepts RFC 3339 or a bare
// date, which is taken as local noon in the observer's time zone.
func (h *Handlers) parseQuery(req *http.Request) (query, error) {
	q := query{at: h.now()}
	values := req.URL.Query()

	if s := values.Get("at"); s != "" {
		at, err := ParseInstant(s, h.controller.calculator.Location())
		if err != nil {
			return query{}, err
		}
		q.at = at
	}

	var err error
	if q.withLimit, err = parseBool(values.Get("limits"), "limits"); err != nil {
		return query{}, err
	}
	if q.withAbhijit, err = parseBool(values.Get("abhijit"), "abhijit"); err != nil {
		return query{}, err
	}
	return q, nil
}

// ParseInstant parses RFC 3339 or YYYY-MM-DD. Dates resolve to noon in loc.
func ParseInstant(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if d, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		return d.Add(12 * time.Hour), nil
	}
	return time.Time{}, fmt.Errorf("invalid instant %q: expected RFC 3339 or YYYY-MM-DD", s)
}

func parseBool(s, name string) (bool, error) {
	if s == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s parameter %q", name, s)
	}
	return b, nil
}

// statusFor maps a computation error to an HTTP status
func statusFor(err error) int {
	if errors.Is(err, panchanga.ErrOutOfDomain) {
		return http.StatusBadRequest
	}
	// ErrNoConvergence and ephemeris failures
	return http.StatusInternalServerError
}

// serve parses the query, builds a Panchanga and writes whatever compute
// returns.
func (h *Handlers) serve(w http.ResponseWriter, req *http.Request, compute func(p *panchanga.Panchanga, q query) (any, error)) {
	q, err := h.parseQuery(req)
	if err != nil {
		h.formatter.WriteError(w, req, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.controller.calculator.Panchanga(q.at)
	if err == nil {
		var result any
		if result, err = compute(p, q); err == nil {
			if err := h.formatter.WriteResponse(w, req, result); err != nil {
				h.controller.logger.Errorf("error encoding response: %v", err)
			}
			return
		}
	}

	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.controller.logger.Errorw("panchanga computation failed", "at", q.at, "error", err)
	}
	h.formatter.WriteError(w, req, status, err.Error())
}

// GetPanchanga serves every element for the instant
func (h *Handlers) GetPanchanga(w http.ResponseWriter, req *http.Request) {
	h.serve(w, req, func(p *panchanga.Panchanga, q query) (any, error) {
		return types.NewReport(p, h.controller.calculator.Observer(), q.withLimit, q.withAbhijit)
	})
}

// GetTithi serves the lunar day
func (h *Handlers) GetTithi(w http.ResponseWriter, req *http.Request) {
	h.serve(w, req, func(p *panchanga.Panchanga, q query) (any, error) {
		return p.Tithi(q.withLimit)
	})
}

// GetNakshatra serves the lunar mansion
func (h *Handlers) GetNakshatra(w http.ResponseWriter, req *http.Request) {
	h.serve(w, req, func(p *panchanga.Panchanga, q query) (any, error) {
		return p.Nakshatra(q.withLimit, q.withAbhijit)
	})
}

// GetYoga serves the Yoga
func (h *Handlers) GetYoga(w http.ResponseWriter, req *http.Request) {
	h.serve(w, req, func(p *panchanga.Panchanga, q query) (any, error) {
		return p.Yoga(q.withLimit)
	})
}

// GetKarana serves the half-Tithi. The Tithi is computed first since the
// Karana derives from it.
func (h *Handlers) GetKarana(w http.ResponseWriter, req *http.Request) {
	h.serve(w, req, func(p *panchanga.Panchanga, q query) (any, error) {
		if _, err := p.Tithi(q.withLimit); err != nil {
			return nil, err
		}
		return p.Karana(q.withLimit)
	})
}

// GetVara serves the sunrise-bounded weekday
func (h *Handlers) GetVara(w http.ResponseWriter, req *http.Request) {
	h.serve(w, req, func(p *panchanga.Panchanga, q query) (any, error) {
		return p.Vara()
	})
}
