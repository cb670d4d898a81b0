package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/etnz/networth"
	"github.com/etnz/networth/date"
	"github.com/gin-gonic/gin"
)

// overridable are the query parameters of GET /api/v1/report.
var overridable = []string{"period", "year", "growth", "horizon", "scope", "window", "currency"}

// report handles GET /api/v1/report.
func (s *Server) report(c *gin.Context) {
	cfg := s.config
	for _, name := range overridable {
		v, ok := c.GetQuery(name)
		if !ok {
			continue
		}
		var err error
		if cfg, err = cfg.Set(name, v); err != nil {
			abort(c, http.StatusBadRequest, "INVALID_PARAM", err.Error())
			return
		}
	}
	if err := cfg.Validate(); err != nil {
		abort(c, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}

	d, err := s.load()
	if err != nil {
		s.log.WithError(err).Error("cannot load dataset")
		abort(c, http.StatusInternalServerError, "DATASET_LOAD_ERROR", err.Error())
		return
	}
	s.respond(c, d, cfg)
}

// accounts handles GET /api/v1/accounts. The optional date parameter selects
// the snapshot in force on that date instead of the latest one.
func (s *Server) accounts(c *gin.Context) {
	d, err := s.load()
	if err != nil {
		s.log.WithError(err).Error("cannot load dataset")
		abort(c, http.StatusInternalServerError, "DATASET_LOAD_ERROR", err.Error())
		return
	}
	latest, ok := d.Latest()
	if on, given := c.GetQuery("date"); given {
		day, err := date.Parse(on)
		if err != nil {
			abort(c, http.StatusBadRequest, "INVALID_PARAM", fmt.Sprintf("invalid date %q: %v", on, err))
			return
		}
		latest, ok = d.RecordAsOf(day)
	}
	body := gin.H{"accounts": d.Columns(), "count": len(d.Columns())}
	if ok {
		body["latest"] = latest
		body["netWorth"] = networth.NetWorth(latest, d.Columns()).In(s.config.Currency)
	}
	c.JSON(http.StatusOK, body)
}

// analyzeRequest is the body of POST /api/v1/analyze.
type analyzeRequest struct {
	Columns []networth.Column `json:"columns"`
	Records []networth.Record `json:"records"`
	Config  networth.Config   `json:"config"`
}

// analyze handles POST /api/v1/analyze. It reports on the dataset carried by
// the body and stores nothing.
func (s *Server) analyze(c *gin.Context) {
	req := analyzeRequest{Config: s.config}
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if err := req.Config.Validate(); err != nil {
		abort(c, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}

	d, err := newDataset(req.Columns, req.Records)
	if err != nil {
		abort(c, http.StatusBadRequest, "INVALID_DATASET", err.Error())
		return
	}
	s.respond(c, d, req.Config)
}

func (s *Server) respond(c *gin.Context, d *networth.Dataset, cfg networth.Config) {
	r := d.Report(cfg, s.Today())
	if r == nil {
		abort(c, http.StatusNotFound, "NO_DATA", "no snapshot matches the request")
		return
	}
	c.JSON(http.StatusOK, r)
}

func newDataset(columns []networth.Column, records []networth.Record) (*networth.Dataset, error) {
	d := networth.NewDataset()
	for _, col := range columns {
		if err := d.Declare(col); err != nil {
			return nil, err
		}
	}
	for _, r := range records {
		if err := d.Put(r, networth.Reject); err != nil {
			if errors.Is(err, networth.ErrDuplicateDate) {
				return nil, fmt.Errorf("records must have distinct dates: %w", err)
			}
			return nil, err
		}
	}
	return d, nil
}
