package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/ecostats/internal/domain"
)

type stationEntry struct {
	Ordinal   int      `json:"ordinal"`
	Name      string   `json:"name"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Variables []string `json:"variables"`
}

// GET /api/v1/stations
func (s *Server) handleListStations(c *gin.Context) {
	names := s.kb.ListStations()
	out := make([]stationEntry, 0, len(names))
	for i, name := range names {
		p, err := s.kb.GetStation(name)
		if err != nil {
			s.writeError(c, err)
			return
		}
		e := stationEntry{Ordinal: i + 1, Name: p.Name, Latitude: p.Latitude, Longitude: p.Longitude, Variables: []string{}}
		for _, key := range domain.Variables {
			if p.Has(key) {
				e.Variables = append(e.Variables, string(key))
			}
		}
		out = append(out, e)
	}

	c.JSON(http.StatusOK, gin.H{
		"data": out,
		"meta": gin.H{"count": len(out)},
	})
}

// GET /api/v1/stations/:name accepts a name or a 1-based ordinal. ?month=N
// restricts the statistics to one calendar month.
func (s *Server) handleGetStation(c *gin.Context) {
	p, err := s.lookupStation(c.Param("name"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	monthStr := c.Query("month")
	if monthStr == "" {
		c.JSON(http.StatusOK, gin.H{"data": p})
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		s.writeError(c, fmt.Errorf("%w: invalid month %q", errBadRequest, monthStr))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	monthly, err := s.stations.MonthlyProfile(ctx, p.Name, time.Month(month))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": monthly,
		"meta": gin.H{"month": month},
	})
}

// GET /api/v1/stations/:name/stats/:variable/:statistic
func (s *Server) handleGetStatistic(c *gin.Context) {
	p, err := s.lookupStation(c.Param("name"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	stat, err := domain.ParseStatistic(strings.ToLower(c.Param("statistic")))
	if err != nil {
		s.writeError(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	key := domain.VariableKey(strings.ToLower(c.Param("variable")))

	v, err := s.kb.GetStatistic(p.Name, key, stat)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"station":   p.Name,
			"variable":  key,
			"statistic": stat,
			"value":     v.Value,
			"unit":      v.Unit,
			"text":      v.String(),
		},
	})
}

// GET /api/v1/variables
func (s *Server) handleListVariables(c *gin.Context) {
	vars := s.kb.Variables()
	c.JSON(http.StatusOK, gin.H{
		"data": vars,
		"meta": gin.H{"count": len(vars)},
	})
}

// GET /api/v1/variables/:key
func (s *Server) handleGetVariable(c *gin.Context) {
	d, err := s.kb.GetVariableDescription(domain.VariableKey(strings.ToLower(c.Param("key"))))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": d})
}

func (s *Server) lookupStation(ref string) (*domain.StationProfile, error) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		return s.kb.GetStationByOrdinal(n)
	}
	return s.kb.GetStation(ref)
}
