// Package projects holds the real-estate project model and its API repository.
package projects

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/captal-web/internal/errors"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Statuses in the order the UI lists them
var Statuses = []Status{StatusPending, StatusApproved, StatusRejected}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Label is the Portuguese name shown for the status
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pendente"
	case StatusApproved:
		return "Aprovado"
	case StatusRejected:
		return "Rejeitado"
	}
	return string(s)
}

func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("[projects ParseStatus] %w: unknown status %q", apperrors.ErrInvalidInput, s)
	}
	return status, nil
}

// Number decodes from a JSON number or a numeric string. Decimal columns often
// arrive from the API as strings.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("[projects Number] %q is not numeric: %w", s, err)
		}
		*n = Number(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

func (n Number) Float() float64 {
	return float64(n)
}

type Project struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Location        string `json:"location"`
	LandArea        Number `json:"landArea"`
	EstimatedCost   Number `json:"estimatedCost"`
	ExpectedRevenue Number `json:"expectedRevenue"`
	Status          Status `json:"status"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// Created parses CreatedAt, zero when absent or malformed
func (p Project) Created() time.Time {
	t, err := time.Parse(time.RFC3339, p.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ExpectedProfit is expected revenue minus estimated cost
func (p Project) ExpectedProfit() float64 {
	return p.ExpectedRevenue.Float() - p.EstimatedCost.Float()
}

// NewProject is the body of a create request
type NewProject struct {
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	Location        string  `json:"location"`
	LandArea        float64 `json:"landArea"`
	EstimatedCost   float64 `json:"estimatedCost"`
	ExpectedRevenue float64 `json:"expectedRevenue"`
	Status          Status  `json:"status,omitempty"`
}

// Changes is a partial update; nil fields are left untouched
type Changes struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Location        *string  `json:"location,omitempty"`
	LandArea        *float64 `json:"landArea,omitempty"`
	EstimatedCost   *float64 `json:"estimatedCost,omitempty"`
	ExpectedRevenue *float64 `json:"expectedRevenue,omitempty"`
}

// ServerStats is the aggregate the API computes at /projects/stats
type ServerStats struct {
	TotalProjects      int     `json:"totalProjects"`
	CompletedProjects  int     `json:"completedProjects"`
	InProgressProjects int     `json:"inProgressProjects"`
	TotalBudget        Number  `json:"totalBudget"`
	TotalSpent         Number  `json:"totalSpent"`
	AverageProgress    float64 `json:"averageProgress"`
}
