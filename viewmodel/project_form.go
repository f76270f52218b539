package viewmodel

import (
	"errors"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/jrsteele09/captal-web/projects"
)

const (
	MsgProjectNameRequired     = "Nome é obrigatório"
	MsgProjectLocationRequired = "Localização é obrigatória"

	MsgLandAreaRequired        = "Área é obrigatória"
	MsgLandAreaInvalid         = "Por favor, insira um número válido para a área"
	MsgLandAreaPositive        = "Área deve ser maior que zero"
	MsgEstimatedCostRequired   = "Custo estimado é obrigatório"
	MsgEstimatedCostInvalid    = "Por favor, insira um número válido para o custo estimado"
	MsgEstimatedCostPositive   = "Custo estimado deve ser maior que zero"
	MsgExpectedRevenueRequired = "Receita esperada é obrigatória"
	MsgExpectedRevenueInvalid  = "Por favor, insira um número válido para a receita esperada"
	MsgExpectedRevenuePositive = "Receita esperada deve ser maior que zero"
)

// ProjectForm is the create-project form as posted. Numbers stay strings until validated.
type ProjectForm struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Location        string `json:"location"`
	LandArea        string `json:"landArea"`
	EstimatedCost   string `json:"estimatedCost"`
	ExpectedRevenue string `json:"expectedRevenue"`
}

// parseNumber accepts "1500.5" and, when there is no dot, a decimal comma "1500,5"
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	return strconv.ParseFloat(s, 64)
}

func positiveNumber(invalid, positive string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		v, err := parseNumber(s)
		if err != nil {
			return errors.New(invalid)
		}
		if v <= 0 {
			return errors.New(positive)
		}
		return nil
	}
}

func (f ProjectForm) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	f.Location = strings.TrimSpace(f.Location)
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required.Error(MsgProjectNameRequired)),
		validation.Field(&f.Location, validation.Required.Error(MsgProjectLocationRequired)),
		validation.Field(&f.LandArea,
			validation.Required.Error(MsgLandAreaRequired),
			validation.By(positiveNumber(MsgLandAreaInvalid, MsgLandAreaPositive)),
		),
		validation.Field(&f.EstimatedCost,
			validation.Required.Error(MsgEstimatedCostRequired),
			validation.By(positiveNumber(MsgEstimatedCostInvalid, MsgEstimatedCostPositive)),
		),
		validation.Field(&f.ExpectedRevenue,
			validation.Required.Error(MsgExpectedRevenueRequired),
			validation.By(positiveNumber(MsgExpectedRevenueInvalid, MsgExpectedRevenuePositive)),
		),
	)
}

// NewProject maps a validated form to the create request
func (f ProjectForm) NewProject() (projects.NewProject, error) {
	if err := f.Validate(); err != nil {
		return projects.NewProject{}, err
	}
	landArea, _ := parseNumber(f.LandArea)
	cost, _ := parseNumber(f.EstimatedCost)
	revenue, _ := parseNumber(f.ExpectedRevenue)
	return projects.NewProject{
		Name:            strings.TrimSpace(f.Name),
		Description:     strings.TrimSpace(f.Description),
		Location:        strings.TrimSpace(f.Location),
		LandArea:        landArea,
		EstimatedCost:   cost,
		ExpectedRevenue: revenue,
	}, nil
}
