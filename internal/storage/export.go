package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/fricsim/internal/dynamo"
)

type ExportData struct {
	Model      string             `json:"model"`
	Integrator string             `json:"integrator"`
	Controller string             `json:"controller"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Steps      int                `json:"steps"`
	Times      []float64          `json:"times"`
	States     [][]float64        `json:"states"`
	Controls   [][]float64        `json:"controls"`
	Frictions  []float64          `json:"frictions,omitempty"`
	Metrics    map[string]float64 `json:"metrics"`
}

func ExportJSON(w io.Writer, model, integrator, controller string, dt, duration float64, result *dynamo.Result) error {
	data := ExportData{
		Model:      model,
		Integrator: integrator,
		Controller: controller,
		Dt:         dt,
		Duration:   duration,
		Steps:      len(result.Times),
		Times:      result.Times,
		States:     make([][]float64, len(result.States)),
		Controls:   make([][]float64, len(result.Controls)),
		Frictions:  result.Frictions,
		Metrics:    result.Metrics,
	}

	for i, s := range result.States {
		data.States[i] = s
	}
	for i, c := range result.Controls {
		data.Controls[i] = c
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
