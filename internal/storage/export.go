package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/mwaldner/genlab/internal/machine"
	"github.com/mwaldner/genlab/internal/session"
)

type ExportData struct {
	ID        string             `json:"id"`
	Field     string             `json:"field"`
	Params    machine.Parameters `json:"params"`
	Steps     int                `json:"steps"`
	Times     []float64          `json:"times"`
	Angles    []float64          `json:"angles"`
	Flux      []float64          `json:"flux"`
	EMF       []float64          `json:"emf"`
	Rectified []float64          `json:"rectified"`
	Metrics   map[string]float64 `json:"metrics"`
}

func writeExport(w io.Writer, id, field string, params machine.Parameters, result *session.Result) error {
	data := ExportData{
		ID:        id,
		Field:     field,
		Params:    params,
		Steps:     result.Steps,
		Times:     result.Times,
		Angles:    result.Angles,
		Flux:      result.Flux,
		EMF:       result.EMF,
		Rectified: result.Rectified,
		Metrics:   result.Metrics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func ExportJSON(path, id, field string, params machine.Parameters, result *session.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeExport(file, id, field, params, result)
}

func ExportJSONStdout(id, field string, params machine.Parameters, result *session.Result) error {
	return writeExport(os.Stdout, id, field, params, result)
}
