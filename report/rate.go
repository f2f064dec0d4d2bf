package report

import (
	"encoding/json"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	undefined = "undefined"
)

// Rate is a percentage, or undefined when it was computed over an empty set.
type Rate struct {
	Value   float64
	Defined bool
}

// NewRate returns num/denom as a percentage rounded to two decimal places.
func NewRate(num, denom int) Rate {
	if denom == 0 {
		return Rate{}
	}
	v := float64(num) / float64(denom) * 100
	return Rate{
		Value:   math.Round(v*100) / 100,
		Defined: true,
	}
}

func (r Rate) String() string {
	if !r.Defined {
		return undefined
	}
	return strconv.FormatFloat(r.Value, 'f', -1, 64) + "%"
}

func (r Rate) MarshalJSON() ([]byte, error) {
	if !r.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

func (r *Rate) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*r = Rate{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*r = Rate{Value: v, Defined: true}
	return nil
}

func (r Rate) MarshalYAML() (any, error) {
	if !r.Defined {
		return undefined, nil
	}
	return r.Value, nil
}

func (r *Rate) UnmarshalYAML(value *yaml.Node) error {
	if value.Value == undefined || value.Tag == "!!null" {
		*r = Rate{}
		return nil
	}
	var v float64
	if err := value.Decode(&v); err != nil {
		return err
	}
	*r = Rate{Value: v, Defined: true}
	return nil
}
