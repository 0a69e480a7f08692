package catalog

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// The backend serves two schemas: the local IMDb-derived catalog and the
// TMDB-backed one. The same field may arrive as a string in one and a number
// in the other, so raw payloads decode through these tolerant scalars.

// flexString accepts a JSON string, number or bool. null leaves it empty.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	if data[0] == '{' || data[0] == '[' {
		*s = ""
		return nil
	}
	*s = flexString(string(data))
	return nil
}

func (s flexString) String() string { return strings.TrimSpace(string(s)) }

// flexFloat accepts a number or a numeric string.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	var s flexString
	if err := s.UnmarshalJSON(data); err != nil {
		return err
	}
	v, err := strconv.ParseFloat(s.String(), 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}

// flexInt accepts an integer, a float with no fraction, or a numeric string.
type flexInt int64

func (n *flexInt) UnmarshalJSON(data []byte) error {
	var f flexFloat
	if err := f.UnmarshalJSON(data); err != nil {
		return err
	}
	*n = flexInt(int64(f))
	return nil
}

// nameList accepts ["a","b"], "a, b" or [{"id":..,"name":..}].
type nameList []namedRef

type namedRef struct {
	ID   string
	Name string
}

func (l *nameList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*l = nil
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	switch data[0] {
	case '"':
		var joined string
		if err := json.Unmarshal(data, &joined); err != nil {
			return err
		}
		for _, part := range strings.Split(joined, ",") {
			if name := strings.TrimSpace(part); name != "" {
				*l = append(*l, namedRef{Name: name})
			}
		}
		return nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		for _, item := range items {
			item = bytes.TrimSpace(item)
			if len(item) == 0 {
				continue
			}
			if item[0] == '{' {
				var obj struct {
					ID     flexString `json:"id"`
					Nconst flexString `json:"nconst"`
					Name   flexString `json:"name"`
					PName  flexString `json:"primary_name"`
				}
				if err := json.Unmarshal(item, &obj); err != nil {
					return err
				}
				ref := namedRef{ID: first(obj.ID.String(), obj.Nconst.String()), Name: first(obj.Name.String(), obj.PName.String())}
				if ref.Name != "" || ref.ID != "" {
					*l = append(*l, ref)
				}
				continue
			}
			var s flexString
			if err := s.UnmarshalJSON(item); err != nil {
				return err
			}
			if s.String() != "" {
				*l = append(*l, namedRef{ID: s.String(), Name: s.String()})
			}
		}
		return nil
	}
	return nil
}

func (l nameList) names() []string {
	if len(l) == 0 {
		return nil
	}
	out := make([]string, 0, len(l))
	for _, ref := range l {
		if ref.Name != "" {
			out = append(out, ref.Name)
		}
	}
	return out
}

// first returns the first non-blank value.
func first(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func firstFloat(values ...flexFloat) float64 {
	for _, v := range values {
		if v != 0 {
			return float64(v)
		}
	}
	return 0
}

func firstInt(values ...flexInt) int64 {
	for _, v := range values {
		if v != 0 {
			return int64(v)
		}
	}
	return 0
}
