package model

import "encoding/json"

// CustomProfileField is one team-defined profile field. Pointer fields
// distinguish "absent from the payload" from a zero value so partial
// patches never null out known attributes.
type CustomProfileField struct {
	ID             string   `json:"id"`
	Alt            string   `json:"alt"`
	Value          string   `json:"value"`
	Hidden         *bool    `json:"is_hidden"`
	Hint           string   `json:"hint"`
	Label          string   `json:"label"`
	Options        string   `json:"options"`
	Ordering       *int     `json:"ordering"`
	PossibleValues []string `json:"possible_values"`
	Type           string   `json:"type"`
}

// Patch overwrites only the attributes present in the incoming partial
// field; everything the incoming record omits keeps its current value.
func (f *CustomProfileField) Patch(in *CustomProfileField) {
	if in == nil {
		return
	}
	if in.ID != "" {
		f.ID = in.ID
	}
	if in.Alt != "" {
		f.Alt = in.Alt
	}
	if in.Value != "" {
		f.Value = in.Value
	}
	if in.Hidden != nil {
		f.Hidden = in.Hidden
	}
	if in.Hint != "" {
		f.Hint = in.Hint
	}
	if in.Label != "" {
		f.Label = in.Label
	}
	if in.Options != "" {
		f.Options = in.Options
	}
	if in.Ordering != nil {
		f.Ordering = in.Ordering
	}
	if in.PossibleValues != nil {
		f.PossibleValues = in.PossibleValues
	}
	if in.Type != "" {
		f.Type = in.Type
	}
}

// FieldMap holds custom profile fields keyed by field id. The wire form
// is either a map keyed by id (user profiles) or an array of field
// objects or bare id strings (team profile events).
type FieldMap map[string]*CustomProfileField

func (m *FieldMap) UnmarshalJSON(data []byte) error {
	out := make(FieldMap)
	if len(data) > 0 && data[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		for _, raw := range items {
			var f CustomProfileField
			if len(raw) > 0 && raw[0] == '"' {
				if err := json.Unmarshal(raw, &f.ID); err != nil {
					return err
				}
			} else if err := json.Unmarshal(raw, &f); err != nil {
				return err
			}
			if f.ID != "" {
				out[f.ID] = &f
			}
		}
		*m = out
		return nil
	}
	var byID map[string]*CustomProfileField
	if err := json.Unmarshal(data, &byID); err != nil {
		return err
	}
	for id, f := range byID {
		if f == nil {
			continue
		}
		if f.ID == "" {
			f.ID = id
		}
		out[id] = f
	}
	*m = out
	return nil
}

// CustomProfile is the team-wide custom profile template carried by
// team profile events.
type CustomProfile struct {
	Fields FieldMap `json:"fields"`
}

// Profile holds a user's profile, including custom fields.
type Profile struct {
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	RealName  string   `json:"real_name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Title     string   `json:"title"`
	Fields    FieldMap `json:"fields"`
}
