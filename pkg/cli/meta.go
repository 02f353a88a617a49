package cli

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Fepozopo/rasterfx/pkg/stdimg"
)

// ParamType classifies a command argument for validation.
type ParamType string

const (
	ParamTypeInt    ParamType = "int"
	ParamTypeFloat  ParamType = "float"
	ParamTypeBool   ParamType = "bool"
	ParamTypeString ParamType = "string"
	ParamTypeEnum   ParamType = "enum"
	ParamTypeColor  ParamType = "color"
)

// ValidationRule is the machine-readable form of an ArgSpec.
type ValidationRule struct {
	Type        ParamType `json:"type"`
	Required    bool      `json:"required"`
	Min         *float64  `json:"min,omitempty"`
	Max         *float64  `json:"max,omitempty"`
	EnumOptions []string  `json:"enumOptions,omitempty"`
	Example     string    `json:"example,omitempty"`
	Hint        string    `json:"hint,omitempty"`
}

// descriptions of the form "lo..hi" double as numeric bounds
var rangeRe = regexp.MustCompile(`^(-?\d+(?:\.\d+)?)\.\.(-?\d+(?:\.\d+)?)$`)

// parseBoolLike accepts the usual truthy and falsy spellings.
func parseBoolLike(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "y", "yes", "on":
		return "true", nil
	case "0", "f", "false", "n", "no", "off":
		return "false", nil
	default:
		return "", fmt.Errorf("invalid boolean: %q", s)
	}
}

// CommandHelp renders the usage and parameter list of a command.
func CommandHelp(c stdimg.CommandSpec) string {
	var sb strings.Builder
	sb.WriteString(c.Usage)
	sb.WriteString("\n  ")
	if c.Description != "" {
		sb.WriteString(c.Description)
	} else {
		sb.WriteString("No description")
	}
	for _, a := range c.Args {
		req := "optional"
		if a.Required {
			req = "required"
		}
		fmt.Fprintf(&sb, "\n    %-12s %s, %s", a.Name, a.Type, req)
		if a.Description != "" {
			sb.WriteString(": " + a.Description)
		}
		if a.Default != "" {
			sb.WriteString(" (default: " + a.Default + ")")
		}
	}
	return sb.String()
}

// ValidationRules derives a rule per argument of c.
func ValidationRules(c stdimg.CommandSpec) map[string]ValidationRule {
	rules := make(map[string]ValidationRule, len(c.Args))
	for _, a := range c.Args {
		r := ValidationRule{Required: a.Required, Hint: a.Description, Example: a.Default}
		switch strings.ToLower(a.Type) {
		case "int":
			r.Type = ParamTypeInt
		case "float":
			r.Type = ParamTypeFloat
		case "bool":
			r.Type = ParamTypeBool
		case "color":
			r.Type = ParamTypeColor
		default:
			r.Type = ParamTypeString
			if strings.Contains(a.Description, "|") {
				r.Type = ParamTypeEnum
				r.EnumOptions = strings.Split(a.Description, "|")
			}
		}
		if m := rangeRe.FindStringSubmatch(a.Description); m != nil {
			lo, _ := strconv.ParseFloat(m[1], 64)
			hi, _ := strconv.ParseFloat(m[2], 64)
			r.Min, r.Max = &lo, &hi
		}
		rules[a.Name] = r
	}
	return rules
}

// NormalizeArgs checks args against the rules of c and returns them in
// canonical form. Lists longer than the declared arguments (perspective
// corners) are passed through for ApplyCommand to validate.
func NormalizeArgs(c stdimg.CommandSpec, args []string) ([]string, error) {
	if len(args) > len(c.Args) {
		return args, nil
	}
	rules := ValidationRules(c)
	out := make([]string, 0, len(args))
	for i, raw := range args {
		a := c.Args[i]
		raw = strings.TrimSpace(raw)
		vr := rules[a.Name]
		switch vr.Type {
		case ParamTypeInt, ParamTypeFloat:
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil || (vr.Type == ParamTypeInt && f != float64(int64(f))) {
				return nil, fmt.Errorf("%s: parameter %s: expected %s, got %q", c.Name, a.Name, vr.Type, raw)
			}
			if vr.Min != nil && f < *vr.Min {
				return nil, fmt.Errorf("%s: parameter %s: %v < min %v", c.Name, a.Name, f, *vr.Min)
			}
			if vr.Max != nil && f > *vr.Max {
				return nil, fmt.Errorf("%s: parameter %s: %v > max %v", c.Name, a.Name, f, *vr.Max)
			}
			out = append(out, raw)
		case ParamTypeBool:
			b, err := parseBoolLike(raw)
			if err != nil {
				return nil, fmt.Errorf("%s: parameter %s: %w", c.Name, a.Name, err)
			}
			out = append(out, b)
		case ParamTypeEnum:
			v := strings.ToLower(raw)
			found := false
			for _, opt := range vr.EnumOptions {
				if opt == v {
					found = true
					break
				}
			}
			if !found {
				return nil, fmt.Errorf("%s: parameter %s: %q is not one of %s", c.Name, a.Name, raw, a.Description)
			}
			out = append(out, v)
		default:
			out = append(out, raw)
		}
	}
	return out, nil
}
