package application

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/bnema/weddingflow-assistant/internal/domain"
)

// ArgumentBinder turns the model's raw JSON arguments into typed tool
// arguments. Entity references stay as text until the controller resolves
// them; everything else is coerced and checked against the parameter rules.
type ArgumentBinder struct {
	validate *validator.Validate
}

func NewArgumentBinder() *ArgumentBinder {
	return &ArgumentBinder{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// DecodeArguments parses a raw argument object, keeping numbers as json.Number.
func DecodeArguments(raw json.RawMessage) (map[string]any, error) {
	out := map[string]any{}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return out, nil
	}
	decoder := json.NewDecoder(strings.NewReader(string(raw)))
	decoder.UseNumber()
	if err := decoder.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode tool arguments: %w", err)
	}
	return out, nil
}

// Bind coerces raw into typed arguments. Unknown keys are dropped. Reference
// parameters come back as a string or []string.
func (b *ArgumentBinder) Bind(def domain.ToolDefinition, raw map[string]any, now time.Time) (domain.Args, error) {
	args := domain.Args{}
	for _, param := range def.Params {
		value, ok := raw[param.Name]
		if !ok || isBlank(value) {
			continue
		}

		coerced, err := b.coerce(def.Name, param, value, now)
		if err != nil {
			return nil, err
		}
		if err := b.checkRules(def.Name, param, coerced); err != nil {
			return nil, err
		}
		args[param.Name] = coerced
	}

	return args, nil
}

// CheckRequired reports the first required parameter absent from args.
func (b *ArgumentBinder) CheckRequired(def domain.ToolDefinition, args domain.Args) error {
	for _, param := range def.Params {
		if !param.Required {
			continue
		}
		missing := !args.Has(param.Name)
		if refs, ok := args[param.Name].([]domain.EntityRef); ok && len(refs) == 0 {
			missing = true
		}
		if missing {
			return &domain.SchemaValidationError{Tool: def.Name, Field: param.Name, Reason: domain.ReasonRequired}
		}
	}
	return nil
}

func (b *ArgumentBinder) coerce(tool string, param domain.ParamSpec, value any, now time.Time) (any, error) {
	invalid := func(reason string) error {
		return &domain.SchemaValidationError{Tool: tool, Field: param.Name, Reason: reason}
	}

	switch param.Type {
	case domain.ParamString:
		return strings.TrimSpace(fmt.Sprint(value)), nil
	case domain.ParamNumber:
		n, ok := toNumber(value)
		if !ok {
			return nil, invalid("expected a number")
		}
		return n, nil
	case domain.ParamInteger:
		n, ok := toNumber(value)
		if !ok || n != math.Trunc(n) {
			return nil, invalid("expected a whole number")
		}
		return int64(n), nil
	case domain.ParamBoolean:
		v, ok := toBool(value)
		if !ok {
			return nil, invalid("expected true or false")
		}
		return v, nil
	case domain.ParamEnum:
		s := strings.ToLower(strings.TrimSpace(fmt.Sprint(value)))
		return s, nil
	case domain.ParamDate:
		s, ok := value.(string)
		if !ok {
			return nil, invalid("expected a date")
		}
		date, err := ParseDate(s, now)
		if err != nil {
			return nil, err
		}
		return date.Format(DateLayout), nil
	case domain.ParamTime:
		s, ok := value.(string)
		if !ok {
			return nil, invalid("expected a time of day")
		}
		clock, err := ParseClock(s)
		if err != nil {
			return nil, err
		}
		return clock, nil
	case domain.ParamEntity:
		switch v := value.(type) {
		case string:
			return strings.TrimSpace(v), nil
		case json.Number:
			return v.String(), nil
		default:
			return nil, invalid("expected a name or id")
		}
	case domain.ParamEntityList:
		switch v := value.(type) {
		case string:
			return strings.TrimSpace(v), nil
		case []any:
			out := make([]string, 0, len(v))
			for _, item := range v {
				if isBlank(item) {
					continue
				}
				out = append(out, strings.TrimSpace(fmt.Sprint(item)))
			}
			return out, nil
		default:
			return nil, invalid("expected a list of names")
		}
	}

	return nil, invalid(fmt.Sprintf("unsupported parameter type %q", param.Type))
}

func (b *ArgumentBinder) checkRules(tool string, param domain.ParamSpec, value any) error {
	rules := param.Rules
	if param.Type == domain.ParamEnum {
		rules = joinRules(rules, "oneof="+strings.Join(param.Enum, " "))
	}
	if rules == "" || param.Type.IsReference() {
		return nil
	}

	err := b.validate.Var(value, rules)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return &domain.SchemaValidationError{Tool: tool, Field: param.Name, Reason: ruleReason(fieldErrs[0], param)}
	}
	return fmt.Errorf("validate %s.%s: %w", tool, param.Name, err)
}

func ruleReason(fe validator.FieldError, param domain.ParamSpec) string {
	switch fe.Tag() {
	case "oneof":
		return "must be one of " + strings.Join(param.Enum, ", ")
	case "email":
		return "must be an email address"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "ne":
		return "must not be " + fe.Param()
	default:
		return "failed " + fe.Tag()
	}
}

func joinRules(a, b string) string {
	if a == "" {
		return b
	}
	return a + "," + b
}

func toNumber(value any) (float64, bool) {
	if n, ok := domain.NumberValue(value); ok {
		return n, true
	}
	s, ok := value.(string)
	if !ok {
		return 0, false
	}
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "$₹€£¥")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func toBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "y", "1":
			return true, true
		case "false", "no", "n", "0":
			return false, true
		}
	}
	return false, false
}

func isBlank(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []any:
		return len(v) == 0
	}
	return false
}
