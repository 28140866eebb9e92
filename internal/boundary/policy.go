package boundary

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// PolicyVersion — версия языка IAM-политик.
const PolicyVersion = "2012-10-17"

// Effect — Allow | Deny.
type Effect string

const (
	EffectAllow Effect = "Allow"
	EffectDeny  Effect = "Deny"
)

// PolicyDocument — IAM-документ (resource- или identity-политика).
type PolicyDocument struct {
	Version   string      `json:"Version" yaml:"Version"`
	Statement []Statement `json:"Statement" yaml:"Statement"`
}

// Statement — одно правило. Principal пуст у identity-политик.
type Statement struct {
	Sid       string     `json:"Sid,omitempty" yaml:"Sid,omitempty"`
	Effect    Effect     `json:"Effect" yaml:"Effect"`
	Principal *Principal `json:"Principal,omitempty" yaml:"Principal,omitempty"`
	Action    StringList `json:"Action" yaml:"Action"`
	Resource  StringList `json:"Resource" yaml:"Resource"`
}

// Principal — "*" (любой) или {"AWS": [arn...]}.
type Principal struct {
	Any bool       `json:"-" yaml:"-"`
	AWS StringList `json:"AWS,omitempty" yaml:"AWS,omitempty"`
}

// StringList — строка или массив строк (оба вида допустимы в IAM).
type StringList []string

// ResourcePolicy — политика внутреннего API: вызывать маршрут может только внешний аккаунт.
func ResourcePolicy(b Boundary) PolicyDocument {
	return PolicyDocument{
		Version: PolicyVersion,
		Statement: []Statement{{
			Sid:       "AllowExternalAccountInvoke",
			Effect:    EffectAllow,
			Principal: &Principal{AWS: StringList{AccountRootARN(b.ExternalAccountID)}},
			Action:    StringList{ActionInvoke},
			Resource:  StringList{b.ResourceARN()},
		}},
	}
}

// InvokerPolicy — identity-политика роли edge-обработчика на тот же маршрут.
func InvokerPolicy(b Boundary) PolicyDocument {
	return PolicyDocument{
		Version: PolicyVersion,
		Statement: []Statement{{
			Sid:      "AllowInvokeInternalOrders",
			Effect:   EffectAllow,
			Action:   StringList{ActionInvoke},
			Resource: StringList{b.ResourceARN()},
		}},
	}
}

// ParsePolicy — JSON-документ политики.
func ParsePolicy(data []byte) (PolicyDocument, error) {
	var doc PolicyDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return PolicyDocument{}, fmt.Errorf("parse policy: %w", err)
	}
	return doc, nil
}

// ---------- JSON ----------

func (p Principal) MarshalJSON() ([]byte, error) {
	if p.Any {
		return json.Marshal("*")
	}
	type plain Principal
	return json.Marshal(plain(p))
}

func (p *Principal) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "*" {
			return fmt.Errorf("principal: unexpected string %q", s)
		}
		*p = Principal{Any: true}
		return nil
	}
	type plain Principal
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Principal(v)
	return nil
}

func (l *StringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*l = StringList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = many
	return nil
}

// ---------- YAML ----------

func (p Principal) MarshalYAML() (any, error) {
	if p.Any {
		return "*", nil
	}
	return map[string][]string{"AWS": p.AWS}, nil
}

func (p *Principal) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		if node.Value != "*" {
			return fmt.Errorf("principal: unexpected scalar %q", node.Value)
		}
		*p = Principal{Any: true}
		return nil
	}
	var v struct {
		AWS StringList `yaml:"AWS"`
	}
	if err := node.Decode(&v); err != nil {
		return err
	}
	*p = Principal{AWS: v.AWS}
	return nil
}

func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*l = StringList{node.Value}
		return nil
	}
	var many []string
	if err := node.Decode(&many); err != nil {
		return err
	}
	*l = many
	return nil
}
