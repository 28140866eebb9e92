package boundary

import (
	"strings"
)

// Decision — итог вычисления политик.
type Decision int

const (
	// ImplicitDeny — ни одно правило не подошло.
	ImplicitDeny Decision = iota
	// Allow — есть разрешающее правило и нет запрещающего.
	Allow
	// ExplicitDeny — подошло правило Deny; перекрывает любой Allow.
	ExplicitDeny
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case ExplicitDeny:
		return "explicit_deny"
	default:
		return "implicit_deny"
	}
}

// Request — кто, что и над чем пытается сделать.
type Request struct {
	Principal string // ARN вызывающего (или номер аккаунта)
	Action    string
	Resource  string
}

// Evaluate — IAM-логика для одного документа: явный Deny > Allow > неявный отказ.
func Evaluate(doc PolicyDocument, req Request) Decision {
	decision := ImplicitDeny
	for _, st := range doc.Statement {
		if !st.matches(req) {
			continue
		}
		if st.Effect == EffectDeny {
			return ExplicitDeny
		}
		if st.Effect == EffectAllow {
			decision = Allow
		}
	}
	return decision
}

// Authorize — решение для вызова API, принадлежащего owner:
// в пределах аккаунта достаточно разрешения в любой из политик,
// для чужого аккаунта нужны обе (resource и identity).
func Authorize(resource PolicyDocument, identity *PolicyDocument, owner string, req Request) Decision {
	rd := Evaluate(resource, req)
	id := ImplicitDeny
	if identity != nil {
		id = Evaluate(*identity, req)
	}
	if rd == ExplicitDeny || id == ExplicitDeny {
		return ExplicitDeny
	}

	caller, err := AccountFromARN(req.Principal)
	if err == nil && caller == owner {
		if rd == Allow || id == Allow {
			return Allow
		}
		return ImplicitDeny
	}
	if rd == Allow && id == Allow {
		return Allow
	}
	return ImplicitDeny
}

func (st Statement) matches(req Request) bool {
	if st.Principal != nil && !st.Principal.matches(req.Principal) {
		return false
	}
	if !anyMatch(st.Action, req.Action, true) {
		return false
	}
	return anyMatch(st.Resource, req.Resource, false)
}

func (p Principal) matches(principal string) bool {
	if p.Any {
		return true
	}
	callerAccount, _ := AccountFromARN(principal)
	for _, want := range p.AWS {
		if want == "*" || want == principal {
			return true
		}
		// корень аккаунта (или просто номер) покрывает любую личность аккаунта
		if callerAccount == "" {
			continue
		}
		if want == callerAccount || want == AccountRootARN(callerAccount) {
			return true
		}
	}
	return false
}

func anyMatch(patterns []string, value string, fold bool) bool {
	if fold {
		value = strings.ToLower(value)
	}
	for _, p := range patterns {
		if fold {
			p = strings.ToLower(p)
		}
		if Match(p, value) {
			return true
		}
	}
	return false
}

// Match — IAM-шаблон: '*' — любая последовательность (включая '/'), '?' — один символ.
func Match(pattern, value string) bool {
	p, v := 0, 0
	star, mark := -1, 0
	for v < len(value) {
		switch {
		case p < len(pattern) && (pattern[p] == '?' || pattern[p] == value[v]):
			p++
			v++
		case p < len(pattern) && pattern[p] == '*':
			star, mark = p, v
			p++
		case star >= 0:
			p = star + 1
			mark++
			v = mark
		default:
			return false
		}
	}
	for p < len(pattern) && pattern[p] == '*' {
		p++
	}
	return p == len(pattern)
}
