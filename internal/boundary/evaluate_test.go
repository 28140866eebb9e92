package boundary_test

import (
	"testing"

	"github.com/Gunvolt24/xacc_orders/internal/boundary"
)

func TestMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern, value string
		want           bool
	}{
		{"*", "anything/with/slashes", true},
		{"arn:aws:execute-api:*:*:api/*/POST/orders/", "arn:aws:execute-api:eu-west-1:1:api/prod/POST/orders/", true},
		{"arn:aws:execute-api:*:*:api/*/POST/orders/", "arn:aws:execute-api:eu-west-1:1:api/prod/GET/orders/", false},
		{"orders/?", "orders/1", true},
		{"orders/?", "orders/12", false},
		{"exact", "exact", true},
		{"exact", "exactly", false},
		{"", "", true},
	}
	for _, tt := range tests {
		if got := boundary.Match(tt.pattern, tt.value); got != tt.want {
			t.Fatalf("Match(%q, %q) = %v, want %v", tt.pattern, tt.value, got, tt.want)
		}
	}
}

func TestEvaluate_ResourcePolicy(t *testing.T) {
	t.Parallel()

	b := testBoundary()
	doc := boundary.ResourcePolicy(b)

	tests := []struct {
		name string
		req  boundary.Request
		want boundary.Decision
	}{
		{"external_root", boundary.Request{Principal: boundary.AccountRootARN(externalAccount), Action: boundary.ActionInvoke, Resource: b.ResourceARN()}, boundary.Allow},
		{"external_role", boundary.Request{Principal: "arn:aws:sts::111111111111:assumed-role/edge/fn", Action: boundary.ActionInvoke, Resource: b.ResourceARN()}, boundary.Allow},
		{"action_case_insensitive", boundary.Request{Principal: externalAccount, Action: "Execute-API:invoke", Resource: b.ResourceARN()}, boundary.Allow},
		{"other_account", boundary.Request{Principal: boundary.AccountRootARN(otherAccount), Action: boundary.ActionInvoke, Resource: b.ResourceARN()}, boundary.ImplicitDeny},
		{"wrong_method", boundary.Request{Principal: externalAccount, Action: boundary.ActionInvoke, Resource: b.RouteARN("GET", "/orders/")}, boundary.ImplicitDeny},
		{"wrong_path", boundary.Request{Principal: externalAccount, Action: boundary.ActionInvoke, Resource: b.RouteARN("POST", "/admin/")}, boundary.ImplicitDeny},
		{"wrong_action", boundary.Request{Principal: externalAccount, Action: "execute-api:ManageConnections", Resource: b.ResourceARN()}, boundary.ImplicitDeny},
		{"anonymous", boundary.Request{Principal: "anonymous", Action: boundary.ActionInvoke, Resource: b.ResourceARN()}, boundary.ImplicitDeny},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := boundary.Evaluate(doc, tt.req); got != tt.want {
				t.Fatalf("Evaluate = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEvaluate_ExplicitDenyWins(t *testing.T) {
	t.Parallel()

	b := testBoundary()
	doc := boundary.ResourcePolicy(b)
	doc.Statement = append(doc.Statement, boundary.Statement{
		Effect:    boundary.EffectDeny,
		Principal: &boundary.Principal{Any: true},
		Action:    boundary.StringList{"execute-api:*"},
		Resource:  boundary.StringList{"*"},
	})

	req := boundary.Request{Principal: externalAccount, Action: boundary.ActionInvoke, Resource: b.ResourceARN()}
	if got := boundary.Evaluate(doc, req); got != boundary.ExplicitDeny {
		t.Fatalf("want explicit deny, got %s", got)
	}
}

func TestAuthorize_CrossAccountNeedsBothPolicies(t *testing.T) {
	t.Parallel()

	b := testBoundary()
	resource := boundary.ResourcePolicy(b)
	invoker := boundary.InvokerPolicy(b)
	req := boundary.Request{Principal: "arn:aws:iam::111111111111:user/edge", Action: boundary.ActionInvoke, Resource: b.ResourceARN()}

	if got := boundary.Authorize(resource, &invoker, internalAccount, req); got != boundary.Allow {
		t.Fatalf("both allow: want allow, got %s", got)
	}
	if got := boundary.Authorize(resource, nil, internalAccount, req); got != boundary.ImplicitDeny {
		t.Fatalf("no identity policy: want implicit deny, got %s", got)
	}

	// внутри аккаунта-владельца хватает identity-политики
	same := boundary.Request{Principal: boundary.AccountRootARN(internalAccount), Action: boundary.ActionInvoke, Resource: b.ResourceARN()}
	if got := boundary.Authorize(resource, &invoker, internalAccount, same); got != boundary.Allow {
		t.Fatalf("same account with identity allow: want allow, got %s", got)
	}
}
