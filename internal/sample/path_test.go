package sample

import "testing"

func TestParsePath(t *testing.T) {
	t.Parallel()

	p := ParsePath("/resources/{id}/actions/activate")

	wantTokens := []Token{
		{Text: "resources"},
		{Text: "id", Param: true},
		{Text: "actions"},
		{Text: "activate"},
	}
	if len(p.Tokens) != len(wantTokens) {
		t.Fatalf("tokens: got %v", p.Tokens)
	}
	for i, tok := range p.Tokens {
		if tok != wantTokens[i] {
			t.Errorf("token %d: got %+v want %+v", i, tok, wantTokens[i])
		}
	}

	if len(p.Params) != 1 || p.Params[0] != (Param{Name: "id", Var: "id"}) {
		t.Errorf("params: got %v", p.Params)
	}
}

func TestParsePathMalformedBracesAreLiterals(t *testing.T) {
	t.Parallel()

	p := ParsePath("/a/{open/close}/b{c}")
	if len(p.Params) != 0 {
		t.Fatalf("expected no params, got %v", p.Params)
	}
	for _, tok := range p.Tokens {
		if tok.Param {
			t.Errorf("token %q wrongly classified as param", tok.Text)
		}
	}
}

func TestParsePathEmptySegments(t *testing.T) {
	t.Parallel()

	p := ParsePath("//messages//")
	if len(p.Tokens) != 1 || p.Tokens[0].Text != "messages" {
		t.Fatalf("tokens: got %v", p.Tokens)
	}
}

func TestTargetIdent(t *testing.T) {
	t.Parallel()

	cases := []struct {
		path string
		want string
	}{
		{"/messages/{id}", "messages"},
		{"/phone-numbers", "phone_numbers"},
		{"/messaging_profiles/{id}/metrics", "messaging_profiles_metrics"},
		{"/{id}", ""},
		{"/", ""},
	}
	for _, tc := range cases {
		if got := ParsePath(tc.path).TargetIdent(); got != tc.want {
			t.Errorf("TargetIdent(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestResolveMethod(t *testing.T) {
	t.Parallel()

	cases := []struct {
		method string
		path   string
		want   string
	}{
		{"get", "/messages", "list"},
		{"get", "/messages/{id}", "retrieve"},
		{"GET", "/messages/{id}", "retrieve"},
		{"post", "/messages", "create"},
		{"put", "/messages/{id}", "update"},
		{"patch", "/messages/{id}", "update"},
		{"delete", "/messages/{id}", "del"},
		{"options", "/messages", "create"},
		{"", "/messages", "create"},
	}
	for _, tc := range cases {
		if got := ResolveMethod(tc.method, tc.path); got != tc.want {
			t.Errorf("ResolveMethod(%q, %q) = %q, want %q", tc.method, tc.path, got, tc.want)
		}
	}
}
