package pyemitter

import (
	"strings"
	"testing"
)

func TestSnippetRetrieveWithPathParam(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"method": "get", "path": "/messages/{id}"}`)
	got := Snippet(raw, Options{})

	want := strings.Join([]string{
		"id = 'your_id'",
		"response = telnyx.messages.retrieve(id=id)",
		"print(response)",
	}, "\n")
	if got != want {
		t.Errorf("snippet mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestSnippetCreateWithBody(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"method": "post",
		"path": "/messages",
		"request": {"body": {"to": "+18665550001", "text": "Hello!"}}
	}`)
	got := Snippet(raw, Options{})

	want := strings.Join([]string{
		"params = {",
		"    to='+18665550001'",
		"    text='Hello!'",
		"}",
		"response = telnyx.messages.create(**params)",
		"print(response)",
	}, "\n")
	if got != want {
		t.Errorf("snippet mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestSnippetParamsAndBodySpread(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"method": "patch",
		"path": "/messaging_profiles/{id}",
		"request": {"body": {"name": "Summer", "enabled": true, "limit": 25}}
	}`)
	got := Snippet(raw, Options{})

	if !strings.Contains(got, "response = telnyx.messaging_profiles.update(id=id, **params)") {
		t.Errorf("call line missing param plus spread:\n%s", got)
	}
	if !strings.Contains(got, "    enabled=True") {
		t.Errorf("boolean not rendered as Python literal:\n%s", got)
	}
	if !strings.Contains(got, "    limit=25") {
		t.Errorf("number not rendered verbatim:\n%s", got)
	}
}

func TestSnippetDeleteUsesDel(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"method": "delete", "path": "/messages/{id}"}`)
	got := Snippet(raw, Options{})
	if !strings.Contains(got, "telnyx.messages.del(id=id)") {
		t.Errorf("expected del operation:\n%s", got)
	}
}

func TestSnippetListForLiteralGet(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"method": "get", "path": "/phone-numbers"}`)
	got := Snippet(raw, Options{})

	want := strings.Join([]string{
		"response = telnyx.phone_numbers.list()",
		"print(response)",
	}, "\n")
	if got != want {
		t.Errorf("snippet mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestSnippetNoLiteralSegmentsOmitsCall(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"method": "get", "path": "/{id}"}`)
	got := Snippet(raw, Options{})

	want := strings.Join([]string{
		"id = 'your_id'",
		"print(response)",
	}, "\n")
	if got != want {
		t.Errorf("snippet mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestSnippetNestedBodyValues(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"method": "post",
		"path": "/messages",
		"request": {"body": {"media": {"urls": ["a", "b"], "count": 2}, "tag": null}}
	}`)
	got := Snippet(raw, Options{})

	if !strings.Contains(got, "    media={'urls': ['a', 'b'], 'count': 2}") {
		t.Errorf("nested dict not rendered in repr style:\n%s", got)
	}
	if !strings.Contains(got, "    tag=None") {
		t.Errorf("null not rendered as None:\n%s", got)
	}
}

func TestSnippetMalformedDocument(t *testing.T) {
	t.Parallel()

	got := Snippet([]byte("not json at all"), Options{})
	if !strings.HasPrefix(got, "# Error generating SDK code: ") {
		t.Errorf("expected commented error line, got:\n%s", got)
	}
}

func TestRenderPageHeader(t *testing.T) {
	t.Parallel()

	page := RenderPage([]byte(`{"method": "get", "path": "/messages"}`), Options{})
	if !strings.HasPrefix(page, Header+"\n\n") {
		t.Errorf("page does not start with header:\n%s", page)
	}
	if !strings.Contains(page, "label: Python SDK") || !strings.Contains(page, "import telnyx") {
		t.Errorf("header content missing:\n%s", page)
	}
}
