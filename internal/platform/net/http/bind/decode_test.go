package bind

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "spoilerguard/internal/platform/errors"
)

type comment struct {
	ID      string `json:"id" validate:"required,max=8"`
	Content string `json:"content"`
}

type episode struct {
	EpisodeID string    `json:"episodeId" validate:"required,max=16"`
	Danmaku   []comment `json:"danmakuList" validate:"dive"`
	Limit     int       `json:"limit,omitempty" validate:"omitempty,min=1,max=200"`
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestParseJSON_Decodes(t *testing.T) {
	got, err := ParseJSON[episode](post(`{"episodeId":"ep1","danmakuList":[{"id":"a","content":"hi"}]}`))
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if got.EpisodeID != "ep1" || len(got.Danmaku) != 1 || got.Danmaku[0].Content != "hi" {
		t.Fatalf("got %+v", got)
	}
}

func TestParseJSON_JSONErrors(t *testing.T) {
	cases := map[string]struct {
		req  *http.Request
		opts []JSONOptions
	}{
		"empty post":    {req: post("")},
		"malformed":     {req: post(`{"episodeId":`)},
		"unknown field": {req: post(`{"episodeId":"ep1","extra":1}`)},
		"trailing data": {req: post(`{"episodeId":"ep1"} []`)},
		"too large": {
			req:  post(`{"episodeId":"` + strings.Repeat("x", 64) + `"}`),
			opts: []JSONOptions{{MaxBytes: 16}},
		},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseJSON[episode](c.req, c.opts...)
			if perr.CodeOf(err) != perr.ErrorCodeJSON {
				t.Fatalf("code = %s (%v), want json", perr.CodeOf(err), err)
			}
		})
	}
}

func TestParseJSON_AllowUnknown(t *testing.T) {
	got, err := ParseJSON[episode](post(`{"episodeId":"ep1","extra":1}`), JSONOptions{AllowUnknown: true})
	if err != nil || got.EpisodeID != "ep1" {
		t.Fatalf("got %+v, %v", got, err)
	}
}

func TestParseJSON_EmptyBodyTolerance(t *testing.T) {
	del := httptest.NewRequest(http.MethodDelete, "/", http.NoBody)
	if _, err := ParseJSON[struct{}](del); err != nil {
		t.Fatalf("DELETE empty body: %v", err)
	}

	if _, err := ParseJSON[struct{}](post(""), JSONOptions{AllowEmpty: true}); err != nil {
		t.Fatalf("AllowEmpty: %v", err)
	}
}

func TestParseJSON_ValidationCarriesField(t *testing.T) {
	cases := []struct {
		body  string
		field string
		msg   string
	}{
		{`{"danmakuList":[]}`, "episodeId", "episodeId is a required field"},
		{`{"episodeId":"ep1","limit":500}`, "limit", "limit must be at most 200"},
		{`{"episodeId":"ep1","danmakuList":[{"id":"ok"},{"id":""}]}`, "danmakuList[1].id", "id is a required field"},
	}
	for _, c := range cases {
		_, err := ParseJSON[episode](post(c.body))
		if perr.CodeOf(err) != perr.ErrorCodeValidation {
			t.Fatalf("%s: code = %s (%v)", c.body, perr.CodeOf(err), err)
		}
		w := perr.WireFrom(err)
		if w.Field != c.field || w.Message != c.msg {
			t.Fatalf("%s: wire = %+v, want field %q msg %q", c.body, w, c.field, c.msg)
		}
	}
}

func TestParseJSON_NonStructTarget(t *testing.T) {
	got, err := ParseJSON[[]int](post(`[1,2,3]`))
	if err != nil || len(got) != 3 {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestJSONName(t *testing.T) {
	v := Get()
	type tagged struct {
		Keep   string `json:"keep,omitempty" validate:"required"`
		Plain  string `validate:"required"`
		Hidden string `json:"-"`
	}
	err := v.V.Struct(tagged{})
	field, _ := FirstViolation(err)
	if field != "keep" {
		t.Fatalf("field = %q, want keep", field)
	}
	if f, m := FirstViolation(nil); f != "" || m != "" {
		t.Fatalf("nil -> %q %q", f, m)
	}
}
