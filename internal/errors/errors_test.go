package errors

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "location error",
			code:    "E100",
			wantMsg: "Malformed URL pathname",
			wantCat: CategoryLocation,
		},
		{
			name:    "history error",
			code:    "E101",
			wantMsg: "Navigation not supported by a static history",
			wantCat: CategoryHistory,
		},
		{
			name:    "component error",
			code:    "E103",
			wantMsg: "Invalid Switch child",
			wantCat: CategoryComponent,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryConfig, "file %q not found", "routerd.json")
	if err.Message != `file "routerd.json" not found` {
		t.Errorf("Message = %q, want %q", err.Message, `file "routerd.json" not found`)
	}
	if err.Category != CategoryConfig {
		t.Errorf("Category = %q, want %q", err.Category, CategoryConfig)
	}
}

func TestRouterError_Error(t *testing.T) {
	err := New("E101").WithMessage("You cannot go with <StaticRouter>")
	want := "E101: You cannot go with <StaticRouter>"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err2 := &RouterError{Message: "test error"}
	if err2.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", err2.Error(), "test error")
	}
}

func TestRouterError_Builders(t *testing.T) {
	err := New("E103").
		WithComponent("Switch").
		WithPath("/users").
		WithDetail("Custom detail").
		WithSuggestion("Wrap the element in a Route")

	if err.Component != "Switch" {
		t.Errorf("Component = %q", err.Component)
	}
	if err.Path != "/users" {
		t.Errorf("Path = %q", err.Path)
	}
	if err.Detail != "Custom detail" {
		t.Errorf("Detail = %q", err.Detail)
	}
	if err.Suggestion != "Wrap the element in a Route" {
		t.Errorf("Suggestion = %q", err.Suggestion)
	}
}

func TestRouterError_Wrap(t *testing.T) {
	sentinel := errors.New("sentinel")
	err := fmt.Errorf("render: %w", New("E101").Wrap(sentinel))

	if !errors.Is(err, sentinel) {
		t.Error("errors.Is should find the wrapped sentinel")
	}
	var re *RouterError
	if !errors.As(err, &re) || re.Code != "E101" {
		t.Errorf("errors.As = %v", re)
	}
}

func TestHasCode(t *testing.T) {
	inner := New("E100").Wrap(errors.New("bad escape"))
	outer := fmt.Errorf("wrapped: %w", New("E151").Wrap(inner))

	if !HasCode(outer, "E151") {
		t.Error("outer code should match")
	}
	if !HasCode(outer, "E100") {
		t.Error("nested code should match")
	}
	if HasCode(outer, "E102") {
		t.Error("absent code should not match")
	}
	if HasCode(errors.New("plain"), "E100") {
		t.Error("plain errors carry no code")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E100") != nil {
		t.Error("FromError(nil, ...) should return nil")
	}

	re := New("E100")
	if FromError(re, "E102") != re {
		t.Error("FromError should return RouterError as-is")
	}

	stdErr := errors.New("test error")
	result := FromError(stdErr, "E150")
	if result.Wrapped != stdErr {
		t.Error("Standard error should be wrapped")
	}
	if result.Code != "E150" {
		t.Errorf("Code = %q, want E150", result.Code)
	}
}

func withoutColors(t *testing.T) {
	t.Helper()
	prev := colorEnabled
	DisableColors()
	t.Cleanup(func() { colorEnabled = prev })
}

func TestFormat(t *testing.T) {
	withoutColors(t)

	err := New("E102").
		WithComponent("Link").
		WithPath("/about").
		WithSuggestion("Render the Link inside a router").
		Wrap(errors.New("no router context"))

	formatted := err.Format()

	for _, want := range []string{
		"E102",
		"Component rendered outside a router",
		"<Link>",
		"/about",
		"Cause: no router context",
		"Hint:",
		"Learn more:",
	} {
		if !strings.Contains(formatted, want) {
			t.Errorf("Format should contain %q:\n%s", want, formatted)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("E100").WithPath("/%E0%A4%A")
	want := "/%E0%A4%A: E100: Malformed URL pathname"
	if got := err.FormatCompact(); got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestFormatJSON(t *testing.T) {
	json := New("E102").WithComponent("Route").FormatJSON()

	for _, want := range []string{
		`"code":"E102"`,
		`"category":"component"`,
		`"message":"Component rendered outside a router"`,
		`"component":"Route"`,
	} {
		if !strings.Contains(json, want) {
			t.Errorf("JSON should contain %s: %s", want, json)
		}
	}
}

func TestGetAllCodes(t *testing.T) {
	codes := GetAllCodes()
	if !slices.Contains(codes, "E101") {
		t.Error("E101 should be in the codes list")
	}
	if !slices.IsSorted(codes) {
		t.Errorf("codes are not sorted: %v", codes)
	}
}

func TestGetTemplate(t *testing.T) {
	template, ok := GetTemplate("E120")
	if !ok {
		t.Fatal("E120 should exist")
	}
	if template.Message != "Invalid configuration" {
		t.Error("Template message mismatch")
	}

	if _, ok := GetTemplate("E999"); ok {
		t.Error("E999 should not exist")
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("short text", 100)
	if len(got) != 1 || got[0] != "short text" {
		t.Errorf("wrapText short text: got %v", got)
	}

	got = wrapText("this is a longer text that should be wrapped", 20)
	if len(got) != 3 {
		t.Errorf("wrapText long text: expected 3 lines, got %d: %v", len(got), got)
	}

	if got := wrapText("", 10); len(got) != 0 {
		t.Errorf("wrapText empty: expected empty, got %v", got)
	}
}

func TestColorFunctions(t *testing.T) {
	prev := colorEnabled
	t.Cleanup(func() { colorEnabled = prev })

	colorEnabled = true
	if !strings.Contains(red("test"), "\033[31m") {
		t.Error("red should contain ANSI code when colors enabled")
	}

	DisableColors()
	if strings.Contains(red("test"), "\033[") {
		t.Error("red should not contain ANSI code when colors disabled")
	}
}

func TestPrintError(t *testing.T) {
	withoutColors(t)

	tests := []struct {
		name string
		err  error
		want []string
	}{
		{"coded", New("E150").WithPath("guide/index.html"), []string{"ERROR E150: Export sink write failed", "guide/index.html"}},
		{"uncoded", Newf(CategoryCLI, "no routes"), []string{"Error: no routes\n"}},
		{"plain", errors.New("boom"), []string{"Error: boom\n"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			PrintError(&buf, tt.err)
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("PrintError() = %q, missing %q", buf.String(), want)
				}
			}
		})
	}
}
