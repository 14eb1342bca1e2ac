package routepath

import (
	"errors"
	"testing"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"root", "/", nil},
		{"trailing slash kept", "/blog/", nil},
		{"dot segments inside", "/a/b/../c", nil},
		{"query ignored", "/a?x=..\\", nil},
		{"backslash", "/a\\b", ErrBackslash},
		{"encoded backslash", "/a%5cb", ErrBackslash},
		{"null byte", "/a\x00b", ErrNullByte},
		{"encoded null", "/a%00b", ErrNullByte},
		{"escape root", "/../secret", ErrEscapesRoot},
		{"escape root later", "/a/../../secret", ErrEscapesRoot},
		{"encoded escape", "/%2e%2E/secret", ErrEscapesRoot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Check(tt.input); !errors.Is(err, tt.want) {
				t.Errorf("Check(%q) = %v, want %v", tt.input, err, tt.want)
			}
		})
	}
}

func TestCheckNav(t *testing.T) {
	tests := []struct {
		input   string
		wantErr error
	}{
		{"/users/1?tab=2#top", nil},
		{"/", nil},
		{"https://evil.example/", ErrAbsoluteURL},
		{"javascript:alert(1)", ErrAbsoluteURL},
		{"//evil.example/", ErrAbsoluteURL},
		{"/\\evil.example", ErrAbsoluteURL},
		{"relative", ErrInvalidTarget},
		{"", ErrInvalidTarget},
		{"/a\nb", ErrInvalidTarget},
		{"/../x", ErrEscapesRoot},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := CheckNav(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CheckNav(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.input {
				t.Errorf("CheckNav(%q) = %q, want unchanged", tt.input, got)
			}
		})
	}
}

func TestIsLocal(t *testing.T) {
	if !IsLocal("/the-base/somewhere-else") {
		t.Error("local path rejected")
	}
	if IsLocal("//evil.example") {
		t.Error("protocol-relative URL accepted")
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/", ""},
		{"", ""},
		{"/about", "about"},
		{"/about/", "about"},
		{"//blog///post", "blog/post"},
		{"/a/./b/../c", "a/c"},
		{"/docs?x=1", "docs"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Clean(tt.input)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}

	if _, err := Clean("/../etc/passwd"); !errors.Is(err, ErrEscapesRoot) {
		t.Errorf("Clean escaping root: err = %v", err)
	}
}

func TestSplitTarget(t *testing.T) {
	tests := []struct {
		input, path, rest string
	}{
		{"/a?b#c", "/a", "?b#c"},
		{"/a#c?d", "/a", "#c?d"},
		{"/a", "/a", ""},
	}
	for _, tt := range tests {
		path, rest := SplitTarget(tt.input)
		if path != tt.path || rest != tt.rest {
			t.Errorf("SplitTarget(%q) = %q, %q", tt.input, path, rest)
		}
	}
}
