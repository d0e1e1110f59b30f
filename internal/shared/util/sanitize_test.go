package util

import "testing"

func TestBaseName(t *testing.T) {
	tests := map[string]string{
		"/tmp/gradio/abc/resume.pdf": "resume.pdf",
		"C:\\Users\\me\\cv.docx":     "cv.docx",
		"plain.pdf":                  "plain.pdf",
		"uploads/cv..v2.pdf":         "cv..v2.pdf",
		"":                           "",
	}
	for in, want := range tests {
		if got := BaseName(in); got != want {
			t.Fatalf("BaseName(%q) = %q, want %q", in, got, want)
		}
	}
}
