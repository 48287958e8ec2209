package compiler

import "testing"

func BenchmarkCompile(b *testing.B) {
	c, err := New(Config{})
	if err != nil {
		b.Fatalf("failed to create compiler: %v", err)
	}

	input := `<!-- heading: align-center -->
# Heading

This is **bold** text with [link](https://example.com), $e=mc^2$ and :smile:.

<!-- layout: slot#main -->

- [ ] Task one
- [x] Task two

{{badge build status=ok}}

| Name | Value |
| --- | --- |
| A | 1 |
| B | 2 |
`

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Compile(input); err != nil {
			b.Fatalf("compile failed: %v", err)
		}
	}
}
