package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/bracecheck/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		content  string
		expected string
	}{
		{name: "tsx by extension", path: "src/app.tsx", expected: langdetect.LangTSX},
		{name: "typescript by extension", path: "lib/index.ts", expected: langdetect.LangTypeScript},
		{name: "jsx by extension", path: "view.jsx", expected: langdetect.LangJavaScript},
		{name: "module javascript", path: "next.config.mjs", expected: langdetect.LangJavaScript},
		{name: "json by extension", path: "package.json", expected: langdetect.LangJSON},
		{name: "extension is case insensitive", path: "APP.TSX", expected: langdetect.LangTSX},
		{name: "markdown by extension", path: "README.md", expected: langdetect.LangMarkdown},
		{name: "node shebang", path: "bin/run", content: "#!/usr/bin/env node\nconsole.log(1)\n", expected: langdetect.LangJavaScript},
		{name: "empty file without extension", path: "LICENSE_STUB", expected: langdetect.LangText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, langdetect.Detect(tt.path, []byte(tt.content)))
		})
	}
}

func TestFromFenceInfo(t *testing.T) {
	t.Parallel()

	assert.Equal(t, langdetect.LangTSX, langdetect.FromFenceInfo("tsx title=app.tsx"))
	assert.Equal(t, langdetect.LangJavaScript, langdetect.FromFenceInfo("JS"))
	assert.Equal(t, langdetect.LangTypeScript, langdetect.FromFenceInfo("{.ts}"))
	assert.Equal(t, "python", langdetect.FromFenceInfo("python"))
	assert.Equal(t, "", langdetect.FromFenceInfo("   "))
}

func TestSupported(t *testing.T) {
	t.Parallel()

	assert.True(t, langdetect.Supported(langdetect.LangJavaScript))
	assert.True(t, langdetect.Supported(langdetect.LangTSX))
	assert.True(t, langdetect.Supported(langdetect.LangJSON))
	assert.False(t, langdetect.Supported(langdetect.LangMarkdown))
	assert.False(t, langdetect.Supported("python"))
}
