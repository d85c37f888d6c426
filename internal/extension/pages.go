package extension

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
)

// buildOutputPattern matches the pages Evidence writes on `npm run build`.
const buildOutputPattern = "build/**/*.html"

// BuildPages lists the HTML pages under the project's build output,
// relative to the project directory. A missing build directory yields none.
func (e *Evidence) BuildPages() ([]string, error) {
	pages, err := doublestar.Glob(os.DirFS(e.home.Path), buildOutputPattern)
	if err != nil {
		return nil, fmt.Errorf("globbing %s in %s: %w", buildOutputPattern, e.home.Path, err)
	}
	return pages, nil
}
