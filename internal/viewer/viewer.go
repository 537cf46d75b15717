package viewer

import (
	"fmt"
	"io"

	"github.com/KaramelBytes/quickeda/internal/utils"
	"github.com/pkg/browser"
)

// Viewer displays a generated artifact to the user.
type Viewer interface {
	Display(path string) error
}

// Browser opens artifacts in the default browser as file:// URLs. The launch
// is fire-and-forget; the browser's own output is discarded.
type Browser struct{}

func init() {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
}

func (Browser) Display(path string) error {
	if err := browser.OpenURL("file://" + utils.AbsPath(path)); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return nil
}

// Nop never displays anything.
type Nop struct{}

func (Nop) Display(string) error { return nil }

// Recorder remembers displayed paths instead of opening them.
type Recorder struct {
	Paths []string
}

func (r *Recorder) Display(path string) error {
	r.Paths = append(r.Paths, path)
	return nil
}
