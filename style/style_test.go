package style

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidqueue/vidqueue/color"
)

func TestRender(t *testing.T) {
	Convey("Without a color profile text passes through", t, func() {
		lipgloss.SetColorProfile(termenv.Ascii)

		So(Fg(color.Red)("failed"), ShouldEqual, "failed")
		So(Bold("name"), ShouldEqual, "name")
		So(Faint("3."), ShouldEqual, "3.")
	})
}
