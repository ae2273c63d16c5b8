package version

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Versions compare component by component", t, func() {
		for _, c := range []struct {
			a, b string
			want int
		}{
			{"1.0.0", "1.0.0", 0},
			{"v1.2.0", "1.1.9", 1},
			{"0.3.1", "0.10.0", -1},
			{"1.2", "1.2.0", 0},
			{"1.3.0-rc.1", "1.2.9", 1},
		} {
			got, err := Compare(c.a, c.b)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, c.want)
		}

		_, err := Compare("latest", "1.0.0")
		So(err, ShouldNotBeNil)
		_, err = Compare("1.0.0", "1.x")
		So(err, ShouldNotBeNil)
	})
}

func TestFetchLatest(t *testing.T) {
	Convey("Given a releases endpoint", t, func() {
		tag := "v1.4.0"
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tag == "" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			fmt.Fprintf(w, `{"tag_name": %q}`, tag)
		}))
		defer srv.Close()

		Convey("The tag is returned without its prefix", func() {
			v, err := fetchLatest(context.Background(), srv.Client(), srv.URL)
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "1.4.0")
		})

		Convey("A missing release is an error", func() {
			tag = ""
			_, err := fetchLatest(context.Background(), srv.Client(), srv.URL)
			So(err, ShouldNotBeNil)
		})
	})
}
