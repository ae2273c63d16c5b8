package network

import (
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestClientHeaders(t *testing.T) {
	Convey("Given a server echoing request headers", t, func() {
		var got http.Header
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Clone()
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		client := New(Options{UserAgent: "vidqueue-test", Referer: "https://example.com/", Cookie: "a=b"})

		Convey("Default headers are attached", func() {
			resp, err := client.Get(srv.URL)
			So(err, ShouldBeNil)
			_ = resp.Body.Close()

			So(got.Get("User-Agent"), ShouldEqual, "vidqueue-test")
			So(got.Get("Referer"), ShouldEqual, "https://example.com/")
			So(got.Get("Cookie"), ShouldEqual, "a=b")
		})

		Convey("Headers set on the request win", func() {
			req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
			req.Header.Set("User-Agent", "custom")
			resp, err := client.Do(req)
			So(err, ShouldBeNil)
			_ = resp.Body.Close()

			So(got.Get("User-Agent"), ShouldEqual, "custom")
		})

		Convey("Plain HTTP bypasses the fingerprint transport", func() {
			client := New(Options{TLSFingerprint: true})
			resp, err := client.Get(srv.URL)
			So(err, ShouldBeNil)
			_ = resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusNoContent)
		})
	})
}
