package controller_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"qrvalidator/pkg/controller"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

func newPprofRouter() *mux.Router {
	r := mux.NewRouter()
	controller.MountPprof(r)

	return r
}

func TestMountPprof_Index(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil)
	rec := httptest.NewRecorder()
	newPprofRouter().ServeHTTP(rec, req)

	res := rec.Result()
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NotEmpty(t, res.Header.Get("Content-Type"))
}

func TestMountPprof_Cmdline(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/debug/pprof/cmdline", nil)
	rec := httptest.NewRecorder()
	newPprofRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestMountPprof_NamedProfile(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/debug/pprof/goroutine?debug=1", nil)
	rec := httptest.NewRecorder()
	newPprofRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "goroutine")
}
