package viewer

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/toyxona/toycard/web/api"
	"github.com/toyxona/toycard/web/draft"
	"github.com/toyxona/toycard/web/localstore"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

const invitationBody = `{"id":"42","groom_name":"Sanjar","bride_name":"Malika","date":"2026-08-28T18:00:00Z","hall":"Zarafshon","location":"Toshkent","template":"classic_royale","background_music":"TRADITIONAL"}`

func newTestViewer(t *testing.T, handler http.Handler) *Viewer {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := api.NewClient(server.URL)
	return New(client, draft.NewStore(client, localstore.NewMemory(), quietLogger()), nil, quietLogger())
}

func TestLoadSurvivesWishFailure(t *testing.T) {
	v := newTestViewer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/wishes") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(invitationBody))
	}))

	if err := v.Load(context.Background(), "42"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if v.Invitation() == nil || v.Invitation().GroomName != "Sanjar" {
		t.Errorf("invitation = %+v", v.Invitation())
	}
	if v.WishError() == nil {
		t.Error("wish failure was not recorded")
	}
}

func TestLoadFailsOnMissingInvitation(t *testing.T) {
	v := newTestViewer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":"not_found","message":"invitation not found"}`))
	}))

	if err := v.Load(context.Background(), "no-such-id"); err == nil {
		t.Error("missing invitation loaded successfully")
	}
	if v.Invitation() != nil {
		t.Error("viewer holds an invitation after a failed load")
	}
}

func TestExportImageRendersLoadedCard(t *testing.T) {
	v := newTestViewer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/wishes") {
			w.Write([]byte(`[]`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(invitationBody))
	}))

	if err := v.Load(context.Background(), "42"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	var buf bytes.Buffer
	v.ExportImage(&buf)
	html := buf.String()
	for _, want := range []string{"Sanjar", "Malika", "Zarafshon", "28", "August", "18:00"} {
		if !strings.Contains(html, want) {
			t.Errorf("exported card is missing %q", want)
		}
	}
}

func TestExportImageBeforeLoadIsSilent(t *testing.T) {
	v := newTestViewer(t, http.NotFoundHandler())
	var buf bytes.Buffer
	v.ExportImage(&buf)
	if buf.Len() != 0 {
		t.Errorf("export before load wrote %d bytes", buf.Len())
	}
}

func TestChangeTemplateRollsBackOnFailure(t *testing.T) {
	v := newTestViewer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/wishes"):
			w.Write([]byte(`[]`))
		case r.Method == http.MethodPost:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"code":"internal_error","message":"database down"}`))
		default:
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(invitationBody))
		}
	}))

	if err := v.Load(context.Background(), "42"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := v.ChangeTemplate(context.Background(), "midnight_pearl"); err == nil {
		t.Fatal("failed save reported success")
	}
	if v.Invitation().Template != "classic_royale" {
		t.Errorf("template = %q, want rollback to classic_royale", v.Invitation().Template)
	}
}

func TestSubmitWishValidatesLocally(t *testing.T) {
	requests := 0
	v := newTestViewer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			requests++
		}
		if strings.HasSuffix(r.URL.Path, "/wishes") && r.Method == http.MethodGet {
			w.Write([]byte(`[]`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(invitationBody))
	}))

	if err := v.Load(context.Background(), "42"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if _, err := v.SubmitWish(context.Background(), "  ", "Tabriklayman"); err == nil {
		t.Error("blank author accepted")
	}
	if _, err := v.SubmitWish(context.Background(), "Aziz", ""); err == nil {
		t.Error("empty text accepted")
	}
	if requests != 0 {
		t.Errorf("validation failures reached the network %d times", requests)
	}
}
