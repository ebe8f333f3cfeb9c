package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type fakeRelay struct {
	token string
	sent  []string
	err   error
}

func (f *fakeRelay) Send(_ context.Context, text string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeRelay) RelayToken() string {
	return f.token
}

func deployRequest(target, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func newDeployRouter(relay *fakeRelay) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewDeployHandler(relay, zerolog.Nop())
	router.POST("/deploy-messages", handler.Messages)
	return router
}

func TestDeployMessages(t *testing.T) {
	validBody := `{"title":"api v2.1.0","branch":"main","state":"success"}`

	tests := []struct {
		name     string
		target   string
		body     string
		relay    *fakeRelay
		want     string
		wantSent int
	}{
		{
			"forwards valid message",
			"/deploy-messages?token=secrethalf",
			validBody,
			&fakeRelay{token: "secrethalf"},
			"Done",
			1,
		},
		{
			"token compared case insensitively",
			"/deploy-messages?token=SecretHalf",
			validBody,
			&fakeRelay{token: "secrethalf"},
			"Done",
			1,
		},
		{
			"missing field",
			"/deploy-messages?token=secrethalf",
			`{"title":"api v2.1.0","state":"success"}`,
			&fakeRelay{token: "secrethalf"},
			"Data Error",
			0,
		},
		{
			"malformed body",
			"/deploy-messages?token=secrethalf",
			`{"title":`,
			&fakeRelay{token: "secrethalf"},
			"Data Error",
			0,
		},
		{
			"wrong token",
			"/deploy-messages?token=nope",
			validBody,
			&fakeRelay{token: "secrethalf"},
			"Unauthorized!",
			0,
		},
		{
			"relay unconfigured",
			"/deploy-messages?token=",
			validBody,
			&fakeRelay{token: ""},
			"Unauthorized!",
			0,
		},
		{
			"no-forward tag",
			"/deploy-messages?token=secrethalf",
			`{"title":"chore :NF: bump deps","branch":"main","state":"success"}`,
			&fakeRelay{token: "secrethalf"},
			"Done!",
			0,
		},
		{
			"relay failure",
			"/deploy-messages?token=secrethalf",
			validBody,
			&fakeRelay{token: "secrethalf", err: assert.AnError},
			"Error",
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newDeployRouter(tt.relay)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, deployRequest(tt.target, tt.body))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, rec.Body.String())
			assert.Len(t, tt.relay.sent, tt.wantSent)
		})
	}
}

func TestDeployMessagesContent(t *testing.T) {
	relay := &fakeRelay{token: "secrethalf"}
	router := newDeployRouter(relay)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, deployRequest(
		"/deploy-messages?token=secrethalf",
		`{"title":"api v2.1.0","branch":"release","state":"failed"}`,
	))

	assert.Equal(t, "Done", rec.Body.String())
	assert.Equal(t, []string{"Deployment: api v2.1.0\nBranch : release\nStatus: failed"}, relay.sent)
}
